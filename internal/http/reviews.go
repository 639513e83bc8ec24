package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type ReviewsController struct {
	store ReviewStore
	audit ChangeLogger
}

func NewReviewsController(store ReviewStore, audit ChangeLogger) *ReviewsController {
	return &ReviewsController{store: store, audit: audit}
}

// DeleteReviewResponse is returned by DELETE /books/:id/reviews/:review_id.
type DeleteReviewResponse struct {
	Message  string `json:"message"`
	ReviewID uint   `json:"review_id"`
}

// CreateReview handles POST /books/:id/reviews
func (rc *ReviewsController) CreateReview(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var fields entities.ReviewFields
	if !bindJSON(c, &fields) {
		return
	}

	review, err := rc.store.Create(bookID, fields)
	if err != nil {
		respondServiceError(c, err, "create review")
		return
	}

	if rc.audit != nil {
		rc.audit.LogChange(GetRequestID(c), entities.AuditEventCreate, "review_create", "review", review.ID,
			fmt.Sprintf("Added review by %s to book %d", review.Reviewer, bookID),
			map[string]any{"book_id": bookID, "rating": review.Rating})
	}
	respondCreated(c, review)
}

// ListReviews handles GET /books/:id/reviews
func (rc *ReviewsController) ListReviews(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := rc.store.List(bookID)
	if err != nil {
		respondServiceError(c, err, "list reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// DeleteReview handles DELETE /books/:id/reviews/:review_id
func (rc *ReviewsController) DeleteReview(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	if err := rc.store.Delete(bookID, reviewID); err != nil {
		respondServiceError(c, err, "delete review")
		return
	}

	if rc.audit != nil {
		rc.audit.LogChange(GetRequestID(c), entities.AuditEventDelete, "review_delete", "review", reviewID,
			fmt.Sprintf("Deleted review %d of book %d", reviewID, bookID), map[string]any{"book_id": bookID})
	}
	c.JSON(http.StatusOK, DeleteReviewResponse{Message: "Review deleted successfully", ReviewID: reviewID})
}
