package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestReviewsAPI(t *testing.T) {
	s := newTestServer(t)
	bookID := s.createBook(t, bookBody("9780743273565"))
	otherID := s.createBook(t, bookBody("9780061120084"))

	t.Run("create", func(t *testing.T) {
		w := s.do(t, http.MethodPost, fmt.Sprintf("/books/%d/reviews", bookID),
			map[string]any{"reviewer": "ann", "rating": 5.0, "comment": "Perfect"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		review := decode[entities.Review](t, w)
		assert.Equal(t, bookID, review.BookID)
		assert.Equal(t, 5.0, review.Rating)
	})

	t.Run("rating above five is 422", func(t *testing.T) {
		w := s.do(t, http.MethodPost, fmt.Sprintf("/books/%d/reviews", bookID),
			map[string]any{"reviewer": "bob", "rating": 5.1})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("missing rating is 422", func(t *testing.T) {
		w := s.do(t, http.MethodPost, fmt.Sprintf("/books/%d/reviews", bookID),
			map[string]any{"reviewer": "bob"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"rating"`)
	})

	t.Run("unknown book is 404", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/books/999/reviews", map[string]any{"reviewer": "bob", "rating": 3})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w := s.do(t, http.MethodGet, fmt.Sprintf("/books/%d/reviews", bookID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]entities.Review](t, w), 1)

		w = s.do(t, http.MethodGet, fmt.Sprintf("/books/%d/reviews", otherID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("delete under the wrong book is 404", func(t *testing.T) {
		reviews := decode[[]entities.Review](t, s.do(t, http.MethodGet, fmt.Sprintf("/books/%d/reviews", bookID), nil))
		require.Len(t, reviews, 1)
		reviewID := reviews[0].ID

		w := s.do(t, http.MethodDelete, fmt.Sprintf("/books/%d/reviews/%d", otherID, reviewID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), fmt.Sprintf("review with id %d not found for book %d", reviewID, otherID))

		w = s.do(t, http.MethodDelete, fmt.Sprintf("/books/%d/reviews/%d", bookID, reviewID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"message":"Review deleted successfully","review_id":%d}`, reviewID), w.Body.String())
	})

	t.Run("bad review id is 400", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, fmt.Sprintf("/books/%d/reviews/x", bookID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
