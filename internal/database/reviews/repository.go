// Package reviews provides database operations for book reviews.
//
// Reviews only exist under a book: every operation is scoped by book ID.
//
// # Usage
//
//	repo := reviews.NewRepository(db)
//	review, err := repo.Create(bookID, entities.ReviewFields{...})
package reviews

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all review database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create adds a review to an existing book.
func (r *Repository) Create(bookID uint, fields entities.ReviewFields) (*entities.Review, error) {
	var review *entities.Review
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireBook(tx, bookID); err != nil {
			return err
		}
		if err := fields.Validate(); err != nil {
			return err
		}

		review = &entities.Review{
			BookID:    bookID,
			Reviewer:  fields.Reviewer,
			Rating:    *fields.Rating,
			Comment:   fields.Comment,
			CreatedAt: r.now(),
		}
		if err := tx.Omit(clause.Associations).Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review for book %d: %w", bookID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// List returns the reviews of a book in insertion order.
func (r *Repository) List(bookID uint) ([]entities.Review, error) {
	if err := requireBook(r.db, bookID); err != nil {
		return nil, err
	}

	reviews := []entities.Review{}
	if err := r.db.Where("book_id = ?", bookID).Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews for book %d: %w", bookID, err)
	}
	return reviews, nil
}

// Delete removes a review only if it belongs to the given book.
func (r *Repository) Delete(bookID, reviewID uint) error {
	result := r.db.Where("id = ? AND book_id = ?", reviewID, bookID).Delete(&entities.Review{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete review %d: %w", reviewID, result.Error)
	}
	if result.RowsAffected == 0 {
		return &entities.NotFoundError{Resource: "review", ID: reviewID, Parent: "book", ParentID: bookID}
	}
	return nil
}

func requireBook(tx *gorm.DB, bookID uint) error {
	var count int64
	if err := tx.Model(&entities.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up book %d: %w", bookID, err)
	}
	if count == 0 {
		return &entities.NotFoundError{Resource: "book", ID: bookID}
	}
	return nil
}
