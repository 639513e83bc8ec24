// Package books provides database operations for the book catalog.
//
// This package implements the BookStore interface defined in
// internal/http/books.go.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.Get(123)
package books

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

const (
	MinLimit = 1
	MaxLimit = 100
)

// Repository handles all book database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func preloadReviews(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s as a literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// List returns books in insertion order, filtered by case-insensitive
// substring matches on genre and author.
func (r *Repository) List(filter entities.BookFilter, skip, limit int) ([]entities.Book, error) {
	if skip < 0 {
		return nil, entities.NewValidationError("skip", "gte", "skip must be greater than or equal to 0")
	}
	if limit < MinLimit || limit > MaxLimit {
		return nil, entities.NewValidationError("limit", "range",
			fmt.Sprintf("limit must be between %d and %d", MinLimit, MaxLimit))
	}

	query := r.db.Preload("Reviews", preloadReviews)
	if filter.Genre != "" {
		query = query.Where(`LOWER(genre) LIKE ? ESCAPE '\'`, containsPattern(filter.Genre))
	}
	if filter.Author != "" {
		query = query.Where(`LOWER(author) LIKE ? ESCAPE '\'`, containsPattern(filter.Author))
	}

	books := []entities.Book{}
	err := query.Order("id ASC").Offset(skip).Limit(limit).Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	for i := range books {
		if books[i].Reviews == nil {
			books[i].Reviews = []entities.Review{}
		}
	}
	return books, nil
}

// Get retrieves a book by its ID with its reviews.
func (r *Repository) Get(id uint) (*entities.Book, error) {
	return r.get(r.db, id)
}

func (r *Repository) get(tx *gorm.DB, id uint) (*entities.Book, error) {
	var book entities.Book
	err := tx.Preload("Reviews", preloadReviews).First(&book, id).Error
	if database.IsNotFound(err) {
		return nil, &entities.NotFoundError{Resource: "book", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	if book.Reviews == nil {
		book.Reviews = []entities.Review{}
	}
	return &book, nil
}

// Create persists a new book. A duplicate ISBN is reported before field
// validation.
func (r *Repository) Create(fields entities.BookFields) (*entities.Book, error) {
	var book *entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.checkISBNFree(tx, fields.ISBN, 0); err != nil {
			return err
		}
		if err := fields.Validate(); err != nil {
			return err
		}

		now := r.now()
		book = &entities.Book{
			Title:           fields.Title,
			Author:          fields.Author,
			ISBN:            fields.ISBN,
			PublicationYear: fields.PublicationYear,
			Pages:           fields.Pages,
			Genre:           fields.Genre,
			Description:     fields.Description,
			Reviews:         []entities.Review{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.Omit(clause.Associations).Create(book).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return isbnConflict(fields.ISBN)
			}
			return fmt.Errorf("failed to create book: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Update applies the supplied fields of patch to the book, re-validates the
// result and refreshes updated_at.
func (r *Repository) Update(id uint, patch entities.BookPatch) (*entities.Book, error) {
	var book *entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		current, err := r.get(tx, id)
		if err != nil {
			return err
		}

		patch.Apply(current)
		if err := current.Fields().Validate(); err != nil {
			return err
		}
		if patch.ISBN != nil {
			if err := r.checkISBNFree(tx, current.ISBN, id); err != nil {
				return err
			}
		}

		// updated_at must strictly advance even if the clock has not ticked
		now := r.now()
		if !now.After(current.UpdatedAt) {
			now = current.UpdatedAt.Add(time.Microsecond)
		}
		current.UpdatedAt = now

		err = tx.Model(&entities.Book{}).Where("id = ?", id).Updates(map[string]any{
			"title":            current.Title,
			"author":           current.Author,
			"isbn":             current.ISBN,
			"publication_year": current.PublicationYear,
			"pages":            current.Pages,
			"genre":            current.Genre,
			"description":      current.Description,
			"updated_at":       current.UpdatedAt,
		}).Error
		if err != nil {
			if database.IsUniqueViolation(err) {
				return isbnConflict(current.ISBN)
			}
			return fmt.Errorf("failed to update book %d: %w", id, err)
		}

		book = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a book together with its reviews and shelf memberships.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to look up book %d: %w", id, err)
		}
		if count == 0 {
			return &entities.NotFoundError{Resource: "book", ID: id}
		}

		if err := tx.Where("book_id = ?", id).Delete(&entities.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews of book %d: %w", id, err)
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.BookshelfBook{}).Error; err != nil {
			return fmt.Errorf("failed to delete shelf memberships of book %d: %w", id, err)
		}
		if err := tx.Delete(&entities.Book{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete book %d: %w", id, err)
		}
		return nil
	})
}

// Count returns the total number of books.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// checkISBNFree fails with a conflict if another book (other than exceptID)
// already uses isbn.
func (r *Repository) checkISBNFree(tx *gorm.DB, isbn string, exceptID uint) error {
	var count int64
	query := tx.Model(&entities.Book{}).Where("isbn = ?", isbn)
	if exceptID > 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check isbn: %w", err)
	}
	if count > 0 {
		return isbnConflict(isbn)
	}
	return nil
}

func isbnConflict(isbn string) error {
	return &entities.ConflictError{Resource: "book", Field: "isbn", Value: isbn}
}
