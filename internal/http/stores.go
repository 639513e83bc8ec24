package http

import (
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/stats"
)

// Each controller depends on the narrow store interface it needs. The
// database/books, database/reviews and database/shelves repositories
// implement them; see internal/interfaces for the compile-time checks.

// BookStore is the book repository used by BooksController.
type BookStore interface {
	List(filter entities.BookFilter, skip, limit int) ([]entities.Book, error)
	Get(id uint) (*entities.Book, error)
	Create(fields entities.BookFields) (*entities.Book, error)
	Update(id uint, patch entities.BookPatch) (*entities.Book, error)
	Delete(id uint) error
}

// ReviewStore is the review repository used by ReviewsController.
type ReviewStore interface {
	Create(bookID uint, fields entities.ReviewFields) (*entities.Review, error)
	List(bookID uint) ([]entities.Review, error)
	Delete(bookID, reviewID uint) error
}

// ShelfStore is the bookshelf repository used by ShelvesController.
type ShelfStore interface {
	Create(fields entities.ShelfFields) (*entities.Bookshelf, error)
	Get(id uint) (*entities.Bookshelf, error)
	List() ([]entities.Bookshelf, error)
	Delete(id uint) error
	AddBook(shelfID, bookID uint) error
	RemoveBook(shelfID, bookID uint) error
	Stats(id uint) (*stats.Shelf, error)
}

// ChangeLogger records successful catalog mutations. audit.Service
// implements it; controllers accept nil to skip auditing.
type ChangeLogger interface {
	LogChange(requestID string, eventType entities.AuditEventType, action, entityType string, entityID uint, description string, metadata map[string]any)
}
