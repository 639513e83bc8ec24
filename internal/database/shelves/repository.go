// Package shelves provides database operations for bookshelves and their
// book memberships.
//
// Membership rows live in bookshelf_books. The composite primary key on
// (bookshelf_id, book_id) is what rejects a duplicate add, including two
// concurrent adds of the same pair.
package shelves

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/stats"
)

// Repository handles bookshelf and membership database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new shelves repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create persists a new empty shelf.
func (r *Repository) Create(fields entities.ShelfFields) (*entities.Bookshelf, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	shelf := &entities.Bookshelf{
		Name:      fields.Name,
		Owner:     fields.Owner,
		Books:     []entities.Book{},
		CreatedAt: r.now(),
	}
	if err := r.db.Create(shelf).Error; err != nil {
		return nil, fmt.Errorf("failed to create bookshelf: %w", err)
	}
	return shelf, nil
}

// Get returns a shelf with its member books, each carrying its reviews.
func (r *Repository) Get(id uint) (*entities.Bookshelf, error) {
	shelf, err := r.get(r.db, id)
	if err != nil {
		return nil, err
	}
	shelf.Books, err = r.members(r.db, id)
	if err != nil {
		return nil, err
	}
	return shelf, nil
}

// List returns all shelves in creation order with their members.
func (r *Repository) List() ([]entities.Bookshelf, error) {
	shelves := []entities.Bookshelf{}
	if err := r.db.Order("id ASC").Find(&shelves).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookshelves: %w", err)
	}
	for i := range shelves {
		books, err := r.members(r.db, shelves[i].ID)
		if err != nil {
			return nil, err
		}
		shelves[i].Books = books
	}
	return shelves, nil
}

// Delete removes a shelf and its membership rows. Member books are kept.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.get(tx, id); err != nil {
			return err
		}
		if err := tx.Where("bookshelf_id = ?", id).Delete(&entities.BookshelfBook{}).Error; err != nil {
			return fmt.Errorf("failed to delete memberships of bookshelf %d: %w", id, err)
		}
		if err := tx.Delete(&entities.Bookshelf{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete bookshelf %d: %w", id, err)
		}
		return nil
	})
}

// AddBook places a book on a shelf.
func (r *Repository) AddBook(shelfID, bookID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.get(tx, shelfID); err != nil {
			return err
		}
		if err := requireBook(tx, bookID); err != nil {
			return err
		}

		var count int64
		err := tx.Model(&entities.BookshelfBook{}).
			Where("bookshelf_id = ? AND book_id = ?", shelfID, bookID).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if count > 0 {
			return membershipConflict(shelfID, bookID)
		}

		link := entities.BookshelfBook{BookshelfID: shelfID, BookID: bookID, CreatedAt: r.now()}
		if err := tx.Omit("Bookshelf", "Book").Create(&link).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return membershipConflict(shelfID, bookID)
			}
			return fmt.Errorf("failed to add book %d to bookshelf %d: %w", bookID, shelfID, err)
		}
		return nil
	})
}

// RemoveBook takes a book off a shelf. The book itself is untouched.
func (r *Repository) RemoveBook(shelfID, bookID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.get(tx, shelfID); err != nil {
			return err
		}
		result := tx.Where("bookshelf_id = ? AND book_id = ?", shelfID, bookID).
			Delete(&entities.BookshelfBook{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove book %d from bookshelf %d: %w", bookID, shelfID, result.Error)
		}
		if result.RowsAffected == 0 {
			return &entities.NotFoundError{Resource: "book", ID: bookID, Parent: "bookshelf", ParentID: shelfID}
		}
		return nil
	})
}

// Stats computes statistics from the shelf's current members.
func (r *Repository) Stats(id uint) (*stats.Shelf, error) {
	shelf, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	result := stats.Compute(*shelf, shelf.Books)
	return &result, nil
}

// Count returns the total number of shelves.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Bookshelf{}).Count(&count).Error
	return count, err
}

func (r *Repository) get(tx *gorm.DB, id uint) (*entities.Bookshelf, error) {
	var shelf entities.Bookshelf
	err := tx.First(&shelf, id).Error
	if database.IsNotFound(err) {
		return nil, &entities.NotFoundError{Resource: "bookshelf", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bookshelf %d: %w", id, err)
	}
	shelf.Books = []entities.Book{}
	return &shelf, nil
}

func (r *Repository) members(tx *gorm.DB, shelfID uint) ([]entities.Book, error) {
	linked := tx.Model(&entities.BookshelfBook{}).Select("book_id").Where("bookshelf_id = ?", shelfID)

	books := []entities.Book{}
	err := tx.Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id IN (?)", linked).
		Order("id ASC").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load books of bookshelf %d: %w", shelfID, err)
	}
	for i := range books {
		if books[i].Reviews == nil {
			books[i].Reviews = []entities.Review{}
		}
	}
	return books, nil
}

func requireBook(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up book %d: %w", id, err)
	}
	if count == 0 {
		return &entities.NotFoundError{Resource: "book", ID: id}
	}
	return nil
}

func membershipConflict(shelfID, bookID uint) error {
	return &entities.ConflictError{
		Resource: "book",
		Field:    "id",
		Value:    bookID,
		Parent:   "bookshelf",
		ParentID: shelfID,
	}
}
