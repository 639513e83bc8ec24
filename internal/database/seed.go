package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func sampleBooks() []entities.Book {
	gatsby := "A classic American novel set in the Jazz Age."
	mockingbird := "A gripping tale of racial injustice in the American South."
	return []entities.Book{
		{
			Title:           "The Great Gatsby",
			Author:          "F. Scott Fitzgerald",
			ISBN:            "9780743273565",
			PublicationYear: 1925,
			Pages:           180,
			Genre:           "Fiction",
			Description:     &gatsby,
		},
		{
			Title:           "To Kill a Mockingbird",
			Author:          "Harper Lee",
			ISBN:            "9780061120084",
			PublicationYear: 1960,
			Pages:           281,
			Genre:           "Fiction",
			Description:     &mockingbird,
		},
	}
}

// SeedSampleData populates an empty catalog with two books and a shelf
// holding both. It does nothing if any book already exists.
// Returns true if data was inserted.
func (d *Database) SeedSampleData() (bool, error) {
	var count int64
	if err := d.DB.Model(&entities.Book{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	err := d.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		books := sampleBooks()
		for i := range books {
			books[i].CreatedAt = now
			books[i].UpdatedAt = now
			if err := tx.Create(&books[i]).Error; err != nil {
				return fmt.Errorf("failed to create book %q: %w", books[i].Title, err)
			}
		}

		shelf := entities.Bookshelf{Name: "My Reading Collection", Owner: "John Doe", CreatedAt: now}
		if err := tx.Create(&shelf).Error; err != nil {
			return fmt.Errorf("failed to create shelf: %w", err)
		}

		for _, b := range books {
			link := entities.BookshelfBook{BookshelfID: shelf.ID, BookID: b.ID, CreatedAt: now}
			if err := tx.Omit("Bookshelf", "Book").Create(&link).Error; err != nil {
				return fmt.Errorf("failed to add %q to shelf: %w", b.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Printf("Seeded sample catalog data")
	return true, nil
}
