package entities

import (
	"time"
)

type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"index;size:255;not null" json:"title"`
	Author          string    `gorm:"index;size:255;not null" json:"author"`
	ISBN            string    `gorm:"uniqueIndex;size:13;not null" json:"isbn"`
	PublicationYear int       `json:"publication_year"`
	Pages           int       `gorm:"not null" json:"pages"`
	Genre           string    `gorm:"index;size:100;not null" json:"genre"`
	Description     *string   `gorm:"type:text" json:"description"`
	Reviews         []Review  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"reviews"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// Fields returns the user-editable part of the book, used to re-validate
// the record after a partial update.
func (b *Book) Fields() BookFields {
	return BookFields{
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Pages:           b.Pages,
		Genre:           b.Genre,
		Description:     b.Description,
	}
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"index;not null" json:"book_id"`
	Reviewer  string    `gorm:"size:100;not null" json:"reviewer"`
	Rating    float64   `gorm:"not null" json:"rating"`
	Comment   *string   `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type Bookshelf struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:255;not null" json:"name"`
	Owner     string    `gorm:"size:255;not null" json:"owner"`
	Books     []Book    `gorm:"-" json:"books"`
	CreatedAt time.Time `json:"created_at"`
}

// BookshelfBook is one shelf membership row. The composite primary key is
// the uniqueness constraint on (bookshelf_id, book_id).
type BookshelfBook struct {
	BookshelfID uint      `gorm:"primaryKey;autoIncrement:false" json:"bookshelf_id"`
	BookID      uint      `gorm:"primaryKey;autoIncrement:false;index" json:"book_id"`
	Bookshelf   Bookshelf `gorm:"foreignKey:BookshelfID" json:"-"`
	Book        Book      `gorm:"foreignKey:BookID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookFields carries the values accepted when creating a book.
type BookFields struct {
	Title           string  `json:"title" validate:"required,min=1,max=255"`
	Author          string  `json:"author" validate:"required,min=1,max=255"`
	ISBN            string  `json:"isbn" validate:"required,min=10,max=13"`
	PublicationYear int     `json:"publication_year"`
	Pages           int     `json:"pages" validate:"gt=0"`
	Genre           string  `json:"genre" validate:"required,min=1,max=100"`
	Description     *string `json:"description"`
}

// BookPatch is a partial update. A nil field is left unchanged.
type BookPatch struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ISBN            *string `json:"isbn"`
	PublicationYear *int    `json:"publication_year"`
	Pages           *int    `json:"pages"`
	Genre           *string `json:"genre"`
	Description     *string `json:"description"`
}

// Apply copies the supplied fields onto book.
func (p BookPatch) Apply(book *Book) {
	if p.Title != nil {
		book.Title = *p.Title
	}
	if p.Author != nil {
		book.Author = *p.Author
	}
	if p.ISBN != nil {
		book.ISBN = *p.ISBN
	}
	if p.PublicationYear != nil {
		book.PublicationYear = *p.PublicationYear
	}
	if p.Pages != nil {
		book.Pages = *p.Pages
	}
	if p.Genre != nil {
		book.Genre = *p.Genre
	}
	if p.Description != nil {
		book.Description = p.Description
	}
}

// IsEmpty reports whether no field was supplied.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.ISBN == nil &&
		p.PublicationYear == nil && p.Pages == nil && p.Genre == nil && p.Description == nil
}

type ReviewFields struct {
	Reviewer string   `json:"reviewer" validate:"required,min=1,max=100"`
	Rating   *float64 `json:"rating" validate:"required,gte=0,lte=5"`
	Comment  *string  `json:"comment"`
}

type ShelfFields struct {
	Name  string `json:"name" form:"name" validate:"required,min=1,max=255"`
	Owner string `json:"owner" form:"owner" validate:"required,min=1,max=255"`
}

// BookFilter narrows List results. Empty fields match everything.
type BookFilter struct {
	Genre  string
	Author string
}

func (Book) TableName() string {
	return "books"
}

func (Review) TableName() string {
	return "reviews"
}

func (Bookshelf) TableName() string {
	return "bookshelves"
}

func (BookshelfBook) TableName() string {
	return "bookshelf_books"
}
