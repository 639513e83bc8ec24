package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const (
	defaultListLimit = 10
)

type BooksController struct {
	store BookStore
	audit ChangeLogger
}

func NewBooksController(store BookStore, audit ChangeLogger) *BooksController {
	return &BooksController{store: store, audit: audit}
}

// DeleteBookResponse is returned by DELETE /books/:id.
type DeleteBookResponse struct {
	Message string `json:"message"`
	BookID  uint   `json:"book_id"`
}

// ListBooks handles GET /books?genre=&author=&skip=&limit=
func (bc *BooksController) ListBooks(c *gin.Context) {
	skip, ok := parseQueryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := parseQueryInt(c, "limit", defaultListLimit)
	if !ok {
		return
	}

	filter := entities.BookFilter{
		Genre:  c.Query("genre"),
		Author: c.Query("author"),
	}

	books, err := bc.store.List(filter, skip, limit)
	if err != nil {
		respondServiceError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetBook handles GET /books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.Get(id)
	if err != nil {
		respondServiceError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook handles POST /books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var fields entities.BookFields
	if !bindJSON(c, &fields) {
		return
	}

	book, err := bc.store.Create(fields)
	if err != nil {
		respondServiceError(c, err, "create book")
		return
	}

	bc.logChange(c, entities.AuditEventCreate, "book_create", book.ID,
		fmt.Sprintf("Created book: %s", book.Title), map[string]any{"isbn": book.ISBN})
	respondCreated(c, book)
}

// UpdateBook handles PUT and PATCH /books/:id. Only supplied fields change.
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch entities.BookPatch
	if !bindJSON(c, &patch) {
		return
	}

	book, err := bc.store.Update(id, patch)
	if err != nil {
		respondServiceError(c, err, "update book")
		return
	}

	bc.logChange(c, entities.AuditEventUpdate, "book_update", book.ID,
		fmt.Sprintf("Updated book: %s", book.Title), nil)
	c.JSON(http.StatusOK, book)
}

// DeleteBook handles DELETE /books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.Delete(id); err != nil {
		respondServiceError(c, err, "delete book")
		return
	}

	bc.logChange(c, entities.AuditEventDelete, "book_delete", id,
		fmt.Sprintf("Deleted book %d", id), nil)
	c.JSON(http.StatusOK, DeleteBookResponse{Message: "Book deleted successfully", BookID: id})
}

func (bc *BooksController) logChange(c *gin.Context, eventType entities.AuditEventType, action string, id uint, description string, metadata map[string]any) {
	if bc.audit == nil {
		return
	}
	bc.audit.LogChange(GetRequestID(c), eventType, action, "book", id, description, metadata)
}
