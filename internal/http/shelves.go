package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type ShelvesController struct {
	store ShelfStore
	audit ChangeLogger
}

func NewShelvesController(store ShelfStore, audit ChangeLogger) *ShelvesController {
	return &ShelvesController{store: store, audit: audit}
}

// CreateShelfResponse is returned by POST /bookshelves.
type CreateShelfResponse struct {
	Message   string              `json:"message"`
	Bookshelf *entities.Bookshelf `json:"bookshelf"`
}

// DeleteShelfResponse is returned by DELETE /bookshelves/:id.
type DeleteShelfResponse struct {
	Message     string `json:"message"`
	BookshelfID uint   `json:"bookshelf_id"`
}

// CreateShelf handles POST /bookshelves. Name and owner come from a JSON
// body or, when there is no body, from the query string.
func (sc *ShelvesController) CreateShelf(c *gin.Context) {
	var fields entities.ShelfFields
	if c.Request.ContentLength > 0 {
		if !bindJSON(c, &fields) {
			return
		}
	} else if err := c.ShouldBindQuery(&fields); err != nil {
		respondBadRequest(c, "invalid query: "+err.Error())
		return
	}

	shelf, err := sc.store.Create(fields)
	if err != nil {
		respondServiceError(c, err, "create bookshelf")
		return
	}

	sc.logChange(c, entities.AuditEventCreate, "bookshelf_create", shelf.ID,
		fmt.Sprintf("Created bookshelf: %s", shelf.Name), map[string]any{"owner": shelf.Owner})
	respondCreated(c, CreateShelfResponse{Message: "Bookshelf created", Bookshelf: shelf})
}

// GetShelf handles GET /bookshelves/:id
func (sc *ShelvesController) GetShelf(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shelf, err := sc.store.Get(id)
	if err != nil {
		respondServiceError(c, err, "get bookshelf")
		return
	}
	c.JSON(http.StatusOK, shelf)
}

// ListShelves handles GET /bookshelves
func (sc *ShelvesController) ListShelves(c *gin.Context) {
	shelves, err := sc.store.List()
	if err != nil {
		respondServiceError(c, err, "list bookshelves")
		return
	}
	c.JSON(http.StatusOK, shelves)
}

// DeleteShelf handles DELETE /bookshelves/:id
func (sc *ShelvesController) DeleteShelf(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := sc.store.Delete(id); err != nil {
		respondServiceError(c, err, "delete bookshelf")
		return
	}

	sc.logChange(c, entities.AuditEventDelete, "bookshelf_delete", id, fmt.Sprintf("Deleted bookshelf %d", id), nil)
	c.JSON(http.StatusOK, DeleteShelfResponse{Message: "Bookshelf deleted successfully", BookshelfID: id})
}

// AddBook handles POST /bookshelves/:id/books/:book_id
func (sc *ShelvesController) AddBook(c *gin.Context) {
	shelfID, bookID, ok := parseMembershipParams(c)
	if !ok {
		return
	}

	if err := sc.store.AddBook(shelfID, bookID); err != nil {
		respondServiceError(c, err, "add book to bookshelf")
		return
	}

	sc.logChange(c, entities.AuditEventMembership, "bookshelf_add_book", shelfID,
		fmt.Sprintf("Added book %d to bookshelf %d", bookID, shelfID), map[string]any{"book_id": bookID})
	respondSuccess(c, "Book added to bookshelf")
}

// RemoveBook handles DELETE /bookshelves/:id/books/:book_id
func (sc *ShelvesController) RemoveBook(c *gin.Context) {
	shelfID, bookID, ok := parseMembershipParams(c)
	if !ok {
		return
	}

	if err := sc.store.RemoveBook(shelfID, bookID); err != nil {
		respondServiceError(c, err, "remove book from bookshelf")
		return
	}

	sc.logChange(c, entities.AuditEventMembership, "bookshelf_remove_book", shelfID,
		fmt.Sprintf("Removed book %d from bookshelf %d", bookID, shelfID), map[string]any{"book_id": bookID})
	respondSuccess(c, "Book removed from bookshelf")
}

// GetStats handles GET /bookshelves/:id/stats
func (sc *ShelvesController) GetStats(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := sc.store.Stats(id)
	if err != nil {
		respondServiceError(c, err, "bookshelf stats")
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseMembershipParams(c *gin.Context) (shelfID, bookID uint, ok bool) {
	if shelfID, ok = parseIDParam(c, "id"); !ok {
		return 0, 0, false
	}
	if bookID, ok = parseIDParam(c, "book_id"); !ok {
		return 0, 0, false
	}
	return shelfID, bookID, true
}

func (sc *ShelvesController) logChange(c *gin.Context, eventType entities.AuditEventType, action string, id uint, description string, metadata map[string]any) {
	if sc.audit == nil {
		return
	}
	sc.audit.LogChange(GetRequestID(c), eventType, action, "bookshelf", id, description, metadata)
}
