package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type auditPage struct {
	Events      []entities.AuditEvent `json:"events"`
	Page        int                   `json:"page"`
	Limit       int                   `json:"limit"`
	TotalPages  int                   `json:"total_pages"`
	TotalEvents int64                 `json:"total_events"`
}

func TestAuditAPI_RecordsMutations(t *testing.T) {
	s := newTestServer(t)

	bookID := s.createBook(t, bookBody("9780743273565"))
	shelfID := s.createShelf(t, "Reading")
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, fmt.Sprintf("/bookshelves/%d/books/%d", shelfID, bookID), nil).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, fmt.Sprintf("/books/%d", bookID), map[string]any{"pages": 10}).Code)

	// failed mutations are not recorded
	require.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/books", bookBody("9780743273565")).Code)
	s.audit.Wait()

	w := s.do(t, http.MethodGet, "/api/audit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[auditPage](t, w)
	assert.Equal(t, int64(4), page.TotalEvents)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 25, page.Limit)

	actions := map[string]bool{}
	for _, e := range page.Events {
		actions[e.Action] = true
		assert.NotEmpty(t, e.RequestID)
	}
	assert.True(t, actions["book_create"])
	assert.True(t, actions["bookshelf_create"])
	assert.True(t, actions["bookshelf_add_book"])
	assert.True(t, actions["book_update"])

	t.Run("filter by type", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/audit?type=membership", nil)
		page := decode[auditPage](t, w)
		require.Len(t, page.Events, 1)
		assert.Equal(t, "bookshelf_add_book", page.Events[0].Action)
	})

	t.Run("entity history", func(t *testing.T) {
		w := s.do(t, http.MethodGet, fmt.Sprintf("/api/audit/book/%d", bookID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		history := decode[auditPage](t, w)
		assert.Len(t, history.Events, 2)
	})

	t.Run("unknown entity type", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/audit/author/1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuditAPI_PaginationClamp(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/audit?page=0&limit=500", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[auditPage](t, w)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 25, page.Limit)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Events)
}
