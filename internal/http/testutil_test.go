package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/database"
	auditRepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
	"github.com/mrlokans/bookshelf/internal/database/shelves"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	db     *database.Database
	audit  *audit.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)

	auditService := audit.NewService(auditRepo.NewRepository(db.DB))
	t.Cleanup(func() {
		auditService.Wait()
		db.Close()
	})

	router := NewRouter(RouterConfig{
		BookStore:          books.NewRepository(db.DB),
		ReviewStore:        reviews.NewRepository(db.DB),
		ShelfStore:         shelves.NewRepository(db.DB),
		Database:           db,
		AuditLogger:        auditService,
		AuditReader:        auditService,
		AuditRetentionDays: 30,
		CORSAllowedOrigins: []string{"*"},
		ServiceName:        "Bookshelf API",
		Version:            "test",
	})

	return &testServer{router: router, db: db, audit: auditService}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func bookBody(isbn string) map[string]any {
	return map[string]any{
		"title":            "The Great Gatsby",
		"author":           "F. Scott Fitzgerald",
		"isbn":             isbn,
		"publication_year": 1925,
		"pages":            180,
		"genre":            "Fiction",
		"description":      "A classic American novel set in the Jazz Age.",
	}
}

func (s *testServer) createBook(t *testing.T, body map[string]any) uint {
	t.Helper()
	w := s.do(t, http.MethodPost, "/books", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created.ID
}
