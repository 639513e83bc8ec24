package http

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(cfg.CORSAllowedOrigins))

	health := NewHealthController(cfg.Database, cfg.ServiceName, cfg.Version)
	router.GET("/health", health.Status)

	books := NewBooksController(cfg.BookStore, cfg.AuditLogger)
	router.GET("/books", books.ListBooks)
	router.POST("/books", books.CreateBook)
	router.GET("/books/:id", books.GetBook)
	router.PUT("/books/:id", books.UpdateBook)
	router.PATCH("/books/:id", books.UpdateBook)
	router.DELETE("/books/:id", books.DeleteBook)

	reviews := NewReviewsController(cfg.ReviewStore, cfg.AuditLogger)
	router.GET("/books/:id/reviews", reviews.ListReviews)
	router.POST("/books/:id/reviews", reviews.CreateReview)
	router.DELETE("/books/:id/reviews/:review_id", reviews.DeleteReview)

	shelves := NewShelvesController(cfg.ShelfStore, cfg.AuditLogger)
	router.GET("/bookshelves", shelves.ListShelves)
	router.POST("/bookshelves", shelves.CreateShelf)
	router.GET("/bookshelves/:id", shelves.GetShelf)
	router.DELETE("/bookshelves/:id", shelves.DeleteShelf)
	router.GET("/bookshelves/:id/stats", shelves.GetStats)
	router.POST("/bookshelves/:id/books/:book_id", shelves.AddBook)
	router.DELETE("/bookshelves/:id/books/:book_id", shelves.RemoveBook)

	api := router.Group("/api")
	if cfg.AuditReader != nil {
		audit := NewAuditController(cfg.AuditReader)
		api.GET("/audit", audit.GetAuditEvents)
		api.GET("/audit/:entity_type/:id", audit.GetEntityHistory)
	}
	if cfg.TaskQueue != nil {
		tasks := NewTasksController(cfg.TaskQueue, cfg.AuditRetentionDays)
		api.GET("/tasks/types", tasks.ListTaskTypes)
		api.GET("/tasks/:id", tasks.GetTaskStatus)
		api.POST("/tasks/:id/run", tasks.RunTask)
	}

	registerStatic(router, cfg.StaticPath)

	return router
}

// registerStatic serves the frontend from dir: assets under /static and
// index.html at the root.
func registerStatic(router *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}

	router.Static("/static", dir)

	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err == nil {
		router.GET("/", func(c *gin.Context) {
			c.File(index)
		})
	}
}
