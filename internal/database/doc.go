// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── seed.go          # Sample catalog bootstrapping
//	├── errors.go        # Driver error classification
//	├── books/           # Book CRUD and filtered listing
//	├── reviews/         # Reviews nested under a book
//	├── shelves/         # Bookshelves, membership and statistics
//	└── audit/           # Audit event persistence
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./bookshelf.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	shelvesRepo := shelves.NewRepository(db.DB)
//
//	book, err := booksRepo.Get(123)
//	err = shelvesRepo.AddBook(1, book.ID)
//
// Repositories return the typed errors from the entities package
// (NotFoundError, ConflictError, ValidationError) so callers can map them
// without knowing about gorm or SQLite.
//
// # Interface Implementations
//
//   - books.Repository: implements http.BookStore
//   - reviews.Repository: implements http.ReviewStore
//   - shelves.Repository: implements http.ShelfStore
//   - audit.Repository: backs audit.Service
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/readinglists/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
