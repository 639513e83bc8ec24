// Package interfaces documents the core abstractions used throughout the application.
//
// The HTTP layer depends only on small interfaces declared next to the
// controllers that use them. Concrete implementations live in the database,
// audit and tasks packages, and checks.go pins each implementation to its
// interface at compile time.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Book catalog CRUD and filtered listing (internal/http/stores.go)
//   - ReviewStore: Reviews nested under a book (internal/http/stores.go)
//   - ShelfStore: Bookshelves, membership and statistics (internal/http/stores.go)
//   - Pinger: Database liveness for the health check (internal/http/health.go)
//
// ## Audit Interfaces
//
//   - ChangeLogger: Records catalog mutations (internal/http/stores.go)
//   - AuditReader: Paged audit trail queries (internal/http/audit.go)
//   - AuditEventCleaner, MaintenanceRecorder: Retention cleanup (internal/tasks/cleanup_audit.go)
//
// ## Background Work Interfaces
//
//   - TaskQueue: Enqueue and inspect background tasks (internal/http/tasks.go)
//   - TaskEnqueuer: Cron-driven task submission (internal/scheduler/audit_cleanup.go)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., reading lists):
//
//  1. Create sub-package: internal/database/readinglists/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface in internal/http and implement it
//
//  4. Add compile-time check:
//
//     var _ http.ReadingListStore = (*readinglists.Repository)(nil)
//
// # Adding a New Background Task
//
//  1. Define the task type and its queue in internal/tasks/
//
//  2. Register the queue in entrypoint.go before the client starts
//
//  3. Optionally schedule it from internal/scheduler/
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
