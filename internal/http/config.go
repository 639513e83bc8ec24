package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core stores
	BookStore   BookStore
	ReviewStore ReviewStore
	ShelfStore  ShelfStore

	// Health check target
	Database Pinger

	// Audit trail (optional)
	AuditLogger ChangeLogger
	AuditReader AuditReader

	// Task queue client (optional)
	TaskQueue          TaskQueue
	AuditRetentionDays int

	// Static frontend; skipped when the directory does not exist
	StaticPath string

	// CORS origins; "*" allows all
	CORSAllowedOrigins []string

	// Application info
	ServiceName string
	Version     string
}
