package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultEnvFile is loaded into the environment on startup when present
	DefaultEnvFile = ".env"

	// DefaultAuditCleanupSchedule runs retention cleanup daily at 03:00
	DefaultAuditCleanupSchedule = "0 3 * * *"
)
