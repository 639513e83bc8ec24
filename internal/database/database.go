package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

type options struct {
	debug bool
}

// Option tweaks how the database connection is opened.
type Option func(*options)

// WithDebug enables SQL statement logging.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logLevel := logger.Warn
	if o.debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// SQLite serializes writers; one connection keeps transactions from
	// tripping over each other's locks.
	sqlDB.SetMaxOpenConns(1)

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Review{},
		&entities.Bookshelf{},
		&entities.BookshelfBook{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

// dsn enables foreign key enforcement, which SQLite leaves off by default.
func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_foreign_keys=on&_busy_timeout=5000"
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is alive.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
