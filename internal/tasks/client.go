package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Client runs catalog maintenance tasks on a backlite queue stored in its
// own SQLite file, so queue churn never contends with catalog writes.
type Client struct {
	client *backlite.Client
	db     *sql.DB
	config Config

	mu      sync.RWMutex
	started bool
	queues  []string
}

// TasksDBPath returns the path of the queue database kept next to the
// catalog database: "./bookshelf.db" becomes "./bookshelf-tasks.db".
func TasksDBPath(mainDBPath string) string {
	dir := filepath.Dir(mainDBPath)
	base := filepath.Base(mainDBPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	return filepath.Join(dir, name+"-tasks"+ext)
}

// NewClient creates a new task queue client with a dedicated SQLite database.
func NewClient(mainDBPath string, cfg Config) (*Client, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	db, err := sql.Open("sqlite3", TasksDBPath(mainDBPath)+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}

	// workers plus headroom for enqueues from HTTP handlers and the scheduler
	db.SetMaxOpenConns(cfg.Workers + 5)
	db.SetMaxIdleConns(cfg.Workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          &stdLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create backlite client: %w", err)
	}

	if err := client.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install backlite schema: %w", err)
	}

	return &Client{
		client: client,
		db:     db,
		config: cfg,
	}, nil
}

// Register adds queues to the client. Must be called before Start().
func (c *Client) Register(queues ...backlite.Queue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, q := range queues {
		c.client.Register(q)
		c.queues = append(c.queues, q.Config().Name)
	}
}

// Queues returns the names of the registered queues in registration order.
func (c *Client) Queues() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.queues...)
}

// Start begins processing tasks. Use Stop() for graceful shutdown.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	names := strings.Join(c.queues, ", ")
	c.mu.Unlock()

	log.Printf("[TASK] Queue started with %d workers (queues: %s)", c.config.Workers, names)
	c.client.Start(ctx)
}

// Stop waits for running tasks until ctx expires. Reports whether every
// worker finished in time.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.RLock()
	if !c.started {
		c.mu.RUnlock()
		return true
	}
	c.mu.RUnlock()

	log.Println("[TASK] Stopping queue...")
	success := c.client.Stop(ctx)
	if success {
		log.Println("[TASK] Queue stopped gracefully")
	} else {
		log.Println("[TASK] Queue stopped with timeout (some tasks may not have completed)")
	}
	return success
}

// Close releases the queue database. Call it after Stop().
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Enqueue saves a single task and returns its ID. Tasks for a queue that was
// never registered are refused, since no worker would pick them up.
func (c *Client) Enqueue(task backlite.Task) (string, error) {
	name := task.Config().Name
	if !c.registered(name) {
		return "", fmt.Errorf("failed to enqueue %s: queue is not registered", name)
	}

	ids, err := c.client.Add(task).Save()
	if err != nil {
		return "", fmt.Errorf("failed to enqueue %s: %w", name, err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("failed to enqueue %s: no task id returned", name)
	}
	return ids[0], nil
}

func (c *Client) registered(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, q := range c.queues {
		if q == name {
			return true
		}
	}
	return false
}

// Status returns the status of a task by ID.
func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.client.Status(ctx, taskID)
}

// stdLogger implements backlite.Logger using standard library log.
type stdLogger struct{}

func (l *stdLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (l *stdLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
