package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	auditrepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
	"github.com/mrlokans/bookshelf/internal/database/shelves"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// In-flight requests are drained by now, so their audit writes and
	// enqueued tasks can be flushed.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting %s v%s", cfg.App.Name, version)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabase(cfg.Database.Path, database.WithDebug(cfg.App.Debug))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.Database.SeedSample {
		if _, err := db.SeedSampleData(); err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
	}

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	routerCfg := http_controllers.RouterConfig{
		BookStore:          books.NewRepository(db.DB),
		ReviewStore:        reviews.NewRepository(db.DB),
		ShelfStore:         shelves.NewRepository(db.DB),
		Database:           db,
		AuditLogger:        auditService,
		AuditReader:        auditService,
		AuditRetentionDays: cfg.Audit.RetentionDays,
		StaticPath:         cfg.UI.StaticPath,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		ServiceName:        cfg.App.Name,
		Version:            version,
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var cleanupScheduler *scheduler.AuditCleanupScheduler
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:            cfg.Tasks.Workers,
			ReleaseAfter:       cfg.Tasks.ReleaseAfter,
			CleanupInterval:    cfg.Tasks.CleanupInterval,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}

		taskClient.Register(
			tasks.NewCleanupAuditEventsQueue(auditService, auditService, cfg.Audit.RetentionDays),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		routerCfg.TaskQueue = taskClient

		if cfg.Audit.CleanupSchedule != "" {
			cleanupScheduler = scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
			if err := cleanupScheduler.Start(taskCtx); err != nil {
				log.Printf("WARNING: audit cleanup scheduler disabled: %v", err)
				cleanupScheduler = nil
			}
		}
	} else {
		log.Printf("Task queue disabled; audit cleanup will not run")
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}
		auditService.Wait()
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	Serve(router, cfg, onShutdown)
}
