package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"claimsview/internal/api"
	"claimsview/internal/config"
	"claimsview/internal/database"
	"claimsview/internal/records"
	"claimsview/internal/screens"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Loads every configured resource, starts the notification poller and
serves the query API until interrupted.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	schemas, err := config.LoadSchemas(settings.SchemaFile)
	if err != nil {
		return err
	}

	source, closeSource, err := openSource(ctx, settings)
	if err != nil {
		return err
	}
	defer closeSource()

	refresher := records.NewRefresher(records.NewStore(), source, schemas, logger)
	if err := refresher.Refresh(ctx); err != nil {
		logger.Warn("Initial load incomplete, serving what was fetched", zap.Error(err))
	}

	poller := records.NewPoller(refresher, settings.PollInterval, settings.PollResources, logger)
	poller.Start(ctx)
	defer poller.Stop()

	if !settings.LogDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}
	manager := screens.NewManager(refresher, settings.ScreenTTL, logger)
	opts := api.Options{
		CORSOrigins:           settings.CORSOrigins,
		NotificationsResource: settings.NotificationsResource,
		UnreadStatus:          settings.UnreadStatus,
		Logger:                logger,
	}
	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           api.NewRouter(api.NewHandler(refresher, manager, opts), opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		manager.RunSweeper(gctx, sweepInterval(settings.ScreenTTL))
		return nil
	})
	g.Go(func() error {
		logger.Info("Server starting", zap.String("addr", srv.Addr), zap.String("source", settings.Source))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// sweepInterval checks for idle screens a few times per TTL.
func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return max(ttl/4, time.Second)
}

// openSource builds the configured record source. The returned func
// releases whatever the source holds open.
func openSource(ctx context.Context, settings config.Settings) (records.Source, func(), error) {
	switch settings.Source {
	case config.SourcePostgres:
		pool, err := database.Connect(ctx, settings.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := migrateIfPresent(ctx, settings); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return records.NewPostgresSource(pool), pool.Close, nil
	default:
		src := records.NewHTTPSource(settings.BackendURL, settings.BackendToken, settings.RequestTimeout)
		src.MaxBodyBytes = settings.MaxBodyBytes
		return src, func() {}, nil
	}
}

// migrateIfPresent applies pending migrations when the migrations
// directory exists and skips them otherwise.
func migrateIfPresent(ctx context.Context, settings config.Settings) error {
	if _, err := os.Stat(settings.MigrationsPath); os.IsNotExist(err) {
		logger.Info("Migrations directory not found, skipping migrations", zap.String("path", settings.MigrationsPath))
		return nil
	}

	db, err := database.OpenSQL(ctx, settings.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("Running database migrations")
	if err := database.RunMigrations(db, settings.MigrationsPath); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}
	if version, dirty, err := database.MigrationVersion(db, settings.MigrationsPath); err == nil {
		logger.Info("Database migrations completed", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}
	return nil
}
