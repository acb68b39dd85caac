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

	apiHttp "github.com/nzwalks/backend/internal/api/http"
	"github.com/nzwalks/backend/internal/config"
	"github.com/nzwalks/backend/internal/db"
	"github.com/nzwalks/backend/internal/repository"
	"github.com/nzwalks/backend/internal/server"
	"github.com/nzwalks/backend/internal/service"
	"github.com/nzwalks/backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel)

	appLogger.Info("starting region api", zap.String("env", cfg.Env))
	appLogger.Debug("debug messages are enabled")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if err := run(cfg, appLogger, quit); err != nil {
		appLogger.Error("app failed", zap.Error(err))
		_ = appLogger.Sync()
		os.Exit(1)
	}

	appLogger.Info("app stopped")
	_ = appLogger.Sync()
}

// run serves until quit fires. Startup errors are returned after the
// database connection has been released.
func run(cfg *config.Config, appLogger *zap.Logger, quit <-chan os.Signal) error {
	// Init database
	dbConn, err := db.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("database connect problem (driver %s): %w", cfg.Database.Driver, err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			appLogger.Error("error when closing", zap.Error(err))
		}
	}()
	appLogger.Info("database connection done", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(dbConn, cfg.Database.Driver); err != nil {
			return fmt.Errorf("database migration failed: %w", err)
		}
		appLogger.Info("database migrations applied")
	}

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbConn)
	services := service.NewServices(service.Deps{
		Repos: repos,
	})
	handlers := apiHttp.NewHandlers(services, dbConn)

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	return nil
}
