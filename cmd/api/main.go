package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/spendly/internal/config"
	"github.com/MrJamesThe3rd/spendly/internal/database"
	spendlyHttp "github.com/MrJamesThe3rd/spendly/internal/http"
	txHandler "github.com/MrJamesThe3rd/spendly/internal/http/transaction"
	"github.com/MrJamesThe3rd/spendly/internal/logging"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
	txStore "github.com/MrJamesThe3rd/spendly/internal/transaction/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to configure logger", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	dsn := cfg.DSN()

	if err := database.Migrate(cfg.DB.Driver, dsn); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	db, err := database.New(cfg.DB.Driver, dsn)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	transactionService := transaction.NewService(txStore.New(db))
	transactionH := txHandler.NewHandler(transactionService)

	router := spendlyHttp.New(logger, cfg.CORS.AllowedOrigins, db, transactionH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "driver", cfg.DB.Driver)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}

		return nil
	})

	return g.Wait()
}
