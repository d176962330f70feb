package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erazemk/zaloga/internal/api"
	"github.com/erazemk/zaloga/internal/auth"
	"github.com/erazemk/zaloga/internal/config"
	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/logger"
	"github.com/erazemk/zaloga/internal/metrics"
	"github.com/erazemk/zaloga/internal/service"
	"github.com/erazemk/zaloga/internal/session"
	"github.com/erazemk/zaloga/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

// openDatabase opens the database and brings its schema up to date.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	log.Info("database ready", zap.String("path", cfg.Database.Path))

	secret := cfg.Session.Secret
	if secret == "" {
		// Generated on first run and kept in the settings table.
		if secret, err = store.GetSessionSecret(ctx, database); err != nil {
			return err
		}
	}

	revoker, closeRevoker, err := session.NewRevoker(ctx, cfg.Session, database)
	if err != nil {
		return err
	}
	defer closeRevoker()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
	}

	svc := service.New(database, auth.NewHasher(cfg.Auth.BcryptCost), cfg.Tenancy.Mode, log.Named("service"))
	router := api.NewRouter(api.Deps{
		Service: svc,
		Sessions: &session.Manager{
			DB:         database,
			Secret:     secret,
			TTL:        cfg.Session.TTL,
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.Secure,
			Revoker:    revoker,
			Logger:     log.Named("session"),
		},
		Metrics:     m,
		MetricsPath: cfg.Metrics.Path,
		CORS:        cfg.Server.CORS,
		Logger:      log.Named("api"),
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started",
			zap.String("addr", cfg.Server.Addr),
			zap.String("mode", cfg.Tenancy.Mode),
			zap.String("revocation", cfg.Session.Revocation),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	if n, err := store.PurgeExpiredRevocations(shutdownCtx, database, time.Now()); err == nil && n > 0 {
		log.Info("purged expired revocations", zap.Int64("count", n))
	}

	log.Info("server stopped, closing database")
	return nil
}
