package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"socialnet/internal/auth"
	"socialnet/internal/db"
	"socialnet/internal/server"
	"socialnet/internal/social"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer database.Close()
		logger.Info("schema applied", zap.String("db", cfg.Database.Path))
		return nil
	},
}

func newService(database *sql.DB) *social.Service {
	return social.New(database, logger,
		auth.NewHasher(cfg.Auth.BcryptCost),
		auth.NewTokens(cfg.Auth.JWTSecret, cfg.GetTokenTTL()),
		social.Policy{
			RejectSelfFollow:      cfg.Social.RejectSelfFollow,
			RequireReactionTarget: cfg.Social.RequireReactionTarget,
		})
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer database.Close()

	srv := server.New(newService(database), logger, server.Options{AllowedOrigins: cfg.Server.AllowedOrigins})
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", httpSrv.Addr), zap.String("db", cfg.Database.Path))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
