package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dropos/internal/config"
	"dropos/internal/httpapi"
	"dropos/internal/telemetry"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	startCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	rt, err := openRuntime(startCtx)
	if err != nil {
		return err
	}
	defer rt.Close()
	if err := validateSecurityConfig(rt.cfg); err != nil {
		return fmt.Errorf("invalid security configuration: %w", err)
	}

	detach := telemetry.Observe(rt.bus)
	defer detach()

	auth := httpapi.NewAuthManager(rt.cfg.AuthSecret, time.Duration(rt.cfg.AccessTokenTTLMinutes)*time.Minute, rt.svc)
	if err := auth.SeedOperator(startCtx, rt.cfg.OperatorUsername, rt.cfg.OperatorPassword); err != nil {
		return fmt.Errorf("seed operator: %w", err)
	}
	api := httpapi.New(rt.svc, auth, rt.cfg.AllowedOrigin)

	// No WriteTimeout: the event stream is long-lived.
	server := &http.Server{
		Addr:              rt.cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", rt.cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-sig:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("server stopped")
	return nil
}

func validateSecurityConfig(cfg config.Config) error {
	if len(cfg.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be set and at least 32 characters")
	}
	if cfg.OperatorUsername == "" {
		return fmt.Errorf("OPERATOR_USERNAME must not be empty")
	}
	if cfg.OperatorPassword != "" && len(cfg.OperatorPassword) < 8 {
		return fmt.Errorf("OPERATOR_PASSWORD must be at least 8 characters")
	}
	return nil
}
