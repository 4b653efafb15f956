package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kiash254/pos-terminal/internal/app"
	"github.com/Kiash254/pos-terminal/internal/backend"
	"github.com/Kiash254/pos-terminal/internal/cart"
	"github.com/Kiash254/pos-terminal/internal/config"
	"github.com/Kiash254/pos-terminal/internal/session"
	"github.com/Kiash254/pos-terminal/pkg/logger"
	"github.com/Kiash254/pos-terminal/pkg/store"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pos-terminal",
		Short:         "Local gateway between the POS front-end and the store backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newServeCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the terminal gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "redis":
		return store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Store.TerminalID)
	default:
		return store.NewFileStore(cfg.Store.Dir)
	}
}

func serve() error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appLogger := logger.NewLogger(cfg.Server.Mode)

	// 2. Open the persistent store
	st, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// 3. Initialize Components
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, appLogger)
	sessions := session.NewManager(client, st, appLogger)
	engine := cart.NewEngine(st, appLogger)

	startCtx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout)
	defer cancel()

	// Pick up where the previous run left off. A dead backend or a stale
	// token just means the cashier logs in again.
	sessions.Restore(startCtx)
	engine.Load(startCtx)

	resilient := backend.NewResilient(client, sessions)
	deps := app.Deps{
		Sessions:  sessions,
		Cart:      engine,
		Catalog:   backend.NewCatalogService(resilient),
		Customers: backend.NewCustomerService(resilient),
		Sales:     backend.NewSalesService(resilient),
	}

	// 4. Setup Router
	r := app.SetupRouter(cfg, deps, appLogger)

	// 5. Run Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("gateway listening", "port", cfg.Server.Port, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("run server: %w", err)
	case <-quit:
	}
	appLogger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	appLogger.Info("gateway stopped")
	return nil
}
