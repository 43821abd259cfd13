package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"foodpoint/app"
	"foodpoint/db"
)

// loadEnv loads .env in development (ignores error if file doesn't exist).
// In production, variables should be set directly.
func loadEnv() {
	if os.Getenv("ENV") == "production" {
		return
	}

	// Use Overload to ensure .env values override system environment variables
	envPath := ".env"
	if err := godotenv.Overload(envPath); err != nil {
		log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		return
	}
	log.Printf("Successfully loaded environment variables from %s (overriding system variables)", envPath)
}

func main() {
	root := &cobra.Command{
		Use:          "foodpoint",
		Short:        "Restaurant billing API",
		Long:         "FoodPoint serves the menu, order and sales API used by the billing front-end.",
		SilenceUsage: true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	}

	root.AddCommand(serveCmd, migrateCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

func runMigrate(ctx context.Context) error {
	if err := db.InitDB(ctx); err != nil {
		return err
	}
	defer db.CloseDB()

	if err := db.Migrate(ctx, db.DB); err != nil {
		return err
	}
	log.Printf("✅ Migrations applied")
	return nil
}

func runServe(ctx context.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize application
	handler, err := app.Initialize(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	addr := "0.0.0.0:" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", addr)
		log.Printf("Orders endpoint: http://localhost:%s/api/orders", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
