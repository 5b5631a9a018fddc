package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"vitien/internal/config"
	vhttp "vitien/internal/http"
	"vitien/internal/identity"
	"vitien/internal/ledger"
	"vitien/internal/ledger/memory"
	"vitien/internal/ledger/sqlite"
	applog "vitien/internal/log"
	"vitien/internal/middleware/ratelimit"
	"vitien/internal/services"
	"vitien/internal/token"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var store ledger.Store
	switch cfg.DataBackend {
	case "sqlite":
		s, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		store = s
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		store = memory.New()
		logger.Info("Initialized memory backend")
	}
	defer store.Close()

	var verifier identity.Verifier
	if cfg.AuthDevMode {
		// Dev mode: the literal credential "dev" signs in a fixed local user.
		verifier = identity.NewStaticVerifier(map[string]identity.Identity{
			"dev": {
				Subject: "dev-user",
				Email:   getenv("DEV_USER_EMAIL", "dev@localhost"),
				Name:    getenv("DEV_USER_NAME", "Dev User"),
			},
		})
		logger.Warn("Auth dev mode enabled - Google token verification is OFF")
	} else {
		verifier = identity.NewGoogleVerifier(cfg.GoogleClientID)
	}

	tokens := token.NewManager(cfg.JWTSecret)

	srv := vhttp.NewServer(vhttp.Options{
		Addr:            ":" + cfg.Port,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		DefaultTenantID: cfg.DefaultTenantID,
		Auth:            services.NewAuthService(store, verifier, tokens),
		Wallets:         services.NewWalletService(store),
		Transactions:    services.NewTransactionService(store),
		Statements:      services.NewStatementService(store),
		Tokens:          tokens,
		RateLimit:       ratelimit.Config{RequestsPerMinute: cfg.RequestsPerMinute},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
