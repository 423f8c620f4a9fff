// Package main is the entry point for the jp-stores API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/auth"
	v1 "github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/http/v1"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/logger"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/numerator"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting jp-stores server")

	// --- Database ---
	// No fallback credentials: the DSN must come from the environment.
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	caps, err := postgres.DetectCapabilities(ctx, pool)
	if err != nil {
		log.Fatalw("failed to detect schema capabilities", "error", err)
	}

	txManager := postgres.NewTxManager(pool)
	numeratorService := numerator.New(pool.Unwrap())

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Auth ---
	tokens, err := auth.NewTokenManager(
		mustEnv("JWT_SECRET"),
		getEnvDuration("AUTH_TOKEN_TTL", 12*time.Hour),
	)
	if err != nil {
		log.Fatalw("failed to initialize token manager", "error", err)
	}

	attempts := auth.NewAttemptStore(auth.DefaultAttemptStoreConfig())
	attempts.Start()
	defer attempts.Stop()

	authService := auth.NewService(auth_repo.NewUserRepo(txManager), tokens, attempts, txManager)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		TxManager:    txManager,
		Capabilities: caps,
		Logger:       log,
		Numerator:    numeratorService,
		Audit:        auditService,
		AuthService:  authService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
