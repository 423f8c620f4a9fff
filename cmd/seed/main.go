// Package main applies the schema and seeds a fresh database with an admin
// account and a little demo data. Safe to re-run: existing rows are kept.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/auth"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/customer"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/item"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/logger"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/numerator"
)

func main() {
	_ = godotenv.Load()

	schemaPath := flag.String("schema", "migrations/schema.sql", "path to schema file")
	withDemo := flag.Bool("demo", false, "seed demo catalog data")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("required environment variable DATABASE_URL not set")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	// --- Schema ---
	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalw("failed to read schema file", "path", *schemaPath, "error", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}
	log.Infow("schema applied", "path", *schemaPath)

	txManager := postgres.NewTxManager(pool)
	num := numerator.New(pool.Unwrap())

	// --- Admin account ---
	adminUser := getEnv("ADMIN_USERNAME", "admin")
	adminPass := os.Getenv("ADMIN_PASSWORD")
	if adminPass == "" {
		log.Fatal("required environment variable ADMIN_PASSWORD not set")
	}

	attempts := auth.NewAttemptStore(auth.DefaultAttemptStoreConfig())
	tokens, err := auth.NewTokenManager(getEnv("JWT_SECRET", "seed-only"), 0)
	if err != nil {
		log.Fatalw("failed to initialize token manager", "error", err)
	}
	authService := auth.NewService(auth_repo.NewUserRepo(txManager), tokens, attempts, txManager)

	_, err = authService.CreateUser(ctx, auth.CreateUserInput{
		Username:    adminUser,
		Password:    adminPass,
		DisplayName: "Administrator",
		AccessPages: []string{"admin"},
	})
	switch {
	case err == nil:
		log.Infow("admin account created", "username", adminUser)
	case apperror.IsDuplicate(err):
		log.Infow("admin account already exists", "username", adminUser)
	default:
		log.Fatalw("failed to create admin account", "error", err)
	}

	if !*withDemo {
		log.Info("seed complete")
		return
	}

	// --- Demo data ---
	customerService := customer.NewService(catalog_repo.NewCustomerRepo(txManager), txManager, num)
	itemService := item.NewService(catalog_repo.NewItemRepo(txManager), catalog_repo.NewPriceRepo(txManager), txManager, num)

	walkIn := customer.New(customer.CodeUnknown, "unknown")
	if err := customerService.Create(ctx, walkIn); err != nil && !apperror.IsDuplicate(err) {
		log.Fatalw("failed to seed walk-in customer", "error", err)
	}

	demoItems := []struct {
		barcode string
		name    string
		qty     float64
		selling float64
		market  float64
	}{
		{"4791234500017", "AA Battery 2-pack", 120, 350, 400},
		{"4791234500024", "USB-C Cable 1m", 60, 950, 1200},
		{"4791234500031", "Wireless Mouse", 25, 2400, 2900},
	}

	for _, d := range demoItems {
		it := item.New(d.barcode, d.name)
		it.Qty = types.NewQuantity(d.qty)

		price := &item.PriceRow{
			SellingPrice: types.NewMoney(d.selling),
			MarketPrice:  types.NewMoney(d.market),
			Username:     adminUser,
		}

		if err := itemService.CreateWithPrice(ctx, it, price); err != nil {
			if apperror.IsDuplicate(err) {
				continue
			}
			log.Fatalw("failed to seed item", "barcode", d.barcode, "error", err)
		}
	}

	log.Info("seed complete with demo data")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
