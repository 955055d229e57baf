// Command seed-db creates the default clerk account and loads the product
// catalog from a JSON file.
//
// Usage:
//
//	go run ./cmd/seed-db [-products seed/products.json] [-email clerk@example.com] [-password secret]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/safar/pos-backend/internal/auth"
	"github.com/safar/pos-backend/internal/config"
	"github.com/safar/pos-backend/internal/database"
	"github.com/safar/pos-backend/internal/models"
	"github.com/safar/pos-backend/internal/store"
)

func main() {
	productsFile := flag.String("products", "seed/products.json", "Path to products JSON file (empty to skip)")
	email := flag.String("email", "clerk@example.com", "Email of the seeded user")
	password := flag.String("password", "secret", "Password of the seeded user")
	role := flag.String("role", string(models.UserRoleClerk), "Role of the seeded user (clerk or admin)")
	flag.Parse()

	lg, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, lg, *productsFile, *email, *password, models.UserRole(*role)); err != nil {
		lg.Fatal("Seed failed", zap.Error(err))
	}
}

func run(ctx context.Context, lg *zap.Logger, productsFile, email, password string, role models.UserRole) error {
	if !role.Valid() {
		return errors.Errorf("unknown role %q", role)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := database.Migrate(cfg.Database.URL, database.MigrateUp); err != nil {
		return errors.Wrap(err, "migrate")
	}

	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer db.Close()

	s := store.New(db, database.DefaultTxOptions())

	if err := seedUser(ctx, lg, s, email, password, role); err != nil {
		return err
	}

	if productsFile == "" {
		return nil
	}
	return seedProducts(ctx, lg, s, productsFile)
}

func seedUser(ctx context.Context, lg *zap.Logger, s *store.Store, email, password string, role models.UserRole) error {
	_, err := s.GetUserByEmail(ctx, email)
	if err == nil {
		lg.Info("User exists", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, database.ErrUserNotFound) {
		return errors.Wrap(err, "lookup user")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user, err := s.CreateUser(ctx, email, hash, role)
	if err != nil {
		return errors.Wrap(err, "create user")
	}

	lg.Info("User created", zap.String("email", user.Email), zap.Int64("id", user.ID))
	return nil
}

func seedProducts(ctx context.Context, lg *zap.Logger, s *store.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read products file")
	}

	var products []store.ProductInput
	if err := json.Unmarshal(data, &products); err != nil {
		return errors.Wrap(err, "parse products file")
	}

	for _, in := range products {
		p, err := s.UpsertProduct(ctx, in)
		if err != nil {
			return errors.Wrapf(err, "seed product %q", in.SKU)
		}
		lg.Info("Product seeded", zap.String("sku", p.SKU), zap.Int64("id", p.ID))
	}

	lg.Info("Products seeded", zap.Int("count", len(products)))
	return nil
}
