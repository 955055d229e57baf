package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/safar/pos-backend/internal/config"
	"github.com/safar/pos-backend/internal/database"
)

func main() {
	lg, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	if len(os.Args) < 2 {
		lg.Fatal("Usage: go run scripts/run_migrations.go [up|down]")
	}

	direction := database.MigrateDirection(os.Args[1])
	if direction != database.MigrateUp && direction != database.MigrateDown {
		lg.Fatal("Direction must be 'up' or 'down'", zap.String("got", os.Args[1]))
	}

	cfg, err := config.Load()
	if err != nil {
		lg.Fatal("Load config", zap.Error(err))
	}

	if err := database.Migrate(cfg.Database.URL, direction); err != nil {
		lg.Fatal("Run migrations", zap.Error(err), zap.String("direction", string(direction)))
	}

	lg.Info("Migrations complete", zap.String("direction", string(direction)))
}
