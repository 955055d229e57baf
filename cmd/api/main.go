package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/safar/pos-backend/internal/api"
	"github.com/safar/pos-backend/internal/auth"
	"github.com/safar/pos-backend/internal/config"
	"github.com/safar/pos-backend/internal/database"
	"github.com/safar/pos-backend/internal/store"
	"github.com/safar/pos-backend/pkg/health"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return run(ctx, lg, m, cfg)
	})
}

func run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *config.Config) error {
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.URL, database.MigrateUp); err != nil {
			return errors.Wrap(err, "migrate")
		}
		lg.Info("Migrations applied")
	}

	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer db.Close()

	txOpts := database.DefaultTxOptions()
	txOpts.MaxRetries = cfg.Orders.MaxRetries
	txOpts.BaseBackoff = cfg.Orders.RetryBackoff
	s := store.New(db, txOpts)

	healthSvc := health.New()
	healthSvc.AddReadinessCheck("postgres", 2*time.Second, health.PingCheck(db))

	limiter := api.NewRateLimiter(cfg.Auth.LoginPerMinute, cfg.Auth.LoginBurst, 10*time.Minute)
	tokens := auth.NewTokenIssuer(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	h := api.NewHandler(s, tokens, healthSvc, limiter, lg)

	server := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: otelhttp.NewHandler(h.Routes(), "pos-api",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return zctx.Base(context.Background(), lg)
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		limiter.Cleanup(gCtx)
		return nil
	})
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Server.Addr))
		healthSvc.SetReady(true)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		healthSvc.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})

	return g.Wait()
}
