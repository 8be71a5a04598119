package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	_ "vendorflow/docs"
	"vendorflow/pkg/api"
	"vendorflow/pkg/auth"
	"vendorflow/pkg/config"
	"vendorflow/pkg/logger"
	"vendorflow/pkg/migrate"
	"vendorflow/pkg/order"
	ordermem "vendorflow/pkg/order/memory"
	orderpg "vendorflow/pkg/order/postgres"
	"vendorflow/pkg/otel"
	"vendorflow/pkg/purchasing"
	"vendorflow/pkg/vendor"
	vendormem "vendorflow/pkg/vendorrepo/memory"
	vendorpg "vendorflow/pkg/vendorrepo/postgres"
)

// @title VendorFlow API
// @version 1.0
// @description API for managing vendors, purchase orders and vendor performance
// @host localhost:8443
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.New(os.Stderr, logger.LevelError, "vendorflow", nil).Error(context.Background(), "load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, logger.ParseLevel(cfg.Log.Level), "vendorflow", otel.GetTraceID)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "shutdown", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	ctx := context.Background()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{ServiceName: "vendorflow", Host: cfg.Otel.Host, Probability: cfg.Otel.Probability})
	if err != nil {
		return err
	}
	defer shutdown(context.Background())
	tracer := tp.Tracer("vendorflow")

	var (
		orders  order.Repository
		vendors vendor.Repository
	)
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := migrate.Up(ctx, db); err != nil {
			return err
		}
		orders, vendors = orderpg.New(db), vendorpg.New(db)
		log.Info(ctx, "using postgres storage")
	} else {
		orders, vendors = ordermem.New(), vendormem.New()
		log.Warn(ctx, "DATABASE_URL not set, using in-memory storage")
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer rdb.Close()

	handler := api.New(api.Options{
		Service:      purchasing.New(orders, vendors, log),
		Sessions:     auth.NewStore(rdb, cfg.Auth.SessionTTL),
		Log:          log,
		Tracer:       tracer,
		AuthDisabled: cfg.Auth.Disabled,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.HTTP.Addr, "tls", cfg.HTTP.TLS())
		if cfg.HTTP.TLS() {
			errCh <- srv.ListenAndServeTLS(cfg.HTTP.TLSCert, cfg.HTTP.TLSKey)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-sigCtx.Done():
		log.Info(ctx, "shutting down")
	}

	sctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}
