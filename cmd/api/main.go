package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transaction_form/internal/adapters"
	"transaction_form/internal/adapters/storage"
	"transaction_form/internal/email"
	"transaction_form/internal/events"
	"transaction_form/internal/formlinks"
	"transaction_form/internal/formstore"
	"transaction_form/internal/fub"
	apphttp "transaction_form/internal/http"
	"transaction_form/internal/http/router"
	"transaction_form/internal/notification"
	"transaction_form/internal/scheduler"
	"transaction_form/internal/transactions"
	"transaction_form/internal/transactions/ports"
	"transaction_form/internal/transactions/service"
	"transaction_form/internal/web"
	"transaction_form/platform/cache"
	"transaction_form/platform/config"
	"transaction_form/platform/db"
	"transaction_form/platform/logger"
	"transaction_form/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "formStore", cfg.GetFormStore())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var rdb *redis.Client
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		c, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		rdb = c
		return nil
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		log.Info("redis connection established")
	}

	store, health, closeStore := initFormStore(ctx, cfg, log)
	if closeStore != nil {
		defer closeStore()
	}

	retryClient, closeRetry := initNoteRetryClient(cfg, log)
	if closeRetry != nil {
		defer closeRetry()
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	fubModule := fub.NewModule(cfg, rdb, log)

	// Anti-Corruption Layer: the transactions domain only sees ports.CRMGateway
	crmGateway := adapters.NewFUBGateway(fubModule.Service(), cfg.GetFUBDealStageFilter())

	opts := []service.Option{
		service.WithFormStore(store),
		service.WithEventBus(eventBus),
	}
	if retryClient != nil {
		opts = append(opts, service.WithNoteRetry(adapters.NewNoteRetryScheduler(retryClient)))
	}
	transactionsModule := transactions.NewModule(service.New(crmGateway, log, opts...), val)

	webModule, err := web.NewModule(formlinks.NewBuilder(cfg), transactionsModule.Service())
	if err != nil {
		log.Error("failed to initialize web module", "error", err)
		panic("failed to initialize web module: " + err.Error())
	}

	notificationModule := notification.New(email.NewSender(cfg), transactionsModule.Service(), log)
	notificationModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			transactionsModule,
			webModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initFormStore builds the configured form store. The health checker is nil
// unless the store has a backing service worth probing.
func initFormStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.FormStore, apphttp.HealthChecker, func()) {
	switch cfg.GetFormStore() {
	case config.FormStorePostgres:
		var pool *pgxpool.Pool
		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		log.Info("database connection established")

		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, pool, formstore.Migrations())
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

		store := formstore.NewPostgresStore(pool)
		return store, store, pool.Close

	case config.FormStoreMinIO:
		objects, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		var store *formstore.MinIOStore
		if err := withRetry(ctx, log, "ensure forms bucket", 5, 2*time.Second, func() error {
			s, err := formstore.NewMinIOStore(ctx, objects, cfg.GetMinioBucketForms())
			if err != nil {
				return err
			}
			store = s
			return nil
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketForms())
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		log.Info("storage service initialized", "formsBucket", cfg.GetMinioBucketForms())
		return store, nil, nil

	default:
		return formstore.NewMemoryStore(), nil, nil
	}
}

func initNoteRetryClient(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Info("deal note retries disabled: REDIS_URL not configured")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize note retry client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
