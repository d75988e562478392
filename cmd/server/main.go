package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"leadengine/internal/analytics"
	"leadengine/internal/analytics/sink"
	"leadengine/internal/analytics/sink/kafka"
	"leadengine/internal/checker"
	"leadengine/internal/eligibility"
	"leadengine/internal/engagement"
	jwttoken "leadengine/internal/jwt_token"
	"leadengine/internal/leads"
	"leadengine/internal/platform/config"
	"leadengine/internal/platform/httpserver"
	"leadengine/internal/platform/logger"
	"leadengine/internal/platform/metrics"
	platformredis "leadengine/internal/platform/redis"
	"leadengine/internal/storage"
	pgstore "leadengine/internal/storage/postgres"
	redisstore "leadengine/internal/storage/redis"
	httptransport "leadengine/internal/transport/http"
	"leadengine/pkg/platform/middleware/visitor"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
	breakerFailures = 5
	breakerCooldown = 30 * time.Second
	tokenIssuer     = "leadengine"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("leadengine stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	health := map[string]httptransport.HealthCheck{}

	store, closeStore, err := buildStore(ctx, cfg, health)
	if err != nil {
		return err
	}
	defer closeStore()

	eventSink, dataLayer, closeSink, err := buildSink(cfg, log, health)
	if err != nil {
		return err
	}
	defer closeSink()

	serviceArea := eligibility.Default()
	if cfg.ServiceAreaFile != "" {
		serviceArea, err = eligibility.LoadFile(cfg.ServiceAreaFile)
		if err != nil {
			return fmt.Errorf("load service area: %w", err)
		}
	}
	log.Info("service area loaded", "version", serviceArea.Version(), "zip_codes", serviceArea.Len())

	emitter := analytics.NewEmitter(eventSink,
		analytics.WithLogger(log),
		analytics.WithMetrics(analytics.NewMetrics(prometheus.DefaultRegisterer)),
		analytics.WithDebugLog(cfg.IsDevelopment()),
	)
	pageViews := engagement.NewRegistry(emitter)
	leadSvc, err := leads.New(emitter, leads.WithLogger(log))
	if err != nil {
		return err
	}
	httpMetrics := metrics.New(prometheus.DefaultRegisterer)
	httpMetrics.TrackActivePageViews(pageViews.Len)

	var visitorCodec visitor.Codec
	if cfg.VisitorSigningKey != "" {
		visitorCodec = jwttoken.NewVisitorTokenService(cfg.VisitorSigningKey, tokenIssuer, visitor.CookieMaxAge)
	}

	handler, err := httptransport.NewHandler(httptransport.Deps{
		Store:         store,
		ServiceArea:   serviceArea,
		Availability:  checker.NewSimulatedLookup(cfg.LookupLatency),
		Emitter:       emitter,
		PageViews:     pageViews,
		Leads:         leadSvc,
		Logger:        log,
		Metrics:       httpMetrics,
		Gatherer:      prometheus.DefaultGatherer,
		DataLayer:     dataLayer,
		HealthChecks:  health,
		SecureCookies: cfg.SecureCookies,
		VisitorCodec:  visitorCodec,
	})
	if err != nil {
		return err
	}
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler), httpserver.WithSlowestHandler(cfg.LookupLatency))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting leadengine", "addr", cfg.Addr, "env", cfg.Env, "storage", cfg.Storage, "sink", cfg.Sink)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := pageViews.Sweep(gctx, cfg.PageViewMaxAge); n > 0 {
					log.Info("flushed abandoned page views", "count", n)
				}
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		// Flush what is still mounted; their unload beacons will not arrive.
		n := pageViews.Sweep(shutdownCtx, 0)
		log.Info("leadengine stopped", "flushed_page_views", n)
		return nil
	})
	return g.Wait()
}

func buildStore(ctx context.Context, cfg config.Server, health map[string]httptransport.HealthCheck) (storage.Store, func(), error) {
	switch cfg.Storage {
	case config.StorageRedis:
		client, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		health["redis"] = client.Health
		return redisstore.New(client.Client, redisstore.WithTTL(cfg.Redis.KeyTTL)), func() { _ = client.Close() }, nil

	case config.StoragePostgres:
		db, err := sql.Open(cfg.Postgres.Driver, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		store := pgstore.New(db, pgstore.WithTable(cfg.Postgres.Table))
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		health["postgres"] = db.PingContext
		return store, func() { _ = db.Close() }, nil

	default:
		return storage.NewInMemoryStore(), func() {}, nil
	}
}

func buildSink(cfg config.Server, log *slog.Logger, health map[string]httptransport.HealthCheck) (sink.Sink, *sink.Queue, func(), error) {
	if cfg.Sink == config.SinkKafka {
		producer, err := kafka.New(kafka.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		if err != nil {
			return nil, nil, nil, err
		}
		health["kafka"] = producer.Ping
		guarded := sink.Guard(producer, sink.NewCircuitBreaker(breakerFailures, breakerCooldown))
		return guarded, nil, producer.Close, nil
	}

	queue := sink.NewQueue(cfg.DataLayerLimit)
	if !cfg.IsDevelopment() {
		log.Warn("memory sink outside development: events are kept in process only")
		return queue, nil, func() {}, nil
	}
	return queue, queue, func() {}, nil
}
