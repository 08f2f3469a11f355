package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"astrotrack/internal/personnel/cache"
	"astrotrack/internal/personnel/events"
	"astrotrack/internal/personnel/handler"
	personnelmetrics "astrotrack/internal/personnel/metrics"
	"astrotrack/internal/personnel/service"
	"astrotrack/internal/personnel/store"
	"astrotrack/internal/platform/config"
	"astrotrack/internal/platform/database"
	"astrotrack/internal/platform/health"
	"astrotrack/internal/platform/httpserver"
	"astrotrack/internal/platform/kafka"
	"astrotrack/internal/platform/logger"
	"astrotrack/internal/platform/metrics"
	redisclient "astrotrack/internal/platform/redis"
	"astrotrack/pkg/platform/circuit"
)

// personnelStore is satisfied by both the in-memory and SQL stores.
type personnelStore interface {
	service.PersonStore
	service.DutyStore
	service.StoreTx
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("astrotrack stopped", "error", err)
		stop()
		os.Exit(1)
	}
	log.Info("astrotrack stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checks := health.New(0)

	st, closeStore, err := openStore(ctx, cfg.Database, checks)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(personnelmetrics.New(reg)),
		service.WithMaxRetries(cfg.Database.TxMaxRetries),
	}

	redisClient, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		checks.Add("redis", redisClient.Health)
		opts = append(opts, service.WithHistoryCache(cache.NewRedis(redisClient.Client, cfg.Redis.HistoryTTL)))
		log.Info("duty history cache enabled", "ttl", cfg.Redis.HistoryTTL)
	}

	kafkaClient, err := kafka.New(ctx, cfg.Kafka)
	if err != nil {
		return err
	}
	if kafkaClient != nil {
		defer kafkaClient.Close()
		if err := kafka.EnsureTopic(ctx, kafkaClient, cfg.Kafka.DutyTopic, cfg.Kafka.TopicPartitions, cfg.Kafka.TopicReplicas); err != nil {
			log.Warn("could not ensure duty topic", "topic", cfg.Kafka.DutyTopic, "error", err)
		}
		publisher, err := events.NewKafka(kafkaClient, cfg.Kafka.DutyTopic)
		if err != nil {
			return err
		}
		breaker := circuit.New("duty-events",
			circuit.WithFailureThreshold(cfg.Kafka.BreakerThreshold),
			circuit.WithCooldown(cfg.Kafka.BreakerCooldown),
		)
		checks.Add("kafka", kafkaClient.Ping)
		opts = append(opts, service.WithEventPublisher(events.NewBreakerPublisher(publisher, breaker, log)))
		log.Info("duty events enabled", "topic", cfg.Kafka.DutyTopic)
	}

	svc, err := service.New(st, st, st, opts...)
	if err != nil {
		return fmt.Errorf("build personnel service: %w", err)
	}

	router := chi.NewRouter()
	checks.Register(router)
	router.Handle("/metrics", metrics.Handler(reg))
	handler.New(svc, log, metrics.New(reg), cfg.Server.RequestTimeout).Register(router)

	srv := httpserver.New(cfg.Server, router)
	log.Info("starting astrotrack", "addr", cfg.Server.Addr, "driver", cfg.Database.Driver)
	return httpserver.Run(ctx, srv, cfg.Server.ShutdownTimeout)
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, checks *health.Handler) (personnelStore, func(), error) {
	if cfg.Driver == config.DriverMemory {
		return store.NewInMemory().WithTimeout(cfg.TxTimeout), func() {}, nil
	}

	driver := database.Driver(cfg.Driver)
	db, err := database.Open(ctx, driver, cfg.URL, database.Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = db.Close() }
	if err := store.Migrate(ctx, db, driver); err != nil {
		closeDB()
		return nil, nil, err
	}
	checks.Add("database", db.PingContext)
	return store.NewSQL(db, driver).WithTimeout(cfg.TxTimeout), closeDB, nil
}
