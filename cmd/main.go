package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"dealflow/internal/adapter/events"
	httpadapter "dealflow/internal/adapter/http"
	kafkaadapter "dealflow/internal/adapter/kafka"
	"dealflow/internal/adapter/memory"
	"dealflow/internal/adapter/payment"
	"dealflow/internal/adapter/postgres"
	redisadapter "dealflow/internal/adapter/redis"
	"dealflow/internal/adapter/usecase"
	"dealflow/internal/config"
	"dealflow/internal/core/port"
	"dealflow/internal/db"
)

// main is the entry point of the deal engine. It loads configuration,
// optionally runs database migrations, wires the store, lock, payment rail
// and event publisher into the usecase, then serves HTTP until a termination
// signal arrives.
func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := cfg.Log.NewLogger(os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql, logger)
	if err != nil {
		return fmt.Errorf("database connection: %w", err)
	}
	defer pool.Close()

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String(), logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var (
		locker     port.Locker = memory.NewLocker()
		publishers events.Fanout
	)
	if cfg.Redis.Addr != "" {
		client, err := redisadapter.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis connection: %w", err)
		}
		defer client.Close()
		locker = redisadapter.NewLocker(client, cfg.Redis.LockTTL, logger)
		publishers = append(publishers, redisadapter.NewPublisher(client, cfg.Redis.Channel))
		logger.Info("using redis for locks and events", slog.String("channel", cfg.Redis.Channel))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := kafkaadapter.NewPublisher(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka publisher: %w", err)
		}
		defer kp.Close()
		publishers = append(publishers, kp)
		logger.Info("publishing transitions to kafka", slog.String("topic", cfg.Kafka.Topic))
	}
	var publisher port.EventPublisher = publishers
	if len(publishers) == 0 {
		publisher = events.NewLogPublisher(logger)
	}

	svc := usecase.NewDealUseCase(
		postgres.NewStore(pool),
		payment.NewSimulatedRail(cfg.Payment),
		publisher,
		locker,
		usecase.Config{
			MinScore:       cfg.Settlement.MinScore,
			Currency:       cfg.Settlement.Currency,
			PaymentTimeout: cfg.Settlement.PaymentTimeout,
			SiblingPolicy:  usecase.SiblingPolicy(cfg.Settlement.SiblingPolicy),
		},
		logger,
	)

	if cfg.Psql.Seed {
		camps, err := db.Seed(ctx, svc)
		if err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("seed data inserted", slog.Int("campaigns", len(camps)))
		}
	}

	handler := httpadapter.NewHandler(svc, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// In-flight settlements finish their payment phase before exit.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server gracefully stopped")
		return nil
	})
	return g.Wait()
}
