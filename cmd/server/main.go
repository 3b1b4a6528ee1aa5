package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditkafka "partnerhub/internal/audit/kafka"
	"partnerhub/internal/audit/publisher"
	auditmemory "partnerhub/internal/audit/store/memory"
	httprouter "partnerhub/internal/http"
	lookupservice "partnerhub/internal/lookup/service"
	lookupstore "partnerhub/internal/lookup/store"
	"partnerhub/internal/platform/config"
	"partnerhub/internal/platform/httpserver"
	"partnerhub/internal/platform/logger"
	"partnerhub/internal/platform/middleware"
	"partnerhub/internal/platform/postgres"
	platformredis "partnerhub/internal/platform/redis"
	registrationhandler "partnerhub/internal/registration/handler"
	"partnerhub/internal/registration/metrics"
	registrationservice "partnerhub/internal/registration/service"
	registrationstore "partnerhub/internal/registration/store"
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	auditPublisher, closeAudit, err := buildAuditPublisher(cfg, log)
	if err != nil {
		log.Error("failed to build audit publisher", "error", err)
		os.Exit(1)
	}
	defer closeAudit()

	resolverOpts := []lookupservice.Option{lookupservice.WithLogger(log)}
	if redisClient != nil {
		resolverOpts = append(resolverOpts, lookupservice.WithCache(redisClient.Client))
	}
	resolver := lookupservice.New(lookupstore.NewPostgres(db), resolverOpts...)

	store := registrationstore.NewPostgres(db)
	registrar := registrationservice.New(store, registrationstore.NewPostgresTx(db), resolver,
		registrationservice.WithLogger(log),
		registrationservice.WithMetrics(metrics.New()),
		registrationservice.WithAuditPublisher(auditPublisher),
	)

	router := httprouter.NewRouter(httprouter.RouterDeps{
		Registration:   registrationhandler.New(registrar, log),
		TokenValidator: middleware.NewJWTValidator(cfg.JWTSigningKey),
		Logger:         log,
		Health: func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(pingCtx); err != nil {
				return err
			}
			if redisClient != nil {
				return redisClient.Health(pingCtx)
			}
			return nil
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting partnerhub", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// buildAuditPublisher picks the audit sink: Kafka when brokers are
// configured, otherwise an in-process store that keeps local runs and
// tests self-contained.
func buildAuditPublisher(cfg config.Config, log *slog.Logger) (*publisher.Publisher, func(), error) {
	if cfg.Audit.KafkaBrokers == "" {
		p := publisher.New(auditmemory.New(), publisher.WithLogger(log))
		return p, p.Close, nil
	}

	sink, err := auditkafka.New(cfg.Audit.KafkaBrokers, cfg.Audit.Topic)
	if err != nil {
		return nil, nil, err
	}
	p := publisher.New(sink, publisher.WithLogger(log), publisher.WithAsyncBuffer(256))
	closeAll := func() {
		p.Close()
		sink.Close()
	}
	return p, closeAll, nil
}
