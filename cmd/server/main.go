// main wires the persona service: configuration, stores, the email policy,
// the lifecycle service, and the HTTP surface. Business logic lives in the
// internal packages; this file only connects them and manages shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"persona/internal/audit"
	httpapi "persona/internal/http"
	"persona/internal/identity"
	"persona/internal/persona/emailpolicy"
	"persona/internal/persona/handler"
	"persona/internal/persona/service"
	personastore "persona/internal/persona/store/persona"
	usedemailstore "persona/internal/persona/store/usedemail"
	"persona/internal/platform/config"
	"persona/internal/platform/httpserver"
	"persona/internal/platform/logger"
	"persona/internal/platform/metrics"
	"persona/internal/platform/postgres"
	platformredis "persona/internal/platform/redis"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	var (
		personas service.PersonaStore
		ledger   emailpolicy.Ledger
	)

	switch {
	case cfg.DatabaseURL != "":
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Error("schema bootstrap failed", "error", err)
			os.Exit(1)
		}
		personas = personastore.NewPostgres(db)
		ledger = usedemailstore.NewPostgres(db)
		log.Info("using postgres stores")
	case cfg.RedisURL != "":
		client, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		personas = personastore.NewInMemory()
		ledger = usedemailstore.NewRedis(client)
		log.Info("using in-memory persona store with redis email ledger")
	default:
		personas = personastore.NewInMemory()
		ledger = usedemailstore.NewInMemory()
		log.Warn("no DATABASE_URL or REDIS_URL set, state will not survive restarts")
	}

	var auditor service.AuditPublisher = audit.NewLogPublisher(log)
	if len(cfg.AuditBrokers) > 0 {
		kafkaAuditor, err := audit.NewKafkaPublisher(ctx, cfg.AuditBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("kafka audit publisher failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = kafkaAuditor.Flush(flushCtx)
			kafkaAuditor.Close()
		}()
		auditor = kafkaAuditor
		log.Info("audit events publishing to kafka", "topic", cfg.AuditTopic)
	}

	policy := emailpolicy.New(cfg.EmailDomains, ledger)
	personaService := service.New(personas, policy,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithAuditPublisher(auditor),
	)

	verifier := identity.NewVerifier(cfg.JWTSigningKey, cfg.JWTIssuer)
	personaHandler := handler.New(personaService, log, m, verifier)
	router := httpapi.NewRouter(personaHandler)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("persona service listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("persona service stopped")
}
