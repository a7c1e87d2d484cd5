package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"caslkey/internal/apiclient"
	apimetrics "caslkey/internal/apiclient/metrics"
	"caslkey/internal/channels"
	chanmetrics "caslkey/internal/channels/metrics"
	"caslkey/internal/events"
	"caslkey/internal/platform/config"
	"caslkey/internal/platform/database"
	"caslkey/internal/platform/health"
	"caslkey/internal/platform/kafka"
	"caslkey/internal/platform/kafka/producer"
	"caslkey/internal/platform/logger"
	"caslkey/internal/platform/redis"
	"caslkey/internal/platform/tracer"
	"caslkey/internal/session"
	sessionmetrics "caslkey/internal/session/metrics"
	"caslkey/internal/snapshot"
	"caslkey/internal/snapshot/store"
	httptransport "caslkey/internal/transport/http"
	"caslkey/internal/wizard"
	wizardmetrics "caslkey/internal/wizard/metrics"
	"caslkey/migrations"
	id "caslkey/pkg/domain"
	"caslkey/pkg/platform/circuit"
	"caslkey/pkg/platform/middleware/request"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	tokenIssuer       = "caslkey"
)

// backgroundTask runs until ctx is cancelled.
type backgroundTask func(ctx context.Context) error

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	probes := health.New(cfg.Server.Environment)

	st, purger, closeStore, err := buildStore(ctx, cfg, probes, log)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, closePublisher, err := buildPublisher(cfg, probes, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	api := apiclient.New(cfg.API.BaseURL,
		apiclient.WithAPIKey(cfg.API.Key),
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithBreaker(circuit.New("casl-api")),
		apiclient.WithTracer(tracer.NewOTel()),
		apiclient.WithMetrics(apimetrics.New()),
	)

	factory := newWizardFactory(cfg, api, st, publisher, log)
	manager, err := session.NewManager(factory,
		session.WithIdleTTL(cfg.Sessions.IdleTTL),
		session.WithCleanupInterval(cfg.Sessions.SweepEvery),
		session.WithLogger(log),
		session.WithMetrics(sessionmetrics.New()),
	)
	if err != nil {
		return fmt.Errorf("session manager: %w", err)
	}
	defer manager.Close()

	tokens := session.NewTokens(cfg.Sessions.SigningKey, tokenIssuer, cfg.Sessions.TokenTTL)
	handler := httptransport.New(manager, tokens, log)
	router := httptransport.NewRouter(handler, probes, httptransport.RouterConfig{
		MaxBodyBytes: httptransport.UploadBodyLimit(cfg.Verification.ScreenshotMaxBytes),
		// Advance may wait on a background check.
		RequestTimeout: cfg.Verification.BackgroundCheckTimeout + 2*cfg.API.Timeout,
		Metrics:        request.NewMetrics(),
	}, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	tasks := []backgroundTask{manager.Start}
	if purger != nil {
		sweeper, err := store.NewSweeper(purger, store.WithSweepLogger(log))
		if err != nil {
			return err
		}
		tasks = append(tasks, sweeper.Start)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	for _, task := range tasks {
		g.Go(func() error {
			if err := task(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// buildStore picks the snapshot backend. purger is nil for backends that
// expire keys on their own.
func buildStore(ctx context.Context, cfg config.Config, probes *health.Handler, log *slog.Logger) (snapshot.Store, store.Purger, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		probes.RegisterCheck("redis", func(ctx context.Context) error {
			client.RecordPoolStats()
			return client.Health(ctx)
		})
		return store.NewRedis(client.Client), nil, func() {
			if err := client.Close(); err != nil {
				log.Warn("redis close failed", "error", err)
			}
		}, nil

	case config.StoragePostgres:
		pool, err := database.New(ctx, database.DefaultConfig(cfg.Storage.DatabaseURL))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect database: %w", err)
		}
		if err := database.Migrate(ctx, pool.DB(), migrations.FS); err != nil {
			_ = pool.Close()
			return nil, nil, nil, err
		}
		probes.RegisterCheck("postgres", pool.Health)
		pg := store.NewPostgres(pool.DB())
		return pg, pg, func() {
			if err := pool.Close(); err != nil {
				log.Warn("database close failed", "error", err)
			}
		}, nil

	default:
		mem := store.NewMemory()
		return mem, mem, func() {}, nil
	}
}

// buildPublisher always logs completions in-process and adds Kafka when
// brokers are configured.
func buildPublisher(cfg config.Config, probes *health.Handler, log *slog.Logger) (events.Publisher, func(), error) {
	dispatcher := events.NewDispatcher()
	dispatcher.Subscribe(func(ctx context.Context, e events.VerificationComplete) {
		log.InfoContext(ctx, "verification complete",
			"casl_key_id", e.CASLKeyID,
			"trust_level", string(e.TrustLevel),
			"score", e.Score,
			"email_ref", logger.HashPII(e.VerificationData.User.Email),
		)
	})
	if cfg.Kafka.Brokers == "" {
		return dispatcher, func() {}, nil
	}

	if err := kafka.NewHealthChecker(cfg.Kafka.Brokers).Check(); err != nil {
		log.Warn("kafka brokers not reachable yet", "error", err)
	}
	prod, err := producer.New(producer.DefaultConfig(cfg.Kafka.Brokers), log)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	probes.RegisterCheck("kafka", prod.Healthy)
	kp := events.NewKafkaPublisher(prod, cfg.Kafka.Topic, events.WithAsyncBuffer(256), events.WithLogger(log))

	return events.Multi{dispatcher, kp}, func() {
		kp.Close()
		if err := prod.Close(); err != nil {
			log.Warn("kafka producer close failed", "error", err)
		}
	}, nil
}

// newWizardFactory builds one wizard per session. Each session keeps its
// snapshot under its own key prefix so an evicted session can be resumed.
func newWizardFactory(cfg config.Config, api wizard.API, st snapshot.Store, publisher events.Publisher, log *slog.Logger) session.Factory {
	wm := wizardmetrics.New()
	cm := chanmetrics.New()
	channelConfig := channels.Config{
		PollInterval:        cfg.Verification.PollInterval,
		MaxImageBytes:       cfg.Verification.ScreenshotMaxBytes,
		AllowedImageTypes:   cfg.Verification.AllowedImageTypes,
		PhoneResendCooldown: cfg.Verification.PhoneResendCooldown,
	}

	return func(_ context.Context, sid id.SessionID) (*wizard.Wizard, error) {
		sessionLog := log.With("session_id", sid.String())
		repo := snapshot.NewRepository(st,
			snapshot.WithPrefix(cfg.Storage.Prefix+sid.String()+":"),
			snapshot.WithMaxAge(cfg.Storage.MaxAge),
			snapshot.WithLogger(sessionLog),
		)
		return wizard.New(api, repo,
			wizard.WithLogger(sessionLog),
			wizard.WithMetrics(wm),
			wizard.WithChannelMetrics(cm),
			wizard.WithPublisher(publisher),
			wizard.WithChannelConfig(channelConfig),
			wizard.WithBackgroundCheckTimeout(cfg.Verification.BackgroundCheckTimeout),
		), nil
	}
}
