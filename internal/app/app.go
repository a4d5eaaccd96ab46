// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/garyellow/sookmyung-chatbot-go/internal/api"
	"github.com/garyellow/sookmyung-chatbot-go/internal/buildinfo"
	"github.com/garyellow/sookmyung-chatbot-go/internal/chat"
	"github.com/garyellow/sookmyung-chatbot-go/internal/config"
	"github.com/garyellow/sookmyung-chatbot-go/internal/genai"
	"github.com/garyellow/sookmyung-chatbot-go/internal/knowledge"
	"github.com/garyellow/sookmyung-chatbot-go/internal/logger"
	"github.com/garyellow/sookmyung-chatbot-go/internal/matcher"
	"github.com/garyellow/sookmyung-chatbot-go/internal/metrics"
	"github.com/garyellow/sookmyung-chatbot-go/internal/r2client"
	"github.com/garyellow/sookmyung-chatbot-go/internal/sentry"
	"github.com/garyellow/sookmyung-chatbot-go/internal/webhook"
)

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg            *config.Config
	logger         *logger.Logger
	metrics        *metrics.Metrics
	registry       *prometheus.Registry
	table          *knowledge.Table
	completer      genai.Completer
	webhookHandler *webhook.Handler // nil when LINE is not configured
	router         *gin.Engine
	server         *http.Server
}

// dependencies are the externally backed parts of an Application.
// Initialize builds the real ones; tests inject fakes.
type dependencies struct {
	logger    *logger.Logger
	registry  *prometheus.Registry
	table     *knowledge.Table
	completer genai.Completer
	messenger webhook.Messenger // nil disables the LINE webhook
}

// Initialize creates and initializes a new application with all dependencies.
// Any failure here is fatal: a bad knowledge source or a missing credential
// must stop the process before it accepts traffic.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log = log.WithField("service", cfg.ServiceName).WithField("release", buildinfo.Release())
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Set as default logger so package-level slog calls get the context handler.
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Release(),
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	if sentry.IsEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry error tracking enabled")
	}

	table, err := LoadKnowledge(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("knowledge: %w", err)
	}

	completer, err := genai.NewCompleter(ctx, cfg.Completion())
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	var messenger webhook.Messenger
	if cfg.LineEnabled() {
		if messenger, err = webhook.NewMessenger(cfg.LineChannelToken); err != nil {
			_ = completer.Close()
			return nil, fmt.Errorf("webhook: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)

	a, err := build(cfg, dependencies{
		logger:    log,
		registry:  registry,
		table:     table,
		completer: completer,
		messenger: messenger,
	})
	if err != nil {
		_ = completer.Close()
		return nil, err
	}

	log.Info("Initialization complete")
	return a, nil
}

// LoadKnowledge loads the configured knowledge table, creating an R2 client
// only for r2:// sources.
func LoadKnowledge(ctx context.Context, cfg *config.Config, log *logger.Logger) (*knowledge.Table, error) {
	loadCtx, cancel := context.WithTimeout(ctx, config.KnowledgeLoad)
	defer cancel()

	var fetcher knowledge.ObjectFetcher
	if strings.HasPrefix(cfg.KnowledgeSource, knowledge.R2Prefix) {
		client, err := r2client.New(loadCtx, cfg.R2())
		if err != nil {
			return nil, err
		}
		fetcher = client
	}

	table, err := knowledge.Load(loadCtx, cfg.KnowledgeSource, fetcher)
	if err != nil {
		return nil, err
	}

	source := cfg.KnowledgeSource
	if source == "" {
		source = "builtin"
	}
	log.WithField("source", source).WithField("entries", table.Len()).Info("Knowledge table loaded")
	return table, nil
}

// build wires the chat service, HTTP routes and server from deps.
func build(cfg *config.Config, deps dependencies) (*Application, error) {
	log := deps.logger
	m := metrics.New(deps.registry)
	m.SetKnowledgeEntries(deps.table.Len())

	service, err := chat.NewService(chat.ServiceConfig{
		Matcher:   matcher.New(deps.table),
		Completer: deps.completer,
		Strategy:  cfg.Strategy(),
		Metrics:   m,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	apiHandler, err := api.NewHandler(api.HandlerConfig{
		Service:     service,
		ServiceName: cfg.ServiceName,
		Metrics:     m,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}

	var webhookHandler *webhook.Handler
	if deps.messenger != nil {
		webhookHandler, err = webhook.NewHandler(webhook.HandlerConfig{
			ChannelSecret: cfg.LineChannelSecret,
			Messenger:     deps.messenger,
			Service:       service,
			Metrics:       m,
			Logger:        log,
		})
		if err != nil {
			return nil, err
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.CustomRecovery(api.Recovery(log)))
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(securityHeadersMiddleware())
	router.Use(api.CORS())

	a := &Application{
		cfg:            cfg,
		logger:         log,
		metrics:        m,
		registry:       deps.registry,
		table:          deps.table,
		completer:      deps.completer,
		webhookHandler: webhookHandler,
		router:         router,
	}

	apiHandler.Register(router)
	router.GET("/livez", a.livenessCheck)
	router.HEAD("/livez", a.livenessCheck)
	router.GET("/metrics",
		metricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{})))
	if webhookHandler != nil {
		router.POST("/webhook", webhookHandler.Handle)
		log.Info("LINE webhook enabled")
	}
	router.NoRoute(api.NotFound)

	a.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: config.HTTPReadHeader,
		ReadTimeout:       config.HTTPRead,
		WriteTimeout:      config.HTTPWrite,
		IdleTimeout:       config.HTTPIdle,
	}

	log.WithField("provider", deps.completer.Provider().String()).
		WithField("model", deps.completer.Model()).
		WithField("strategy", string(cfg.Strategy())).
		Info("Chat service ready")
	return a, nil
}

// Handler returns the HTTP handler serving all routes.
func (a *Application) Handler() http.Handler {
	return a.router
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// Run starts the HTTP server and blocks until ctx is canceled, a shutdown
// signal arrives or the server fails. It always shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutdown requested")
		return a.shutdown()
	})
	return g.Wait()
}

// shutdown stops accepting requests, drains in-flight work and closes
// resources, in that order.
func (a *Application) shutdown() error {
	//nolint:contextcheck // Shutdown must outlive the canceled run context.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	var errs []error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
		errs = append(errs, err)
	}

	if a.webhookHandler != nil {
		a.logger.Info("Waiting for webhook events to complete...")
		if err := a.webhookHandler.Shutdown(shutdownCtx); err != nil {
			a.logger.WithError(err).Warn("Webhook handler shutdown timeout")
		}
	}

	a.logger.Info("Closing resources...")
	if err := a.completer.Close(); err != nil {
		a.logger.WithError(err).WithField("component", "completer").Error("Component close error")
	}

	sentry.Flush(2 * time.Second)

	a.logger.Info("Shutdown complete")
	if err := a.logger.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("logger shutdown: %w", err))
	}
	return errors.Join(errs...)
}
