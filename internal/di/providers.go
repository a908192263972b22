package di

import (
	"fmt"
	"time"

	"StockLens/internal/domain/repository"
	"StockLens/internal/handler/api"
	internalrepo "StockLens/internal/repository"
	"StockLens/internal/service/derive"
	"StockLens/internal/service/gateway"
	"StockLens/internal/service/ratelimit"
	"StockLens/internal/usecase"
	"StockLens/pkg/cache"
	"StockLens/pkg/config"
	xhttp "StockLens/pkg/http"
	pkgkafka "StockLens/pkg/kafka"
	applogger "StockLens/pkg/logger"
	"StockLens/pkg/metrics"
	"StockLens/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// layeredMemoryTTL bounds how long the in-process layer may serve a value
// written through to Redis.
const layeredMemoryTTL = time.Minute

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideRegistry creates the Prometheus registry shared by every collector.
func ProvideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// ProvideMetrics creates the load/fetch recorder.
func ProvideMetrics(cfg *config.Config, reg *prometheus.Registry) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Noop{}
	}
	return metrics.New(reg)
}

// ProvideHTTPClient creates the outbound client used against the backend.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(cfg.Backend.Timeout))
}

// ProvideGateway creates the backend facet fetcher.
func ProvideGateway(cfg *config.Config, hc *xhttp.Client, l *applogger.Logger, m repository.Metrics) repository.FacetFetcher {
	return gateway.New(cfg.Backend.BaseURL,
		gateway.WithHTTPClient(hc),
		gateway.WithLogger(l),
		gateway.WithMetrics(m),
	)
}

// ProvideDeriver maps the derive section onto deriver options.
func ProvideDeriver(cfg *config.Config) *derive.Deriver {
	d := cfg.Derive
	opts := derive.DefaultOptions()
	opts.Thresholds = derive.Thresholds{
		DebtToEquity:      d.DebtToEquityThreshold,
		ProfitMarginFloor: d.ProfitMarginFloor,
		PECeiling:         d.PECeiling,
		ROEFloor:          d.ROEFloor,
		HealthFloor:       d.HealthFloor,
	}
	opts.GrowthAsFraction = d.GrowthAsFraction
	opts.MarginAsFraction = d.MarginAsFraction
	opts.CashFlowInMillions = d.CashFlowInMillions
	opts.ChartDays = d.ChartDays
	opts.NewsLimit = d.NewsLimit
	return derive.New(opts)
}

// ProvideOrchestrator creates the load orchestrator.
func ProvideOrchestrator(fetcher repository.FacetFetcher, deriver *derive.Deriver, m repository.Metrics, l *applogger.Logger) *usecase.Orchestrator {
	return usecase.NewOrchestrator(fetcher, deriver, m, l)
}

// ProvideCache creates the session-preference cache: in-process memory, or
// Redis fronted by a short-lived memory layer.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Backend != "redis" {
		return cache.NewMemoryCache(), nil
	}
	opts := []cache.RedisOption{cache.WithRedisPrefix(cfg.Cache.Prefix)}
	if cfg.Cache.URL != "" {
		opts = append(opts, cache.WithRedisURL(cfg.Cache.URL))
	} else {
		opts = append(opts,
			cache.WithRedisAddr(cfg.Cache.Addr),
			cache.WithRedisPassword(cfg.Cache.Password),
			cache.WithRedisDB(cfg.Cache.DB),
		)
	}
	rc, err := cache.NewRedisCache(opts...)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc, cache.WithLayeredMemoryTTL(layeredMemoryTTL)), nil
}

// ProvideThemeStore creates the per-session theme store.
func ProvideThemeStore(cfg *config.Config, c cache.Service) repository.ThemeStore {
	return internalrepo.NewThemeStore(c, cfg.Cache.ThemeTTL)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when no brokers are
// configured.
func ProvideKafkaProducer(cfg *config.Config, reg *prometheus.Registry) (*pkgkafka.Producer, error) {
	if !cfg.KafkaEnabled() {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithBatchTimeout(cfg.Kafka.BatchTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithRegisterer(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSessions creates the session registry. Every session also publishes
// its committed views when a producer is available.
func ProvideSessions(cfg *config.Config, l *applogger.Logger, producer *pkgkafka.Producer) *usecase.Sessions {
	if producer == nil {
		return usecase.NewSessions(l, cfg.Server.SessionIdleTTL)
	}
	return usecase.NewSessions(l, cfg.Server.SessionIdleTTL, internalrepo.NewSnapshotPublisher(producer, cfg.Kafka.Topic))
}

// ProvideLimiter creates the per-session load limiter.
func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Server.LoadsPerSecond, cfg.Server.LoadBurst)
}

// ProvideViewHandler creates the HTTP/WebSocket handler.
func ProvideViewHandler(
	cfg *config.Config,
	l *applogger.Logger,
	orch *usecase.Orchestrator,
	sessions *usecase.Sessions,
	themes repository.ThemeStore,
	limiter *ratelimit.Limiter,
) *api.ViewHandler {
	return api.NewViewHandler(l, orch, sessions, themes, limiter, cfg.Server.Locale)
}

// ProvideHTTPServer creates the Echo server with the handler's routes. The
// cache doubles as the readiness probe.
func ProvideHTTPServer(cfg *config.Config, h *api.ViewHandler, l *applogger.Logger, reg *prometheus.Registry, c cache.Service) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(h, l,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetrics(metricsPath, reg),
		xhttp.WithReadiness(c.Ping),
	)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	orch *usecase.Orchestrator,
	sessions *usecase.Sessions,
	httpServer *xhttp.Server,
	c cache.Service,
	producer *pkgkafka.Producer,
) *server.App {
	return server.New(cfg, l, orch, sessions, httpServer, c, producer)
}
