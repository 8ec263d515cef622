package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/fiveka-shop/config"
	"github.com/Gunvolt24/fiveka-shop/internal/cache"
	cachemem "github.com/Gunvolt24/fiveka-shop/internal/cache/memory"
	cacheredis "github.com/Gunvolt24/fiveka-shop/internal/cache/redis"
	"github.com/Gunvolt24/fiveka-shop/internal/kafka"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/Gunvolt24/fiveka-shop/internal/repo/postgres"
	rest "github.com/Gunvolt24/fiveka-shop/internal/transport/http"
	"github.com/Gunvolt24/fiveka-shop/internal/usecase"
	"github.com/Gunvolt24/fiveka-shop/pkg/logger"
	"github.com/Gunvolt24/fiveka-shop/pkg/metrics"
	"github.com/Gunvolt24/fiveka-shop/pkg/telemetry"
	"github.com/Gunvolt24/fiveka-shop/pkg/validate"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App — собранное приложение и его внешние интерфейсы.
type App struct {
	Logger          ports.Logger              // логгер
	HTTPServer      *http.Server              // API магазина
	MetricsServer   *http.Server              // отдельный /metrics; nil: только на HTTPServer
	Publisher       ports.OrderEventPublisher // события заказов
	gracefulTimeout time.Duration             // время ожидания завершения HTTP-серверов
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// newKVStore — бэкенд кэша по конфигурации. Недоступный при старте Redis не мешает
// запуску (если не задан RequireOnStart): чтения идут в Store, клиент переподключится сам.
func newKVStore(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.KVStore, func(), error) {
	if cfg.Cache.Backend == config.CacheBackendMemory {
		log.Infof(ctx, "cache backend=memory capacity=%d", cfg.Cache.Capacity)
		return cachemem.NewKVStore(cfg.Cache.Capacity), func() {}, nil
	}

	client := cacheredis.NewClient(cacheredis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: cfg.Redis.DialTimeout,
	})
	if err := cacheredis.Ping(ctx, client); err != nil {
		if cfg.Redis.RequireOnStart {
			_ = client.Close()
			return nil, func() {}, err
		}
		log.Warnf(ctx, "cache backend=redis unavailable at start, serving from store: %v", err)
	} else {
		log.Infof(ctx, "cache backend=redis addr=%s db=%d", cfg.Redis.Addr, cfg.Redis.DB)
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warnf(ctx, "redis close: %v", err)
		}
	}
	return cacheredis.NewKVStore(client), closeFn, nil
}

// OpenCache — кэш магазина поверх выбранного бэкенда; close освобождает соединения.
func OpenCache(ctx context.Context, cfg *config.Config, log ports.Logger) (*cache.Store, func(), error) {
	kv, closeKV, err := newKVStore(ctx, cfg, log)
	if err != nil {
		return nil, func() {}, err
	}
	return cache.New(kv, log), closeKV, nil
}

// newPublisher — Kafka-продюсер или заглушка, если события выключены.
func newPublisher(ctx context.Context, cfg *config.Config, log ports.Logger) ports.OrderEventPublisher {
	if !cfg.Kafka.Enabled {
		log.Infof(ctx, "order events disabled")
		return kafka.NoopPublisher{}
	}
	log.Infof(ctx, "order events enabled brokers=%v topic=%s", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	return kafka.NewProducer(&kafka.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	}, log)
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	closers := []func(){func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}}
	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*App, Cleanup, error) {
		cleanup()
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Схема БД до открытия пула.
	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Postgres.DSN, cfg.Postgres.MigrationsDir); err != nil {
			logg.Errorf(ctx, "migrations failed: %v", err)
			return fail(err)
		}
		logg.Infof(ctx, "migrations applied")
	}

	// Пул подключений Postgres
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		logg.Errorf(ctx, "postgres pool: %v", err)
		return fail(err)
	}
	closers = append(closers, pool.Close)

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию: no-op.
	shutdownTrace, err := telemetry.SetupTracing(ctx, telemetry.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logg.Warnf(ctx, "failed to setup tracing: %v", err)
		shutdownTrace = func(context.Context) error { return nil }
	} else if cfg.Tracing.Enabled {
		logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
			cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	}
	closers = append(closers, func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
	})

	// Кэш.
	shopCache, closeCache, err := OpenCache(ctx, cfg, logg)
	if err != nil {
		logg.Errorf(ctx, "cache backend: %v", err)
		return fail(err)
	}
	closers = append(closers, closeCache)

	// Репозитории и сервисы.
	users := postgres.NewUserRepository(pool)
	admins := postgres.NewAdminRepository(pool)
	products := postgres.NewProductRepository(pool)
	orders := postgres.NewOrderRepository(pool)
	shopStatus := postgres.NewShopStatusRepository(pool)

	publisher := newPublisher(ctx, cfg, logg)

	shopSvc := usecase.NewShopService(shopStatus, shopCache, logg)
	services := rest.Services{
		Auth:    usecase.NewAuthService(users, admins, shopCache, logg),
		Catalog: usecase.NewCatalogService(products, shopCache, logg, validate.NewProductValidator()),
		Shop:    shopSvc,
		Orders:  usecase.NewOrderService(orders, publisher, logg),
		Admin:   usecase.NewAdminService(users, products, orders, logg),
		Bot:     usecase.NewBotService(shopSvc, cfg.Telegram.WebAppURL, logg),
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(services, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, rest.RouterOptions{
		OTelServiceName: otelServiceName,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		VerifyInitData:  cfg.Telegram.VerifyInitData,
		BotToken:        cfg.Telegram.BotToken,
		InitDataMaxAge:  cfg.Telegram.InitDataMaxAge,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	var metricsSrv *http.Server
	if addr := cfg.Metrics.Addr; addr != "" && addr != cfg.HTTP.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout}
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   metricsSrv,
		Publisher:       publisher,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}
	closers = append(closers, func() {
		if err := publisher.Close(); err != nil {
			logg.Warnf(ctx, "order publisher close error: %v", err)
		}
	})

	return app, cleanup, nil
}

// Run — запускает HTTP-серверы; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	servers := []*http.Server{a.HTTPServer}
	if a.MetricsServer != nil {
		servers = append(servers, a.MetricsServer)
	}
	for _, srv := range servers {
		go func(srv *http.Server) {
			a.Logger.Infof(ctx, "http server starting (addr=%s)", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(srv)
	}

	// Ожидание сигнала остановки или фоновой ошибки.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		a.Logger.Errorf(ctx, "http server failed: %v", err)
		runErr = err
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-серверов.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "http server shutdown failed addr=%s: %v", srv.Addr, err)
		} else {
			a.Logger.Infof(ctx, "http server stopped gracefully addr=%s", srv.Addr)
		}
	}

	// Досылка буфера событий.
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			a.Logger.Warnf(ctx, "order publisher close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
