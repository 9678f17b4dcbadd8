package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	adminapp "github.com/atelier/storefront/internal/application/admin"
	cartapp "github.com/atelier/storefront/internal/application/cart"
	catalogapp "github.com/atelier/storefront/internal/application/catalog"
	contentapp "github.com/atelier/storefront/internal/application/content"
	mediaapp "github.com/atelier/storefront/internal/application/media"
	tradeapp "github.com/atelier/storefront/internal/application/trade"
	"github.com/atelier/storefront/internal/infrastructure/auth"
	"github.com/atelier/storefront/internal/infrastructure/cache"
	"github.com/atelier/storefront/internal/infrastructure/config"
	"github.com/atelier/storefront/internal/infrastructure/event"
	"github.com/atelier/storefront/internal/infrastructure/logger"
	"github.com/atelier/storefront/internal/infrastructure/mail"
	"github.com/atelier/storefront/internal/infrastructure/persistence"
	"github.com/atelier/storefront/internal/infrastructure/storage"
	"github.com/atelier/storefront/internal/infrastructure/telemetry"
	"github.com/atelier/storefront/internal/interfaces/http/handler"
	"github.com/atelier/storefront/internal/interfaces/http/middleware"
	"github.com/atelier/storefront/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/atelier/storefront/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Catalog, cart verification, checkout and back office for the atelier shop.

//	@contact.name	Atelier
//	@contact.url	https://github.com/atelier/storefront

//	@host		localhost:8080
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin bearer token. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// OTLP log bridge: rebuild the logger with the extra core
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	if logProvider.IsEnabled() {
		log, err = logger.New(logCfg, logProvider.ZapCore(logger.ParseLevel(cfg.Telemetry.LogsLevel)))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter", zap.Error(err))
	}
	meter := meterProvider.Meter(cfg.Telemetry.ServiceName)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServer,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if cfg.Telemetry.SpanProfiles && profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBName:     cfg.Database.DBName,
	}, log)
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))),
		persistence.WithPlugin(dbTracing),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	healthChecks := map[string]handler.HealthCheck{"database": db.Ping}

	// Redis backs the token blacklist and the page cache when enabled
	var (
		redisClient *redis.Client
		blacklist   auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
		pageCache   contentapp.PageCache
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		pageCache = cache.NewRedisCache[contentapp.PageContentResponse](redisClient, "page:", cfg.Cache.PageContentTTL, log)
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	} else {
		pageCache = cache.NewMemoryCache[contentapp.PageContentResponse](cfg.Cache.PageContentTTL)
	}

	// Media storage
	var (
		mediaStore  mediaapp.Store
		memoryStore *storage.MemoryMediaStore
	)
	if cfg.Storage.IsConfigured() {
		s3Store, err := storage.NewS3MediaStore(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize media storage", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Fatal("Media bucket is not reachable", zap.Error(err), zap.String("bucket", s3Store.Bucket()))
		}
		mediaStore = s3Store
	} else {
		baseURL := cfg.Storage.PublicBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:" + cfg.App.Port + "/media"
		}
		memoryStore = storage.NewMemoryMediaStore(baseURL)
		mediaStore = memoryStore
		log.Warn("No media bucket configured, uploads are kept in memory", zap.String("base_url", baseURL))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	pageRepo := persistence.NewGormPageContentRepository(db.DB)
	portfolioRepo := persistence.NewGormPortfolioRepository(db.DB)

	// Application services
	mediaService := mediaapp.NewService(mediaStore, mediaapp.Config{
		MaxFileSize:       cfg.Upload.MaxFileSize,
		MaxFiles:          cfg.Upload.MaxFiles,
		RootFolder:        cfg.Upload.RootFolder,
		DefaultFolder:     cfg.Upload.DefaultFolder,
		AllowedExtensions: cfg.Upload.AllowedExtensions,
	}, log)

	productService := catalogapp.NewProductService(productRepo, log)
	productService.SetImageRemover(mediaService)

	orderService := tradeapp.NewOrderService(productRepo, orderRepo, persistence.NewGormTransactionScope(db.DB), log)
	cartService := cartapp.NewService(productRepo)

	pageService := contentapp.NewPageService(pageRepo, pageCache, log)
	portfolioService := contentapp.NewPortfolioService(portfolioRepo, persistence.NewGormPortfolioTransactionScope(db.DB), log)
	portfolioService.SetImageRemover(mediaService)

	credentials, err := auth.NewAdminCredentials(cfg.Admin)
	if err != nil {
		log.Fatal("Invalid admin credentials", zap.Error(err))
	}
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := adminapp.NewAuthService(credentials, jwtService, blacklist, log)
	statsService := adminapp.NewStatsService(productRepo, orderRepo)

	// Domain events: confirmation emails and shop metrics run off the request path
	eventBus := event.NewInMemoryEventBus(log, event.WithAsyncDispatch())

	money, err := mail.NewMoneyFormatter(cfg.Mail.Locale, cfg.Mail.Currency)
	if err != nil {
		log.Fatal("Invalid mail settings", zap.Error(err))
	}
	orderMailer, err := mail.NewOrderMailer(mail.NewSender(cfg.Mail, log), money, log)
	if err != nil {
		log.Fatal("Failed to load mail templates", zap.Error(err))
	}
	eventBus.Subscribe(tradeapp.NewOrderPlacedHandler(orderMailer, log))

	storeMetrics, err := telemetry.NewStoreMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create store metrics", zap.Error(err))
	}
	eventBus.Subscribe(storeMetrics)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	orderService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.IsProduction()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(httpMetrics)
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:          profiler.IsEnabled(),
		SkipPaths:        []string{"/health"},
		SkipPathPrefixes: []string{"/swagger", "/media"},
	}))
	engine.Use(middleware.SecureWithConfig(security))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Timeout(cfg.HTTP.WriteTimeout))

	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(ctx, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", handler.NewHealthHandler(healthChecks).Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)
	if memoryStore != nil {
		engine.GET("/media/*key", serveMemoryMedia(memoryStore))
	}

	guards := router.Guards{
		Admin: []gin.HandlerFunc{
			middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
				JWTService:     jwtService,
				TokenBlacklist: blacklist,
				Logger:         log,
			}),
			middleware.RequireAdmin(),
		},
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		loginLimiter := middleware.NewRateLimiter(ctx, cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		guards.Login = append(guards.Login, middleware.AuthRateLimit(loginLimiter))
	}

	r := router.NewRouter(engine)
	for _, group := range router.StorefrontGroups(router.Handlers{
		Product:     handler.NewProductHandler(productService),
		Cart:        handler.NewCartHandler(cartService),
		Order:       handler.NewOrderHandler(orderService),
		PageContent: handler.NewPageContentHandler(pageService),
		Portfolio:   handler.NewPortfolioHandler(portfolioService),
		Admin:       handler.NewAdminHandler(authService, statsService),
		Upload:      handler.NewUploadHandler(mediaService),
	}, guards) {
		r.Register(group)
		log.Debug("Routes registered", zap.String("group", group.Name()), zap.Strings("routes", group.Routes()))
	}
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Event bus did not drain", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Failed to stop profiler", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tracerProvider.Shutdown,
		"meter":  meterProvider.Shutdown,
		"logs":   logProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}

// serveMemoryMedia serves images held by the in-memory store during development
func serveMemoryMedia(store *storage.MemoryMediaStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj, ok := store.Get(strings.TrimPrefix(c.Param("key"), "/"))
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, obj.ContentType, obj.Data)
	}
}
