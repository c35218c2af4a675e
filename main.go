package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dev-Muhammad-Junaid/links-maker/access"
	"github.com/Dev-Muhammad-Junaid/links-maker/audit"
	"github.com/Dev-Muhammad-Junaid/links-maker/config"
	"github.com/Dev-Muhammad-Junaid/links-maker/controller"
	"github.com/Dev-Muhammad-Junaid/links-maker/dao"
	"github.com/Dev-Muhammad-Junaid/links-maker/db"
	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
	"github.com/Dev-Muhammad-Junaid/links-maker/router"
	"github.com/Dev-Muhammad-Junaid/links-maker/service"
	"github.com/Dev-Muhammad-Junaid/links-maker/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Neo4j
	if err := db.InitNeo4j(); err != nil {
		logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
	}
	defer db.CloseNeo4j()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize services and utilities
	validationUtil := util.NewValidationUtil()
	cacheService := util.NewCacheService()
	notificationService := util.NewNotificationService()
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize Elasticsearch", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	// Initialize DAOs
	accountDAO := dao.NewAccountDAO(db.Neo4jDriver)

	// Verdict cache, restored from the Redis snapshot
	verdictCache := access.NewCache(
		access.NewRedisStore(),
		config.GetDuration("access.cacheTTL"),
		config.GetInt("access.cacheCapacity"),
		config.GetDuration("access.flushDebounce"),
	)
	verdictCache.Load(ctx)

	// Probe pipeline
	fetcher := access.NewHTTPFetcher(
		config.GetDuration("access.probeTimeout"),
		config.GetInt("access.snippetLimit"),
	)
	classifier := access.NewClassifier()
	prober := access.NewProber(verdictCache, fetcher, classifier, auditService)
	dedup := access.NewDeduplicator(prober, config.GetDuration("access.dedupLinger"))

	// Initialize services
	accountService := service.NewAccountService(
		accountDAO,
		validationUtil,
		cacheService,
		notificationService,
		eventBus,
	)
	accessService := service.NewAccessService(
		dedup,
		verdictCache,
		accountService,
		validationUtil,
		notificationService,
		auditService,
		eventBus,
	)

	if err := accountService.EnsureDefaultAccounts(ctx); err != nil {
		logger.Warn("Failed to seed default accounts", zap.Error(err))
	}

	services := &service.Services{
		Account: accountService,
		Access:  accessService,
	}

	// Initialize controllers and routes
	controllers := controller.InitializeControllers(services)

	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(controllers, 100, time.Minute)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Persist any pending verdicts before exit
	verdictCache.FlushNow(shutdownCtx)

	logger.Info("Server exiting")
}
