package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auracare/config"
	"auracare/cron"
	"auracare/database"
	"auracare/database/repository"
	"auracare/database/repository/memory"
	"auracare/handlers"
	"auracare/routes"
	"auracare/services/forecast"
	"auracare/services/notification"
	"auracare/services/tasks"
	"auracare/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// memoryDatabaseURL selects the in-process repositories instead of MongoDB.
const memoryDatabaseURL = "memory"

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories.
	var (
		repos       *repository.Set
		mongoClient *mongo.Client
	)
	if cfg.DatabaseURL == memoryDatabaseURL {
		logger.Warn("using in-memory repositories; data is lost on restart")
		repos = memory.NewSet()
	} else {
		db, err := database.InitDB(ctx, cfg.DatabaseURL, cfg.DatabaseName, logger)
		if err != nil {
			logger.Fatal("main: database connection failed", zap.Error(err))
		}
		mongoClient = database.MongoClient
		repos = repository.NewMongoSet(db)
		if err := repos.EnsureIndexes(ctx, logger); err != nil {
			logger.Warn("main: some indexes could not be created", zap.Error(err))
		}
	}

	// Redis: one db for caches and revocations, one for the task queue.
	cacheRedis, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
	if err != nil {
		logger.Fatal("main: redis connection failed", zap.Error(err))
	}
	queueOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB}
	queue := asynq.NewClient(queueOpt)

	// Push notifications fall back to logging when Firebase is not configured.
	var notifier notification.Notifier = notification.LogNotifier{}
	if cfg.FirebaseCredentials != "" {
		fcm, err := utils.NewFCMClient(ctx, cfg.FirebaseCredentials)
		if err != nil {
			logger.Fatal("main: firebase initialization failed", zap.Error(err))
		}
		if notifier, err = notification.NewFCMNotifier(repos.Users, fcm); err != nil {
			logger.Fatal("main: notifier initialization failed", zap.Error(err))
		}
	}

	health := utils.NewHealthMonitor(mongoClient, cacheRedis)
	health.Start(ctx, 30*time.Second)

	jwtManager := utils.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	revoker := utils.NewTokenRevoker(cacheRedis)
	hb := handlers.NewHandlerBundle(handlers.Deps{
		Repos:           repos,
		JWT:             jwtManager,
		Revoker:         revoker,
		SalonCache:      utils.NewJSONCache(cacheRedis, utils.SalonOwnerCachePrefix, time.Duration(cfg.CacheTTLSeconds)*time.Second),
		Notifier:        notifier,
		Reminders:       tasks.NewReminderScheduler(queue, time.Duration(cfg.ReminderLeadMinutes)*time.Minute),
		Predictor:       forecast.NewClient(cfg.ForecastURL, time.Duration(cfg.ForecastTimeoutSeconds)*time.Second),
		Health:          health,
		PFRatePercent:   cfg.PFRatePercent,
		ProfessionalTax: cfg.ProfessionalTax,
	})

	// Background work.
	worker := &cron.ReminderWorker{
		Appointments: repos.Appointments,
		Customers:    repos.Customers,
		Notifier:     notifier,
	}
	workerSrv := cron.NewReminderServer(queueOpt, 10)
	cron.StartReminderWorker(workerSrv, worker.Mux())

	scheduler := cron.NewScheduler(hb.PayrollService, hb.GiftCardService)
	if err := scheduler.Register(cfg.PayrollCron, cfg.GiftCardSweepCron); err != nil {
		logger.Fatal("main: invalid job schedule", zap.Error(err))
	}
	scheduler.Start()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.RegisterRoutes(router, hb, routes.Options{
		AllowedOrigins:    cfg.AllowedOrigins(),
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
		JWT:               jwtManager,
		Revoker:           revoker,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)
	workerSrv.Shutdown()
	if err := queue.Close(); err != nil {
		logger.Warn("main: closing task queue client", zap.Error(err))
	}
	if err := cacheRedis.Close(); err != nil {
		logger.Warn("main: closing redis", zap.Error(err))
	}
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Warn("main: closing database", zap.Error(err))
	}
	logger.Info("main: server stopped gracefully")
}
