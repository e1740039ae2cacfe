package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/danidevdc/calendar-citas-app/internal/config"
	"github.com/danidevdc/calendar-citas-app/internal/handler"
	authHandler "github.com/danidevdc/calendar-citas-app/internal/handler/auth"
	calendarHandler "github.com/danidevdc/calendar-citas-app/internal/handler/calendar"
	citaHandler "github.com/danidevdc/calendar-citas-app/internal/handler/cita"
	holidayHandler "github.com/danidevdc/calendar-citas-app/internal/handler/holiday"
	statsHandler "github.com/danidevdc/calendar-citas-app/internal/handler/stats"
	"github.com/danidevdc/calendar-citas-app/internal/holiday"
	"github.com/danidevdc/calendar-citas-app/internal/middleware"
	"github.com/danidevdc/calendar-citas-app/internal/notifier"
	"github.com/danidevdc/calendar-citas-app/internal/repository/postgres"
	"github.com/danidevdc/calendar-citas-app/internal/router"
	"github.com/danidevdc/calendar-citas-app/internal/scheduling"
	authService "github.com/danidevdc/calendar-citas-app/internal/service/auth"
	citaService "github.com/danidevdc/calendar-citas-app/internal/service/cita"
	holidayService "github.com/danidevdc/calendar-citas-app/internal/service/holiday"
	statsService "github.com/danidevdc/calendar-citas-app/internal/service/stats"
	"github.com/danidevdc/calendar-citas-app/internal/store"
	"github.com/danidevdc/calendar-citas-app/internal/worker"
	"github.com/danidevdc/calendar-citas-app/pkg/logger"
	"github.com/danidevdc/calendar-citas-app/pkg/messaging"
	redisBroker "github.com/danidevdc/calendar-citas-app/pkg/messaging/redis"
	"github.com/danidevdc/calendar-citas-app/pkg/metrics"
	"github.com/danidevdc/calendar-citas-app/pkg/security"
	bindingvalidator "github.com/danidevdc/calendar-citas-app/pkg/validator"
)

// statsCacheTTL keeps the dashboard snappy without recomputing on
// every request.
const statsCacheTTL = time.Minute

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:  logger.InfoLevel,
		Pretty: os.Getenv("LOG_PRETTY") == "true",
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	citaRepo := postgres.NewCitaRepository(db)
	holidayRepo := postgres.NewHolidayRepository(db)

	slots, err := scheduling.NewSlotModel(scheduling.SlotConfig{
		WorkStart: cfg.Scheduling.WorkStart,
		WorkEnd:   cfg.Scheduling.WorkEnd,
		SlotStep:  cfg.Scheduling.SlotStep,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid scheduling configuration")
	}

	oracle := holiday.NewOracle(nil)
	validator := scheduling.NewValidator(slots, oracle)
	citaStore := store.NewCitaStore()
	appMetrics := metrics.NewMetrics("citas")

	var broker messaging.Broker = messaging.NoopBroker{}
	if cfg.Redis.Enabled {
		broker, err = redisBroker.NewBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()
	}

	notif := notifier.NewNoop()
	if cfg.SMTP.Enabled {
		notif = notifier.NewEmail(cfg.SMTP)
	}

	statsSvc := statsService.NewService(citaStore, statsCacheTTL)
	citaSvc := citaService.NewService(citaRepo, citaStore, validator, slots, broker, notif, statsSvc, appMetrics)
	holidaySvc := holidayService.NewService(oracle, holidayRepo)
	authSvc := authService.NewService(cfg.Auth, security.NewBcryptHasher(0))

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := holidaySvc.Load(startCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to load holidays")
	}
	if n, err := citaSvc.Sync(startCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to load citas")
	} else {
		log.Info().Int("count", n).Msg("citas loaded")
	}
	startCancel()

	if err := bindingvalidator.RegisterBindings(); err != nil {
		log.Fatal().Err(err).Msg("failed to register request validations")
	}

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	h := handler.NewHandler(db)
	r := router.New(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		citaHandler.NewHandler(citaSvc),
		holidayHandler.NewHandler(holidaySvc),
		calendarHandler.NewHandler(citaSvc),
		statsHandler.NewHandler(statsSvc),
		h,
		router.Config{
			CORSConfig:     corsConfig(cfg),
			RateLimiter:    middleware.NewRateLimiter(cfg.RateLimit),
			RequestTimeout: 30 * time.Second,
			MetricsPrefix:  "citas_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	syncWorker := worker.NewSyncWorker(citaSvc, cfg.Scheduling.SyncInterval, appLogger)
	go syncWorker.Start(workerCtx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	workerCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	cc := middleware.DefaultCORSConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		cc.AllowOrigins = cfg.Server.AllowedOrigins
	}
	return cc
}
