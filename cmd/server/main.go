package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/rotina-app/backend/api/handler"
	"github.com/rotina-app/backend/internal/config"
	"github.com/rotina-app/backend/internal/infrastructure/monitor"
	pgInfra "github.com/rotina-app/backend/internal/infrastructure/postgres"
	"github.com/rotina-app/backend/internal/infrastructure/push"
	redisInfra "github.com/rotina-app/backend/internal/infrastructure/redis"
	"github.com/rotina-app/backend/internal/infrastructure/reminders"
	"github.com/rotina-app/backend/internal/middleware"
	"github.com/rotina-app/backend/internal/router"
	"github.com/rotina-app/backend/internal/services"
	"github.com/rotina-app/backend/internal/services/feed"
	"github.com/rotina-app/backend/internal/services/lifecycle"
	"github.com/rotina-app/backend/pkg/httpcontext"
	"github.com/rotina-app/backend/pkg/logger"
	"github.com/rotina-app/backend/repository/postgres"
	redisRepo "github.com/rotina-app/backend/repository/redis"
	activityUC "github.com/rotina-app/backend/usecase/activity"
	authUC "github.com/rotina-app/backend/usecase/auth"
	profileUC "github.com/rotina-app/backend/usecase/profile"
	progressUC "github.com/rotina-app/backend/usecase/progress"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	reminderStore, err := reminders.Open(cfg.Reminders.Path, "reminders")
	if err != nil {
		zapLogger.Fatal("failed to open reminder store", zap.Error(err))
	}
	manager.Register("reminders", func(ctx context.Context) error {
		return reminderStore.Close()
	})

	mon := monitor.New(pool, redisClient, reminderStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.SessionTTL)

	pushClient := push.NewClient(push.Config{
		Endpoint:  cfg.Push.Endpoint,
		ServerKey: cfg.Push.ServerKey,
		Timeout:   cfg.Push.Timeout,
	}, zapLogger)

	hub := feed.NewHub(activityRepo, cfg.Context.RequestTimeout, zapLogger)
	eventPusher := services.NewEventPusher(userRepo, pushClient, cfg.Push.Timeout, zapLogger)

	reminderDispatcher := services.NewReminderDispatcher(
		reminderStore,
		userRepo,
		pushClient,
		zapLogger,
		services.DispatcherConfig{
			Interval:  cfg.Reminders.Interval,
			BatchSize: cfg.Reminders.BatchSize,
		},
	)
	reminderDispatcher.Start()
	manager.Register("reminder_dispatcher", func(ctx context.Context) error {
		reminderDispatcher.Stop(ctx)
		return nil
	})

	jobCfg := services.JobConfig{
		MotivationSpec: cfg.Jobs.MotivationSpec,
		CleanupSpec:    cfg.Jobs.CleanupSpec,
		PageSize:       cfg.Jobs.PageSize,
		Timeout:        cfg.Jobs.Timeout,
	}

	motivationJob := services.NewMotivationJob(userRepo, activityRepo, pushClient, zapLogger, jobCfg)
	motivationJob.Start()
	manager.Register("motivation_job", func(ctx context.Context) error {
		motivationJob.Stop(ctx)
		return nil
	})

	tokenJanitor := services.NewTokenJanitor(userRepo, pushClient, zapLogger, jobCfg)
	tokenJanitor.Start()
	manager.Register("token_janitor", func(ctx context.Context) error {
		tokenJanitor.Stop(ctx)
		return nil
	})

	authUseCase := authUC.New(userRepo, sessionRepo, authUC.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		SessionTTL: cfg.JWT.SessionTTL,
	}, zapLogger)
	profileUseCase := profileUC.New(userRepo, zapLogger)
	activityUseCase := activityUC.New(activityRepo, hub, eventPusher, reminderDispatcher, zapLogger)
	progressUseCase := progressUC.New(activityRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Profile:  apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Activity: apiHandler.NewActivityHandler(activityUseCase, ctxAdapter, zapLogger),
		Progress: apiHandler.NewProgressHandler(progressUseCase, ctxAdapter, zapLogger),
		Stream:   apiHandler.NewStreamHandler(hub, ctxAdapter, zapLogger),
		Reminder: apiHandler.NewReminderHandler(reminderDispatcher, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
