package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/config"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/handler"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/mail"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/push"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/repository"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/scheduler"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/observability"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/observability/middleware"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}

	ctx := context.Background()

	obs, err := initObservability(ctx, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		slog.Error("failed to initialize observability", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to shutdown observability", "error", err)
		}
	}()

	db, err := initDatabase(cfg.Database)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		return 1
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get underlying sql.DB", "error", err)
		return 1
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}
	}()

	publisher, err := initPublisher(ctx, cfg)
	if err != nil {
		slog.Error("failed to create event publisher", "error", err)
		return 1
	}
	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.Warn("failed to close publisher", "error", err)
			}
		}()
	}

	senders, err := initPushSenders(ctx, cfg.Push)
	if err != nil {
		slog.Error("failed to create push senders", "error", err)
		return 1
	}

	uow := repository.NewUnitOfWork(db)

	reminderUseCase := app.NewReminderUseCase(uow, nil)
	scheduleUseCase := app.NewScheduleUseCase(uow, nil)
	preferenceUseCase := app.NewPreferenceUseCase(uow, nil)
	notificationUseCase := app.NewNotificationUseCase(uow)
	sweepUseCase := app.NewSweepUseCase(
		uow,
		nil,
		app.NewEmailDispatcher(initMailer(cfg.Mail), cfg.Mail.Workers),
		app.NewPushDispatcher(senders),
		publisher,
		app.SweepConfig{
			BatchSize:    cfg.Sweep.BatchSize,
			Lease:        cfg.Sweep.Lease,
			Concurrency:  cfg.Sweep.Concurrency,
			EmailEnabled: cfg.Sweep.EmailEnabled,
			PushEnabled:  cfg.Sweep.PushEnabled,
		},
		nil,
	)

	router := setupRouter(obs,
		handler.NewReminderHandler(reminderUseCase),
		handler.NewScheduleHandler(scheduleUseCase),
		handler.NewPreferenceHandler(preferenceUseCase),
		handler.NewNotificationHandler(notificationUseCase),
		handler.NewSweepHandler(sweepUseCase),
	)

	var sched *scheduler.Scheduler

	if cfg.Sweep.CronEnabled {
		sched, err = scheduler.New(sweepUseCase, scheduler.Config{
			Schedule: cfg.Sweep.Schedule,
			Timeout:  cfg.Sweep.Lease,
		}, obs.SweepMetrics)
		if err != nil {
			slog.Error("failed to create sweep scheduler", "error", err)
			return 1
		}

		sched.Start()
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", cfg.Server.Address(), "version", Version)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if sched != nil {
			if err := sched.Stop(shutdownCtx); err != nil {
				slog.Warn("sweep still running at shutdown", "error", err)
			}
		}

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", "error", err)
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", "error", err)
		return 1
	}
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         logging.NewGormLogger(cfg.SlowThreshold),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func initMailer(cfg config.MailConfig) mail.Mailer {
	if cfg.SendGridAPIKey == "" {
		slog.Warn("SENDGRID_API_KEY not set, emails are logged instead of sent")
		return mail.NewLogMailer()
	}

	return mail.NewSendGridMailer(mail.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
	})
}

// initPushSenders routes android tokens to FCM when a project is configured
// and everything else deliverable to Expo.
func initPushSenders(ctx context.Context, cfg config.PushConfig) (map[domain.Platform]push.Sender, error) {
	expo := push.NewExpoSender(push.ExpoConfig{AccessToken: cfg.ExpoAccessToken})

	senders := map[domain.Platform]push.Sender{
		domain.PlatformAndroid: expo,
		domain.PlatformIOS:     expo,
	}

	if cfg.FCMProjectID != "" {
		fcm, err := push.NewFCMSender(ctx, push.FCMConfig{
			ProjectID:       cfg.FCMProjectID,
			CredentialsFile: cfg.FCMCredentialsFile,
		})
		if err != nil {
			return nil, err
		}

		senders[domain.PlatformAndroid] = fcm

		slog.Info("FCM sender initialized", "project_id", cfg.FCMProjectID)
	}

	return senders, nil
}

func setupRouter(
	obs *observability.Resources,
	reminderHandler *handler.ReminderHandler,
	scheduleHandler *handler.ScheduleHandler,
	preferenceHandler *handler.PreferenceHandler,
	notificationHandler *handler.NotificationHandler,
	sweepHandler *handler.SweepHandler,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:       []string{"/ping"},
		ModuleResolver:  resolveModule,
		JobNameResolver: resolveJobName,
		TracerName:      "github.com/KasumiMercury/primind-assignment-reminder/cmd",
		HTTPMetrics:     obs.HTTPMetrics,
	}))
	router.Use(middleware.PanicRecoveryGin())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	user := router.Group("/api/v1/users/:user_id")
	reminderHandler.RegisterRoutes(user)
	scheduleHandler.RegisterRoutes(user)
	preferenceHandler.RegisterRoutes(user)
	notificationHandler.RegisterRoutes(user)

	sweepHandler.RegisterRoutes(router.Group("/internal"))

	return router
}

func resolveModule(c *gin.Context) logging.Module {
	path := c.FullPath()

	switch {
	case strings.HasPrefix(path, "/internal"):
		return logging.ModuleSweep
	case strings.Contains(path, "/schedules"):
		return logging.ModuleSchedule
	case strings.Contains(path, "/notifications"):
		return logging.ModuleNotification
	default:
		return logging.ModuleReminder
	}
}

func resolveJobName(c *gin.Context) string {
	if c.FullPath() == "/internal/sweep" {
		return "reminder.sweep"
	}

	return ""
}
