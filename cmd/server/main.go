package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"medtrack/reminder-service/internal/bot"
	"medtrack/reminder-service/internal/handler"
	"medtrack/reminder-service/internal/repository"
	"medtrack/reminder-service/internal/service"
	"medtrack/reminder-service/internal/telegram"
	"medtrack/reminder-service/pkg/db"
	"medtrack/reminder-service/pkg/helpers"
	"medtrack/reminder-service/pkg/logger"
	"medtrack/reminder-service/pkg/metrics"
)

func main() {
	// Load environment variables from config.env, falling back to .env.
	// Container deployments pass everything through the environment instead.
	if err := godotenv.Load("config.env"); err != nil {
		_ = godotenv.Load()
	}

	log := logger.NewLogger("reminder-service")
	m := metrics.NewMetrics("reminder_service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	conn, err := db.NewConnection(db.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 3306),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Database: getEnv("DB_DATABASE", "medtrack"),
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer conn.Close()

	if err := conn.Migrate(ctx); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}
	log.Info("database ready")

	// Redis backs the token store
	redisOpts, err := redis.ParseURL(getEnv("REDIS_URL", "redis://localhost:6379/0"))
	if err != nil {
		log.WithError(err).Fatal("failed to parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	// Repositories
	userRepo := repository.NewUserRepository(conn.DB)
	medicationRepo := repository.NewMedicationRepository(conn.DB)
	reminderRepo := repository.NewReminderRepository(conn.DB)
	intakeRepo := repository.NewIntakeRepository(conn.DB)

	accessTTL := getEnvDuration("ACCESS_TOKEN_TTL", time.Hour)
	refreshTTL := getEnvDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour)
	tokenRepo := repository.NewTokenRepository(redisClient, accessTTL, refreshTTL)

	// Services
	authService := service.NewAuthService(userRepo, tokenRepo, accessTTL)
	medicationService := service.NewMedicationService(medicationRepo)
	reminderService := service.NewReminderService(reminderRepo, medicationRepo, userRepo)
	intakeService := service.NewIntakeService(intakeRepo, medicationRepo)

	// Chat bot and reminder delivery
	botToken := getEnv("TELEGRAM_BOT_TOKEN", "")
	if botToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}
	tgClient := telegram.NewClient(botToken)

	sessions := bot.NewSessionStore()
	pending := bot.NewPendingTracker()
	engine := bot.NewEngine(sessions, pending, tgClient, userRepo,
		authService, medicationService, reminderService, intakeService, log, m)
	scheduler := bot.NewScheduler(reminderRepo, tgClient, pending, sessions, log, m,
		bot.DefaultSchedulerConfig())
	poller := bot.NewPoller(tgClient, engine, log)

	go scheduler.Run(ctx)
	go scheduler.RunSweep(ctx)
	go poller.Run(ctx)

	// Connection pool gauges
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.CollectDBStats(conn.DB)
			}
		}
	}()

	// HTTP API
	validator := helpers.NewCustomValidator()
	router := handler.NewRouter(handler.RouterConfig{
		Auth:        handler.NewAuthHandler(authService, validator, log),
		Medications: handler.NewMedicationHandler(medicationService, validator, log),
		Reminders:   handler.NewReminderHandler(reminderService, validator, log),
		Intakes:     handler.NewIntakeHandler(intakeService, validator, log),
		AuthService: authService,
		Log:         log,
		Metrics:     m,
		Throttle:    getEnvInt("HTTP_MAX_INFLIGHT", 100),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", getEnvInt("HTTP_PORT", 8080)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP shutdown failed")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
