package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pt_scheduler/internal/app"
	"github.com/Freeeeeet/pt_scheduler/internal/config"
	"github.com/Freeeeeet/pt_scheduler/internal/controller"
	"github.com/Freeeeeet/pt_scheduler/internal/controller/handlers"
	"github.com/Freeeeeet/pt_scheduler/internal/repository"
	"github.com/Freeeeeet/pt_scheduler/internal/scheduling"
	"github.com/Freeeeeet/pt_scheduler/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(app.LoggerOptions{Environment: cfg.Environment, Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("PT scheduler stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting PT scheduler",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Timezone))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	pool, err := app.OpenPool(ctx, cfg.GetDBDSN(), logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	// Репозитории
	trainerRepo := repository.NewTrainerRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	requestRepo := repository.NewPTRequestRepository(pool)
	recordRepo := repository.NewWorkoutRecordRepository(pool)
	offRepo := repository.NewOffScheduleRepository(pool, cfg.FacilityHoursCacheTTL, logger)

	// Движок расписания
	aggregator := scheduling.NewAggregator(trainerRepo, offRepo)
	detector := scheduling.NewDetector(bookingRepo, cfg.ConflictCheckConcurrency)
	resolver := scheduling.NewResolver(loc, cfg.AttendanceGracePeriod, cfg.EditWindowGracePeriod)

	// Сервисы
	ptService := service.NewPTScheduleService(bookingRepo, requestRepo, aggregator, detector,
		service.PTScheduleOptions{
			CollisionPolicy:    scheduling.MergeUnion,
			RespectOffSchedule: cfg.RespectOffSchedule,
		}, logger)
	sessionService := service.NewSessionService(bookingRepo, recordRepo, resolver, logger)
	calendarService := service.NewCalendarService(aggregator, sessionService, loc, logger)

	limiter := handlers.NewRateLimiter(cfg.BotRateLimit, cfg.BotRateBurst, logger)
	botInstance, err := bot.New(cfg.TelegramToken, bot.WithMiddlewares(limiter.Middleware))
	if err != nil {
		return err
	}

	botController := controller.NewBotController(botInstance, trainerRepo, ptService, sessionService, calendarService, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return err
	}

	return botController.Start(ctx)
}
