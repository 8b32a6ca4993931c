package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pt_scheduler/internal/controller/handlers"
	"github.com/Freeeeeet/pt_scheduler/internal/controller/state"
	"github.com/Freeeeeet/pt_scheduler/internal/service"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	trainers handlers.TrainerFinder,
	ptService *service.PTScheduleService,
	sessionService *service.SessionService,
	calendarService *service.CalendarService,
	logger *zap.Logger,
) *BotController {
	cmdHandlers := handlers.NewHandlers(
		trainers,
		ptService,
		sessionService,
		calendarService,
		state.NewManager(),
		logger,
	)

	return &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)

	// Календарь
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypePrefix, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/next", bot.MatchTypeExact, c.handlers.HandleNextWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/prev", bot.MatchTypeExact, c.handlers.HandlePrevWeek)

	// Занятия. Префикс "/session " с пробелом, чтобы не пересекаться с "/sessions"
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/sessions", bot.MatchTypeExact, c.handlers.HandleSessions)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/session ", bot.MatchTypePrefix, c.handlers.HandleSession)

	// Заявки
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/check", bot.MatchTypePrefix, c.handlers.HandleCheck)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/approve", bot.MatchTypePrefix, c.handlers.HandleApprove)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reject", bot.MatchTypePrefix, c.handlers.HandleReject)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "week", Description: "🗓 Календарь недели"},
		{Command: "next", Description: "➡️ Следующая неделя"},
		{Command: "prev", Description: "⬅️ Предыдущая неделя"},
		{Command: "sessions", Description: "📋 Занятия на 7 дней"},
		{Command: "session", Description: "🔎 Занятие по номеру"},
		{Command: "check", Description: "🧮 Проверить еженедельный слот"},
		{Command: "approve", Description: "✅ Подтвердить заявку"},
		{Command: "reject", Description: "🚫 Отклонить заявку"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота, блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
