package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pt_scheduler/internal/controller/formatting"
	"github.com/Freeeeeet/pt_scheduler/internal/model"
	"github.com/Freeeeeet/pt_scheduler/internal/scheduling"
	"github.com/Freeeeeet/pt_scheduler/internal/service"
)

const helpText = "📚 Справка по командам:\n\n" +
	"/week [ГГГГ-ММ-ДД] - Календарь недели\n" +
	"/next, /prev - Следующая и предыдущая неделя\n" +
	"/sessions - Занятия на ближайшие 7 дней\n" +
	"/session ID - Подробно о занятии\n" +
	"/check ГГГГ-ММ-ДД ЧЧ:ММ ЧЧ:ММ N - Проверить еженедельный слот на N занятий\n" +
	"/approve ID, /reject ID - Подтвердить или отклонить заявку\n" +
	"/help - Показать эту справку"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	trainer, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}
	// /start открывает календарь заново с текущей недели
	h.stateManager.ClearState(update.Message.From.ID)

	h.sendHTML(ctx, b, update.Message.Chat.ID, fmt.Sprintf("👋 Привет, %s!\n\n%s", trainer.Name, helpText))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendHTML(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleWeek показывает календарь недели: выходные и занятия со статусами
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	trainer, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}

	week := h.calendarService.Today(h.now())
	if args := commandArgs(update.Message.Text); len(args) > 0 {
		d, err := civil.ParseDate(args[0])
		if err != nil {
			h.sendError(ctx, b, update.Message.Chat.ID, "❌ Дата в формате ГГГГ-ММ-ДД, например /week 2024-01-08")
			return
		}
		week = d
	}

	h.showWeek(ctx, b, update, trainer, scheduling.WeekStart(week))
}

// HandleNextWeek листает календарь вперёд
func (h *Handlers) HandleNextWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.shiftWeek(ctx, b, update, 7)
}

// HandlePrevWeek листает календарь назад
func (h *Handlers) HandlePrevWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.shiftWeek(ctx, b, update, -7)
}

func (h *Handlers) shiftWeek(ctx context.Context, b *bot.Bot, update *models.Update, days int) {
	trainer, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}

	week := scheduling.WeekStart(h.calendarService.Today(h.now()))
	if data, ok := h.stateManager.GetWeek(update.Message.From.ID); ok && data.TrainerID == trainer.ID {
		week = data.Week
	}

	h.showWeek(ctx, b, update, trainer, week.AddDays(days))
}

func (h *Handlers) showWeek(ctx context.Context, b *bot.Bot, update *models.Update, trainer *model.Trainer, week civil.Date) {
	chatID := update.Message.Chat.ID

	view, err := h.calendarService.TrainerWeek(ctx, trainer.ID, week, h.now())
	if err != nil {
		if errors.Is(err, service.ErrOutOfCalendarRange) {
			h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Календарь доступен на %d недель вперёд и %d месяца назад.",
				scheduling.MaxWeeksForward, scheduling.MaxMonthsBack))
			return
		}
		h.logger.Error("Failed to build trainer week",
			zap.Int64("trainer_id", trainer.ID),
			zap.String("week", week.String()),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить календарь.")
		return
	}

	h.stateManager.SetWeek(update.Message.From.ID, trainer.ID, week)
	h.sendHTML(ctx, b, chatID, formatting.FormatWeek(view))
}

// HandleSessions занятия тренера на ближайшую неделю
func (h *Handlers) HandleSessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	trainer, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	now := h.now()
	from := h.calendarService.Today(now)
	to := from.AddDays(6)

	sessions, err := h.sessionService.ListTrainerSessions(ctx, trainer.ID, from, to, now, service.ListView)
	if err != nil {
		h.logger.Error("Failed to list sessions", zap.Int64("trainer_id", trainer.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить занятия.")
		return
	}

	if len(sessions) == 0 {
		h.sendHTML(ctx, b, chatID, "📭 На ближайшую неделю занятий нет.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 <b>Занятия на неделю</b>\n")
	var current civil.Date
	for _, s := range sessions {
		if s.Booking.Date != current {
			current = s.Booking.Date
			sb.WriteString("\n<b>" + formatting.FormatDate(current) + "</b>\n")
		}
		sb.WriteString(formatting.FormatSessionLine(s) + "\n")
	}

	h.sendHTML(ctx, b, chatID, sb.String())
}

// HandleSession подробная карточка занятия
func (h *Handlers) HandleSession(ctx context.Context, b *bot.Bot, update *models.Update) {
	trainer, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	id, err := parseID(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Укажите номер занятия, например /session 12")
		return
	}

	view, err := h.sessionService.GetSession(ctx, id, h.now())
	if errors.Is(err, service.ErrBookingNotFound) || (err == nil && view.Booking.TrainerID != trainer.ID) {
		h.sendError(ctx, b, chatID, "❌ Занятие не найдено.")
		return
	}
	if err != nil {
		h.logger.Error("Failed to get session", zap.Int64("booking_id", id), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить занятие.")
		return
	}

	h.sendHTML(ctx, b, chatID, formatting.FormatSession(view))
}

// HandleCheck проверяет, какие даты еженедельного слота свободны
func (h *Handlers) HandleCheck(ctx context.Context, b *bot.Bot, update *models.Update) {
	trainer, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	req, err := parseCheckArgs(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Формат: /check 2024-01-08 9:00 10:00 6")
		return
	}

	proposal, err := h.ptService.Propose(ctx, trainer.ID, req.Selection, req.TotalCount, req.FirstDate)
	if err != nil {
		h.logger.Error("Failed to propose schedule", zap.Int64("trainer_id", trainer.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось проверить расписание.")
		return
	}

	h.sendHTML(ctx, b, chatID, formatting.FormatProposal(proposal))
}

// HandleApprove подтверждение заявки тренером
func (h *Handlers) HandleApprove(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.decideRequest(ctx, b, update, true)
}

// HandleReject отклонение заявки тренером
func (h *Handlers) HandleReject(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.decideRequest(ctx, b, update, false)
}

func (h *Handlers) decideRequest(ctx context.Context, b *bot.Bot, update *models.Update, approve bool) {
	trainer, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	requestID, err := parseID(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Укажите номер заявки, например /approve 5")
		return
	}

	if approve {
		err = h.ptService.ApproveRequest(ctx, requestID, trainer.ID)
	} else {
		err = h.ptService.RejectRequest(ctx, requestID, trainer.ID)
	}

	switch {
	case err == nil:
	case errors.Is(err, service.ErrRequestNotFound), errors.Is(err, service.ErrNotRequestOwner):
		h.sendError(ctx, b, chatID, "❌ Заявка не найдена.")
		return
	case errors.Is(err, service.ErrRequestNotPending):
		h.sendError(ctx, b, chatID, "❌ Заявка уже обработана.")
		return
	default:
		h.logger.Error("Failed to decide pt request",
			zap.Int64("request_id", requestID),
			zap.Bool("approve", approve),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	text := fmt.Sprintf("✅ Заявка #%d подтверждена.", requestID)
	if !approve {
		text = fmt.Sprintf("🚫 Заявка #%d отклонена.", requestID)
	}
	h.sendHTML(ctx, b, chatID, text)
}
