package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/pt_scheduler/internal/controller/state"
	"github.com/Freeeeeet/pt_scheduler/internal/model"
	"github.com/Freeeeeet/pt_scheduler/internal/service"
)

// TrainerFinder поиск тренера по Telegram ID
type TrainerFinder interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Trainer, error)
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	trainers        TrainerFinder
	ptService       *service.PTScheduleService
	sessionService  *service.SessionService
	calendarService *service.CalendarService
	stateManager    *state.Manager
	now             func() time.Time
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	trainers TrainerFinder,
	ptService *service.PTScheduleService,
	sessionService *service.SessionService,
	calendarService *service.CalendarService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		trainers:        trainers,
		ptService:       ptService,
		sessionService:  sessionService,
		calendarService: calendarService,
		stateManager:    stateManager,
		now:             time.Now,
		logger:          logger,
	}
}
