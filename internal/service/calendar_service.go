package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
	"github.com/Freeeeeet/pt_scheduler/internal/scheduling"
)

var ErrOutOfCalendarRange = errors.New("requested week is outside the calendar range")

// DayView один день календаря тренера
type DayView struct {
	Date     civil.Date          `json:"date"`
	Offs     []model.OffInterval `json:"offs"`
	Sessions []*SessionView      `json:"sessions"`
}

// IsClosed закрыт ли центр на весь день
func (d *DayView) IsClosed() bool {
	for _, off := range d.Offs {
		if off.IsFullDay {
			return true
		}
	}
	return false
}

// WeekView неделя календаря тренера
type WeekView struct {
	From civil.Date `json:"from"`
	To   civil.Date `json:"to"`
	Days []*DayView `json:"days"`
}

type CalendarService struct {
	overlay  OffOverlayBuilder
	sessions *SessionService
	location *time.Location
	logger   *zap.Logger
}

func NewCalendarService(overlay OffOverlayBuilder, sessions *SessionService, location *time.Location, logger *zap.Logger) *CalendarService {
	return &CalendarService{
		overlay:  overlay,
		sessions: sessions,
		location: location,
		logger:   logger,
	}
}

// Today текущая дата в часовом поясе площадки
func (s *CalendarService) Today(now time.Time) civil.Date {
	return civil.DateOf(now.In(s.location))
}

// TrainerWeek неделя, начинающаяся с понедельника weekOf, с выходными и занятиями.
// Диапазон обрезается: не дальше 12 недель вперёд и 3 месяцев назад.
func (s *CalendarService) TrainerWeek(ctx context.Context, trainerID int64, weekOf civil.Date, now time.Time) (*WeekView, error) {
	start := scheduling.WeekStart(weekOf)
	from, to, ok := scheduling.ClampRange(start, start.AddDays(6), s.Today(now))
	if !ok {
		return nil, ErrOutOfCalendarRange
	}

	offs, err := s.overlay.BuildOffOverlay(ctx, trainerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("build off overlay: %w", err)
	}

	sessions, err := s.sessions.ListTrainerSessions(ctx, trainerID, from, to, now, DetailView)
	if err != nil {
		return nil, err
	}

	week := &WeekView{From: from, To: to}
	byDate := make(map[civil.Date]*DayView)
	for d := from; !d.After(to); d = d.AddDays(1) {
		day := &DayView{Date: d}
		byDate[d] = day
		week.Days = append(week.Days, day)
	}

	for _, off := range offs {
		if day, ok := byDate[off.Date]; ok {
			day.Offs = append(day.Offs, off)
		}
	}
	for _, sv := range sessions {
		if day, ok := byDate[sv.Booking.Date]; ok {
			day.Sessions = append(day.Sessions, sv)
		}
	}

	s.logger.Debug("Trainer week built",
		zap.Int64("trainer_id", trainerID),
		zap.String("from", from.String()),
		zap.Int("offs", len(offs)),
		zap.Int("sessions", len(sessions)))

	return week, nil
}
