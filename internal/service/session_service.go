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

var ErrBookingNotFound = errors.New("booking not found")

// View где показывается статус: в списках IN_PROGRESS сворачивается в RESERVED
type View int

const (
	ListView View = iota
	DetailView
)

// SessionView занятие с вычисленным статусом посещения
type SessionView struct {
	Booking     *model.Booking   `json:"booking"`
	State       scheduling.State `json:"state"`
	RecordCount int              `json:"record_count"`
	CanEdit     bool             `json:"can_edit"`
}

type SessionService struct {
	bookings BookingStore
	records  WorkoutRecordStore
	resolver *scheduling.Resolver
	logger   *zap.Logger
}

func NewSessionService(bookings BookingStore, records WorkoutRecordStore, resolver *scheduling.Resolver, logger *zap.Logger) *SessionService {
	return &SessionService{
		bookings: bookings,
		records:  records,
		resolver: resolver,
		logger:   logger,
	}
}

// ListTrainerSessions занятия тренера за период со статусами на момент now
func (s *SessionService) ListTrainerSessions(ctx context.Context, trainerID int64, from, to civil.Date, now time.Time, view View) ([]*SessionView, error) {
	bookings, err := s.bookings.ListByTrainer(ctx, trainerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list trainer bookings: %w", err)
	}

	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	counts, err := s.records.CountByBookings(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count workout records: %w", err)
	}

	views := make([]*SessionView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, s.resolve(b, counts[b.ID], now, view))
	}

	s.logger.Debug("Trainer sessions resolved",
		zap.Int64("trainer_id", trainerID),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.Int("count", len(views)))

	return views, nil
}

// GetSession одно занятие в детальном виде
func (s *SessionService) GetSession(ctx context.Context, bookingID int64, now time.Time) (*SessionView, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	hasRecord, err := s.records.HasAnyRecord(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("check workout record: %w", err)
	}

	count := 0
	if hasRecord {
		count = 1
	}
	return s.resolve(booking, count, now, DetailView), nil
}

func (s *SessionService) resolve(b *model.Booking, recordCount int, now time.Time, view View) *SessionView {
	window := b.Window()
	state := s.resolver.ResolveForRequest(b.RequestStatus, window, recordCount > 0, now)
	if view == ListView {
		state = state.ForList()
	}

	return &SessionView{
		Booking:     b,
		State:       state,
		RecordCount: recordCount,
		CanEdit:     b.RequestStatus != model.PTRequestStatusPending && s.resolver.CanEditRecord(window, now),
	}
}
