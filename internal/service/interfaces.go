package service

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
)

// BookingStore хранилище бронирований (реализация - repository.BookingRepository)
type BookingStore interface {
	FindOverlapping(ctx context.Context, trainerID int64, date civil.Date, start, end model.TimeCode) (*model.Booking, error)
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	ListByTrainer(ctx context.Context, trainerID int64, from, to civil.Date) ([]*model.Booking, error)
	CreateForRequest(ctx context.Context, requestID int64, occs []model.Occurrence) (int, int, error)
	// CreateRequestWithSchedules атомарно: заявка, блоки и связи сохраняются вместе или не сохраняются вовсе
	CreateRequestWithSchedules(ctx context.Context, req *model.PTRequest, occs []model.Occurrence) (int, int, error)
}

// PTRequestStore хранилище заявок на PT
type PTRequestStore interface {
	GetByID(ctx context.Context, id int64) (*model.PTRequest, error)
	UpdateStatus(ctx context.Context, id int64, status model.PTRequestStatus) error
}

// WorkoutRecordStore наличие записей тренировок
type WorkoutRecordStore interface {
	HasAnyRecord(ctx context.Context, bookingID int64) (bool, error)
	CountByBookings(ctx context.Context, bookingIDs []int64) (map[int64]int, error)
}

// OffOverlayBuilder строит выходные за диапазон (реализация - scheduling.Aggregator)
type OffOverlayBuilder interface {
	BuildOffOverlay(ctx context.Context, trainerID int64, rangeStart, rangeEnd civil.Date) ([]model.OffInterval, error)
}
