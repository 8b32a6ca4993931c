package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
	"github.com/Freeeeeet/pt_scheduler/internal/repository/base"
	"github.com/Freeeeeet/pt_scheduler/internal/scheduling"
)

const bookingColumns = `
	ps.id, s.id, r.id, r.trainer_id, r.member_id, s.date, s.start_time, s.end_time, r.status, ps.created_at,
	EXISTS (
		SELECT 1 FROM schedule_change_requests c
		WHERE c.pt_schedule_id = ps.id AND c.status = 'pending'
	)
`

const bookingFrom = `
	FROM pt_schedules ps
	JOIN schedules s ON s.id = ps.schedule_id
	JOIN pt_requests r ON r.id = ps.pt_request_id
`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// FindOverlapping ищет бронирование тренера, пересекающееся с [start, end) в ту же дату.
// Отклонённые заявки слоты не занимают.
func (r *BookingRepository) FindOverlapping(ctx context.Context, trainerID int64, date civil.Date, start, end model.TimeCode) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom + `
		WHERE r.trainer_id = $1
		  AND r.status <> 'rejected'
		  AND s.date = $2
		  AND s.start_time < $4
		  AND s.end_time > $3
		ORDER BY s.start_time
		LIMIT 1
	`

	booking, err := scanBooking(r.Pool().QueryRow(ctx, query, trainerID, base.DateParam(date), int(start), int(end)))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find overlapping booking: %w", err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom + ` WHERE ps.id = $1`

	booking, err := scanBooking(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// ListByTrainer получает бронирования тренера за диапазон дат включительно
func (r *BookingRepository) ListByTrainer(ctx context.Context, trainerID int64, from, to civil.Date) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom + `
		WHERE r.trainer_id = $1
		  AND r.status <> 'rejected'
		  AND s.date BETWEEN $2 AND $3
		ORDER BY s.date, s.start_time
	`

	rows, err := r.Pool().Query(ctx, query, trainerID, base.DateParam(from), base.DateParam(to))
	if err != nil {
		return nil, fmt.Errorf("list bookings by trainer: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

// CreateRequestWithSchedules в одной транзакции создает заявку, делает upsert временных блоков
// и привязывает их к заявке. Если не создано ни одной связи, транзакция откатывается
// и заявка не остаётся в базе.
func (r *BookingRepository) CreateRequestWithSchedules(ctx context.Context, req *model.PTRequest, occs []model.Occurrence) (int, int, error) {
	var scheduleCount, linkCount int
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := insertPTRequest(ctx, tx, req); err != nil {
			return err
		}

		var err error
		scheduleCount, linkCount, err = createSchedulesTx(ctx, tx, req.ID, occs)
		if err != nil {
			return err
		}
		if linkCount == 0 {
			return scheduling.ErrScheduleCreationFailedAll
		}
		return nil
	})
	if err != nil {
		// присвоенный внутри транзакции ID после отката недействителен
		req.ID = 0
		return 0, 0, fmt.Errorf("create pt request with schedules: %w", err)
	}

	return scheduleCount, linkCount, nil
}

// CreateForRequest в одной транзакции делает upsert временных блоков по (date, start_time, end_time)
// и привязывает их к существующей заявке. Возвращает число блоков и число созданных связей.
func (r *BookingRepository) CreateForRequest(ctx context.Context, requestID int64, occs []model.Occurrence) (int, int, error) {
	var scheduleCount, linkCount int
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		scheduleCount, linkCount, err = createSchedulesTx(ctx, tx, requestID, occs)
		return err
	})
	if err != nil {
		return 0, 0, fmt.Errorf("create schedules for request: %w", err)
	}

	return scheduleCount, linkCount, nil
}

func createSchedulesTx(ctx context.Context, tx pgx.Tx, requestID int64, occs []model.Occurrence) (int, int, error) {
	upsert := `
		INSERT INTO schedules (date, start_time, end_time)
		VALUES ($1, $2, $3)
		ON CONFLICT (date, start_time, end_time) DO UPDATE SET updated_at = now()
		RETURNING id
	`

	scheduleIDs := make([]int64, 0, len(occs))
	for _, occ := range occs {
		var id int64
		err := tx.QueryRow(ctx, upsert, base.DateParam(occ.Date), int(occ.StartTime), int(occ.EndTime)).Scan(&id)
		if err != nil {
			return 0, 0, fmt.Errorf("upsert schedule %s %s: %w", occ.Date, occ.StartTime, err)
		}
		scheduleIDs = append(scheduleIDs, id)
	}

	// связи ссылаются на id блоков, поэтому создаются только после upsert
	n, err := bulkLinkToRequest(ctx, tx, scheduleIDs, requestID)
	if err != nil {
		return 0, 0, err
	}
	return len(scheduleIDs), int(n), nil
}

func bulkLinkToRequest(ctx context.Context, tx pgx.Tx, scheduleIDs []int64, requestID int64) (int64, error) {
	rows := make([][]any, 0, len(scheduleIDs))
	for _, id := range scheduleIDs {
		rows = append(rows, []any{requestID, id})
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"pt_schedules"},
		[]string{"pt_request_id", "schedule_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("bulk link pt schedules: %w", err)
	}
	return n, nil
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var (
		b          model.Booking
		date       time.Time
		start, end int
	)
	err := row.Scan(
		&b.ID,
		&b.ScheduleID,
		&b.RequestID,
		&b.TrainerID,
		&b.MemberID,
		&date,
		&start,
		&end,
		&b.RequestStatus,
		&b.CreatedAt,
		&b.HasPendingChange,
	)
	if err != nil {
		return nil, err
	}

	b.Date = base.DateFromColumn(date)
	b.StartTime = model.TimeCode(start)
	b.EndTime = model.TimeCode(end)
	return &b, nil
}
