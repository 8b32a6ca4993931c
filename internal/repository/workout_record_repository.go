package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkoutRecordRepository записи тренировок. Движку важно только их наличие
type WorkoutRecordRepository struct {
	pool *pgxpool.Pool
}

func NewWorkoutRecordRepository(pool *pgxpool.Pool) *WorkoutRecordRepository {
	return &WorkoutRecordRepository{pool: pool}
}

// HasAnyRecord есть ли хотя бы одна запись тренировки по занятию
func (r *WorkoutRecordRepository) HasAnyRecord(ctx context.Context, bookingID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM workout_records WHERE pt_schedule_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, bookingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check workout record exists: %w", err)
	}
	return exists, nil
}

// CountByBookings число записей по каждому занятию одним запросом; занятий без записей в карте нет
func (r *WorkoutRecordRepository) CountByBookings(ctx context.Context, bookingIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT pt_schedule_id, COUNT(*)
		FROM workout_records
		WHERE pt_schedule_id = ANY($1)
		GROUP BY pt_schedule_id
	`

	rows, err := r.pool.Query(ctx, query, bookingIDs)
	if err != nil {
		return nil, fmt.Errorf("count workout records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int64
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("scan workout record count: %w", err)
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout record counts: %w", err)
	}

	return counts, nil
}
