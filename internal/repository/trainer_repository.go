package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
)

type TrainerRepository struct {
	pool *pgxpool.Pool
}

func NewTrainerRepository(pool *pgxpool.Pool) *TrainerRepository {
	return &TrainerRepository{pool: pool}
}

// GetByID получает тренера по ID
func (r *TrainerRepository) GetByID(ctx context.Context, id int64) (*model.Trainer, error) {
	query := `
		SELECT id, telegram_id, name, facility_id, created_at
		FROM trainers
		WHERE id = $1
	`

	trainer, err := scanTrainer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get trainer by id: %w", err)
	}

	return trainer, nil
}

// GetByTelegramID получает тренера по Telegram ID
func (r *TrainerRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Trainer, error) {
	query := `
		SELECT id, telegram_id, name, facility_id, created_at
		FROM trainers
		WHERE telegram_id = $1
	`

	trainer, err := scanTrainer(r.pool.QueryRow(ctx, query, telegramID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Тренер не найден
		}
		return nil, fmt.Errorf("get trainer by telegram id: %w", err)
	}

	return trainer, nil
}

func scanTrainer(row pgx.Row) (*model.Trainer, error) {
	var t model.Trainer
	err := row.Scan(
		&t.ID,
		&t.TelegramID,
		&t.Name,
		&t.FacilityID,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
