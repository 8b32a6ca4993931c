package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
)

type PTRequestRepository struct {
	pool *pgxpool.Pool
}

func NewPTRequestRepository(pool *pgxpool.Pool) *PTRequestRepository {
	return &PTRequestRepository{pool: pool}
}

// rowQuerier общий интерфейс пула и транзакции для запросов с одной строкой
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// insertPTRequest создает заявку; вызывается внутри транзакции вместе с занятиями
func insertPTRequest(ctx context.Context, q rowQuerier, req *model.PTRequest) error {
	query := `
		INSERT INTO pt_requests (group_id, member_id, trainer_id, total_count, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(
		ctx, query,
		req.GroupID,
		req.MemberID,
		req.TrainerID,
		req.TotalCount,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt)

	if err != nil {
		return fmt.Errorf("create pt request: %w", err)
	}

	return nil
}

// GetByID получает заявку по ID
func (r *PTRequestRepository) GetByID(ctx context.Context, id int64) (*model.PTRequest, error) {
	query := `
		SELECT id, group_id, member_id, trainer_id, total_count, status, created_at, updated_at
		FROM pt_requests
		WHERE id = $1
	`

	var req model.PTRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.GroupID,
		&req.MemberID,
		&req.TrainerID,
		&req.TotalCount,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get pt request by id: %w", err)
	}

	return &req, nil
}

// UpdateStatus меняет статус заявки, только если она ещё pending
func (r *PTRequestRepository) UpdateStatus(ctx context.Context, id int64, status model.PTRequestStatus) error {
	query := `
		UPDATE pt_requests
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = 'pending'
	`

	result, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update pt request status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pt request not found or already processed")
	}

	return nil
}
