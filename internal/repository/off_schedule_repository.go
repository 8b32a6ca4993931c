package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
	"github.com/Freeeeeet/pt_scheduler/internal/repository/base"
)

// OffScheduleRepository выходные тренеров и расписание работы центров.
// Часы работы центра меняются редко и кэшируются на hoursTTL.
type OffScheduleRepository struct {
	pool       *pgxpool.Pool
	hoursCache *cache.Cache
	logger     *zap.Logger
}

// NewOffScheduleRepository создаёт репозиторий. hoursTTL <= 0 отключает кэш
func NewOffScheduleRepository(pool *pgxpool.Pool, hoursTTL time.Duration, logger *zap.Logger) *OffScheduleRepository {
	repo := &OffScheduleRepository{
		pool:   pool,
		logger: logger,
	}
	if hoursTTL > 0 {
		repo.hoursCache = cache.New(hoursTTL, 2*hoursTTL)
	}
	return repo
}

// GetFacility получает центр по ID
func (r *OffScheduleRepository) GetFacility(ctx context.Context, facilityID int64) (*model.Facility, error) {
	query := `SELECT id, name, timezone FROM facilities WHERE id = $1`

	var f model.Facility
	err := r.pool.QueryRow(ctx, query, facilityID).Scan(&f.ID, &f.Name, &f.Timezone)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get facility: %w", err)
	}

	return &f, nil
}

// ListTrainerOffs получает все выходные тренера, разовые и еженедельные
func (r *OffScheduleRepository) ListTrainerOffs(ctx context.Context, trainerID int64) ([]*model.TrainerOff, error) {
	query := `
		SELECT id, trainer_id, date, week_day, start_time, end_time, COALESCE(reason, '')
		FROM trainer_offs
		WHERE trainer_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("list trainer offs: %w", err)
	}
	defer rows.Close()

	var offs []*model.TrainerOff
	for rows.Next() {
		var (
			off        model.TrainerOff
			date       *time.Time
			weekDay    *int
			start, end int
		)
		if err := rows.Scan(&off.ID, &off.TrainerID, &date, &weekDay, &start, &end, &off.Reason); err != nil {
			return nil, fmt.Errorf("scan trainer off: %w", err)
		}

		if date != nil {
			d := base.DateFromColumn(*date)
			off.Date = &d
		}
		if weekDay != nil {
			wd := time.Weekday(*weekDay)
			off.Weekday = &wd
		}
		off.StartTime = model.TimeCode(start)
		off.EndTime = model.TimeCode(end)

		offs = append(offs, &off)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trainer offs: %w", err)
	}

	return offs, nil
}

// ListFacilityWeeklyHours получает часы работы центра по дням недели
func (r *OffScheduleRepository) ListFacilityWeeklyHours(ctx context.Context, facilityID int64) ([]*model.FacilityHours, error) {
	key := strconv.FormatInt(facilityID, 10)
	if r.hoursCache != nil {
		if cached, ok := r.hoursCache.Get(key); ok {
			return cached.([]*model.FacilityHours), nil
		}
	}

	query := `
		SELECT facility_id, weekday, open_time, close_time, is_closed
		FROM facility_hours
		WHERE facility_id = $1
		ORDER BY weekday
	`

	rows, err := r.pool.Query(ctx, query, facilityID)
	if err != nil {
		return nil, fmt.Errorf("list facility hours: %w", err)
	}
	defer rows.Close()

	var hours []*model.FacilityHours
	for rows.Next() {
		var (
			h                 model.FacilityHours
			weekday           int
			openTime, closeAt int
		)
		if err := rows.Scan(&h.FacilityID, &weekday, &openTime, &closeAt, &h.IsClosed); err != nil {
			return nil, fmt.Errorf("scan facility hours: %w", err)
		}
		h.Weekday = time.Weekday(weekday)
		h.OpenTime = model.TimeCode(openTime)
		h.CloseTime = model.TimeCode(closeAt)
		hours = append(hours, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facility hours: %w", err)
	}

	if r.hoursCache != nil {
		r.hoursCache.SetDefault(key, hours)
		r.logger.Debug("Facility hours cached",
			zap.Int64("facility_id", facilityID),
			zap.Int("days", len(hours)))
	}

	return hours, nil
}

// ListFacilitySpecialOffs разовые закрытия центра в диапазоне дат включительно
func (r *OffScheduleRepository) ListFacilitySpecialOffs(ctx context.Context, facilityID int64, from, to civil.Date) ([]*model.FacilitySpecialOff, error) {
	query := `
		SELECT id, facility_id, date, COALESCE(reason, '')
		FROM facility_special_offs
		WHERE facility_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := r.pool.Query(ctx, query, facilityID, base.DateParam(from), base.DateParam(to))
	if err != nil {
		return nil, fmt.Errorf("list facility special offs: %w", err)
	}
	defer rows.Close()

	var offs []*model.FacilitySpecialOff
	for rows.Next() {
		var (
			off  model.FacilitySpecialOff
			date time.Time
		)
		if err := rows.Scan(&off.ID, &off.FacilityID, &date, &off.Reason); err != nil {
			return nil, fmt.Errorf("scan facility special off: %w", err)
		}
		off.Date = base.DateFromColumn(date)
		offs = append(offs, &off)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facility special offs: %w", err)
	}

	return offs, nil
}
