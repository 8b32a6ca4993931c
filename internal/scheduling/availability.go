package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
)

// TrainerLookup возвращает тренера или nil, если его нет
type TrainerLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Trainer, error)
}

// OffScheduleSource выходные тренера и закрытия центра
type OffScheduleSource interface {
	GetFacility(ctx context.Context, facilityID int64) (*model.Facility, error)
	ListTrainerOffs(ctx context.Context, trainerID int64) ([]*model.TrainerOff, error)
	ListFacilityWeeklyHours(ctx context.Context, facilityID int64) ([]*model.FacilityHours, error)
	ListFacilitySpecialOffs(ctx context.Context, facilityID int64, from, to civil.Date) ([]*model.FacilitySpecialOff, error)
}

// Aggregator собирает нерабочие интервалы тренера и центра за диапазон дат
type Aggregator struct {
	trainers TrainerLookup
	offs     OffScheduleSource
}

// NewAggregator создаёт агрегатор
func NewAggregator(trainers TrainerLookup, offs OffScheduleSource) *Aggregator {
	return &Aggregator{trainers: trainers, offs: offs}
}

// BuildOffOverlay возвращает плоский список выходных за [rangeStart, rangeEnd] включительно.
// Интервалы из разных источников не объединяются: одна дата может нести и закрытие центра,
// и выходной тренера. Результат стабильно отсортирован по дате.
func (a *Aggregator) BuildOffOverlay(ctx context.Context, trainerID int64, rangeStart, rangeEnd civil.Date) ([]model.OffInterval, error) {
	if rangeEnd.Before(rangeStart) {
		return nil, ErrInvalidRange
	}

	trainer, err := a.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get trainer: %w", err)
	}
	if trainer == nil {
		return nil, ErrTrainerNotFound
	}

	trainerOffs, err := a.offs.ListTrainerOffs(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("list trainer offs: %w", err)
	}

	var (
		weeklyHours []*model.FacilityHours
		specialOffs []*model.FacilitySpecialOff
	)
	if trainer.FacilityID != nil {
		facility, err := a.offs.GetFacility(ctx, *trainer.FacilityID)
		if err != nil {
			return nil, fmt.Errorf("get facility: %w", err)
		}
		if facility == nil {
			return nil, ErrFacilityNotFound
		}

		weeklyHours, err = a.offs.ListFacilityWeeklyHours(ctx, facility.ID)
		if err != nil {
			return nil, fmt.Errorf("list facility weekly hours: %w", err)
		}
		specialOffs, err = a.offs.ListFacilitySpecialOffs(ctx, facility.ID, rangeStart, rangeEnd)
		if err != nil {
			return nil, fmt.Errorf("list facility special offs: %w", err)
		}
	}

	closedWeekdays := make(map[time.Weekday]bool)
	for _, h := range weeklyHours {
		if h.IsClosed {
			closedWeekdays[h.Weekday] = true
		}
	}

	var recurring, oneOff []*model.TrainerOff
	for _, off := range trainerOffs {
		switch {
		case off.IsRecurring():
			recurring = append(recurring, off)
		case off.Date != nil:
			oneOff = append(oneOff, off)
		}
	}

	var result []model.OffInterval

	for d := rangeStart; !d.After(rangeEnd); d = d.AddDays(1) {
		wd := model.Weekday(d)

		if closedWeekdays[wd] {
			result = append(result, fullDay(model.OffTypeCenterRegular, d))
		}

		for _, off := range recurring {
			if *off.Weekday != wd {
				continue
			}
			result = append(result, model.OffInterval{
				Type:      model.OffTypeTrainer,
				Date:      d,
				StartTime: off.StartTime,
				EndTime:   off.EndTime,
			})
		}
	}

	for _, off := range oneOff {
		if off.Date.Before(rangeStart) || off.Date.After(rangeEnd) {
			continue
		}
		result = append(result, model.OffInterval{
			Type:      model.OffTypeTrainer,
			Date:      *off.Date,
			StartTime: off.StartTime,
			EndTime:   off.EndTime,
		})
	}

	for _, so := range specialOffs {
		if so.Date.Before(rangeStart) || so.Date.After(rangeEnd) {
			continue
		}
		result = append(result, fullDay(model.OffTypeCenterSpecial, so.Date))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result, nil
}

func fullDay(t model.OffType, d civil.Date) model.OffInterval {
	return model.OffInterval{
		Type:      t,
		Date:      d,
		StartTime: 0,
		EndTime:   model.MidnightEnd,
		IsFullDay: true,
	}
}
