package scheduling

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"golang.org/x/sync/errgroup"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
)

// BookingFinder ищет существующее бронирование тренера, пересекающееся с окном
type BookingFinder interface {
	FindOverlapping(ctx context.Context, trainerID int64, date civil.Date, start, end model.TimeCode) (*model.Booking, error)
}

// Partition результат проверки: что можно бронировать, а что конфликтует
type Partition struct {
	Success []model.Occurrence `json:"success"`
	Fail    []model.Occurrence `json:"fail"`
}

// Total общее число проверенных занятий
func (p Partition) Total() int {
	return len(p.Success) + len(p.Fail)
}

// Detector проверяет занятия-кандидаты на пересечение с бронированиями тренера
type Detector struct {
	finder      BookingFinder
	concurrency int
}

// NewDetector создаёт детектор. concurrency ограничивает число параллельных запросов
func NewDetector(finder BookingFinder, concurrency int) *Detector {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Detector{finder: finder, concurrency: concurrency}
}

// Partition проверяет каждое занятие независимо и делит их на success и fail.
// Порядок входа сохраняется в обоих списках.
func (d *Detector) Partition(ctx context.Context, trainerID int64, occs []model.Occurrence) (Partition, error) {
	conflicts := make([]bool, len(occs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for i, occ := range occs {
		g.Go(func() error {
			existing, err := d.finder.FindOverlapping(gctx, trainerID, occ.Date, occ.StartTime, occ.EndTime)
			if err != nil {
				return fmt.Errorf("find overlapping booking on %s: %w", occ.Date, err)
			}
			conflicts[i] = existing != nil
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Partition{}, err
	}

	result := Partition{
		Success: make([]model.Occurrence, 0, len(occs)),
		Fail:    make([]model.Occurrence, 0),
	}
	for i, occ := range occs {
		if conflicts[i] {
			result.Fail = append(result.Fail, occ)
		} else {
			result.Success = append(result.Success, occ)
		}
	}

	return result, nil
}

// ApplyOffOverlay переносит в Fail успешные занятия, попавшие на выходной тренера или центра
func ApplyOffOverlay(p Partition, offs []model.OffInterval) Partition {
	if len(offs) == 0 {
		return p
	}

	byDate := make(map[civil.Date][]model.OffInterval)
	for _, off := range offs {
		byDate[off.Date] = append(byDate[off.Date], off)
	}

	out := Partition{
		Success: make([]model.Occurrence, 0, len(p.Success)),
		Fail:    append(make([]model.Occurrence, 0, len(p.Fail)), p.Fail...),
	}
	for _, occ := range p.Success {
		if blockedBy(occ, byDate[occ.Date]) {
			out.Fail = append(out.Fail, occ)
			continue
		}
		out.Success = append(out.Success, occ)
	}
	return out
}

func blockedBy(occ model.Occurrence, offs []model.OffInterval) bool {
	for _, off := range offs {
		if off.IsFullDay {
			return true
		}
		if Overlaps(occ.StartTime, occ.EndTime, off.StartTime, off.EndTime) {
			return true
		}
	}
	return false
}
