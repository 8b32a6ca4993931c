package scheduling

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
)

// CollisionPolicy что делать, если две выбранные даты попали на один день недели
type CollisionPolicy int

const (
	// MergeUnion объединяет выбранное время обеих дат
	MergeUnion CollisionPolicy = iota
	// ReplaceWithLater оставляет выбор более поздней даты
	ReplaceWithLater
)

// SlotSelection выбранные получасовые слоты по датам
type SlotSelection map[civil.Date][]model.TimeCode

// Validate проверяет что выбран хотя бы один слот и у каждой даты есть время
func (s SlotSelection) Validate() error {
	if len(s) == 0 {
		return ErrNoScheduleChosen
	}
	for _, times := range s {
		if len(times) == 0 {
			return ErrNoScheduleChosen
		}
	}
	return nil
}

// BuildWeekPattern превращает выбранные слоты в недельный шаблон:
// одно правило на день недели, start = min, end = max + 30 минут.
// Правила отсортированы по дню недели.
func BuildWeekPattern(chosen SlotSelection, policy CollisionPolicy) ([]model.WeeklyRule, error) {
	if err := chosen.Validate(); err != nil {
		return nil, err
	}

	// Даты обходим по порядку, иначе ReplaceWithLater зависел бы от порядка map
	dates := make([]civil.Date, 0, len(chosen))
	for d := range chosen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	type bounds struct {
		min, max model.TimeCode
	}
	byWeekday := make(map[time.Weekday]bounds, 7)

	for _, d := range dates {
		times := chosen[d]
		lo, hi := times[0], times[0]
		for _, t := range times[1:] {
			if t < lo {
				lo = t
			}
			if t > hi {
				hi = t
			}
		}

		wd := model.Weekday(d)
		if prev, ok := byWeekday[wd]; ok && policy == MergeUnion {
			if prev.min < lo {
				lo = prev.min
			}
			if prev.max > hi {
				hi = prev.max
			}
		}
		byWeekday[wd] = bounds{min: lo, max: hi}
	}

	rules := make([]model.WeeklyRule, 0, len(byWeekday))
	for wd, b := range byWeekday {
		rules = append(rules, model.WeeklyRule{
			Weekday:   wd,
			StartTime: b.min,
			EndTime:   slotEnd(b.max),
		})
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Weekday < rules[j].Weekday })

	return rules, nil
}

// slotEnd конец последнего выбранного получаса. Слот 23:30 заканчивается в 24:00,
// а не в 0:00, иначе окно стало бы пустым.
func slotEnd(last model.TimeCode) model.TimeCode {
	end := last.AddHalfHour()
	if end == 0 {
		return model.MidnightEnd
	}
	return end
}
