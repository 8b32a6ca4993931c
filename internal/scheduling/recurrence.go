package scheduling

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
)

// Generate разворачивает недельный шаблон в последовательность занятий начиная с firstDate.
//
// Порядок правил во входе не важен: обход идёт по дням недели. Если на текущий день недели
// правила нет, генерация останавливается и возвращается то, что уже набрано:
// вызывающий код сравнивает длину результата с totalCount.
func Generate(rules []model.WeeklyRule, totalCount int, firstDate civil.Date) []model.Occurrence {
	if len(rules) == 0 || totalCount <= 0 {
		return []model.Occurrence{}
	}

	order := make([]time.Weekday, 0, len(rules))
	byWeekday := make(map[time.Weekday]model.WeeklyRule, len(rules))
	for _, r := range rules {
		if _, dup := byWeekday[r.Weekday]; dup {
			continue
		}
		byWeekday[r.Weekday] = r
		order = append(order, r.Weekday)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	position := make(map[time.Weekday]int, len(order))
	for i, wd := range order {
		position[wd] = i
	}

	result := make([]model.Occurrence, 0, totalCount)
	cursor := firstDate

	for len(result) < totalCount {
		wd := model.Weekday(cursor)
		rule, ok := byWeekday[wd]
		if !ok {
			break
		}

		result = append(result, model.Occurrence{
			Date:      cursor,
			StartTime: rule.StartTime,
			EndTime:   rule.EndTime,
		})

		next := (position[wd] + 1) % len(order)
		var days int
		if next == 0 {
			// переход на первую тренировку следующей недели
			days = 7 - int(wd) + int(order[0])
		} else {
			days = int(order[next]) - int(wd)
		}
		cursor = cursor.AddDays(days)
	}

	return result
}
