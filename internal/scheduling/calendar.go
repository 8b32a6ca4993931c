package scheduling

import (
	"time"

	"cloud.google.com/go/civil"
)

var utc = time.UTC

const (
	// MaxWeeksForward насколько вперёд можно листать календарь
	MaxWeeksForward = 12
	// MaxMonthsBack насколько назад можно листать календарь
	MaxMonthsBack = 3
)

// CalendarBounds допустимый диапазон просмотра календаря относительно сегодняшнего дня
func CalendarBounds(today civil.Date) (civil.Date, civil.Date) {
	earliest := monthsBack(today, MaxMonthsBack)
	latest := today.AddDays(MaxWeeksForward * 7)
	return earliest, latest
}

// monthsBack сдвигает дату на n месяцев назад. День обрезается до конца целевого месяца:
// 31 мая минус 3 месяца = 29 февраля, а не 2 марта.
func monthsBack(d civil.Date, n int) civil.Date {
	first := time.Date(d.Year, d.Month-time.Month(n), 1, 0, 0, 0, 0, utc)
	lastDay := first.AddDate(0, 1, -1).Day()

	day := d.Day
	if day > lastDay {
		day = lastDay
	}
	return civil.Date{Year: first.Year(), Month: first.Month(), Day: day}
}

// ClampRange обрезает запрошенный диапазон по границам календаря.
// ok == false, если после обрезки ничего не осталось.
func ClampRange(from, to, today civil.Date) (civil.Date, civil.Date, bool) {
	earliest, latest := CalendarBounds(today)
	if from.Before(earliest) {
		from = earliest
	}
	if to.After(latest) {
		to = latest
	}
	return from, to, !to.Before(from)
}

// WeekStart понедельник недели, в которую попадает дата
func WeekStart(d civil.Date) civil.Date {
	wd := int(d.In(utc).Weekday())
	// воскресенье считаем последним днём недели
	offset := (wd + 6) % 7
	return d.AddDays(-offset)
}
