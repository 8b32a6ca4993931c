package model

import (
	"time"

	"cloud.google.com/go/civil"
)

// WeeklyRule шаблон занятия на день недели
type WeeklyRule struct {
	Weekday   time.Weekday `json:"weekday"` // 0 = Sunday, 6 = Saturday
	StartTime TimeCode     `json:"start_time"`
	EndTime   TimeCode     `json:"end_time"`
}

// Occurrence конкретное занятие-кандидат на дату
type Occurrence struct {
	Date      civil.Date `json:"date"`
	StartTime TimeCode   `json:"start_time"`
	EndTime   TimeCode   `json:"end_time"`
}

// Window возвращает временное окно занятия
func (o Occurrence) Window() Window {
	return Window{Date: o.Date, StartTime: o.StartTime, EndTime: o.EndTime}
}

// Window временное окно на конкретную дату, интервал [StartTime, EndTime)
type Window struct {
	Date      civil.Date `json:"date"`
	StartTime TimeCode   `json:"start_time"`
	EndTime   TimeCode   `json:"end_time"`
}

// Bounds возвращает абсолютные начало и конец окна в локации площадки
func (w Window) Bounds(loc *time.Location) (time.Time, time.Time) {
	return w.StartTime.On(w.Date, loc), w.EndTime.On(w.Date, loc)
}
