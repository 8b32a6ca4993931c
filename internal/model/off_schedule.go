package model

import (
	"time"

	"cloud.google.com/go/civil"
)

// TrainerOff выходной тренера: либо разовый (Date), либо еженедельный (Weekday)
type TrainerOff struct {
	ID        int64         `json:"id"`
	TrainerID int64         `json:"trainer_id"`
	Date      *civil.Date   `json:"date"`
	Weekday   *time.Weekday `json:"week_day"`
	StartTime TimeCode      `json:"start_time"`
	EndTime   TimeCode      `json:"end_time"`
	Reason    string        `json:"reason"`
}

// IsRecurring проверяет что выходной повторяется по дню недели
func (o *TrainerOff) IsRecurring() bool {
	return o.Weekday != nil && o.Date == nil
}

// FacilityHours часы работы центра на день недели
type FacilityHours struct {
	FacilityID int64        `json:"facility_id"`
	Weekday    time.Weekday `json:"weekday"`
	OpenTime   TimeCode     `json:"open_time"`
	CloseTime  TimeCode     `json:"close_time"`
	IsClosed   bool         `json:"is_closed"`
}

// FacilitySpecialOff разовое закрытие центра
type FacilitySpecialOff struct {
	ID         int64      `json:"id"`
	FacilityID int64      `json:"facility_id"`
	Date       civil.Date `json:"date"`
	Reason     string     `json:"reason"`
}

// OffType источник нерабочего интервала
type OffType string

const (
	OffTypeTrainer       OffType = "TRAINER_OFF"
	OffTypeCenterRegular OffType = "CENTER_REGULAR_OFF"
	OffTypeCenterSpecial OffType = "CENTER_SPECIAL_OFF"
)

// OffInterval проекция выходного на конкретную дату; в БД не сохраняется
type OffInterval struct {
	Type      OffType    `json:"type"`
	Date      civil.Date `json:"date"`
	StartTime TimeCode   `json:"start_time"`
	EndTime   TimeCode   `json:"end_time"`
	IsFullDay bool       `json:"is_full_day"`
}
