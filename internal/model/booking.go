package model

import (
	"time"

	"cloud.google.com/go/civil"
)

// Booking забронированное PT-занятие: связь заявки (pt_schedules) с временным блоком (schedules)
type Booking struct {
	ID            int64           `json:"id"`          // pt_schedules.id
	ScheduleID    int64           `json:"schedule_id"` // schedules.id
	RequestID     int64           `json:"request_id"`
	TrainerID     int64           `json:"trainer_id"`
	MemberID      int64           `json:"member_id"`
	Date          civil.Date      `json:"date"`
	StartTime     TimeCode        `json:"start_time"`
	EndTime       TimeCode        `json:"end_time"`
	RequestStatus PTRequestStatus `json:"request_status"`
	CreatedAt     time.Time       `json:"created_at"`

	// Заполняется при чтении, в этой таблице не хранится
	HasPendingChange bool `json:"has_pending_change"`
}

// Window возвращает окно занятия
func (b *Booking) Window() Window {
	return Window{Date: b.Date, StartTime: b.StartTime, EndTime: b.EndTime}
}
