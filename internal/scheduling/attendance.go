package scheduling

import (
	"time"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
)

// State статус посещения занятия. Вычисляется при каждом чтении и нигде не хранится
type State string

const (
	StateReserved   State = "RESERVED"
	StateInProgress State = "IN_PROGRESS"
	StateAttended   State = "ATTENDED"
	StateAbsent     State = "ABSENT"
	StatePending    State = "PENDING"
)

// ForList проекция для списков: "идёт" показываем как "забронировано"
func (s State) ForList() State {
	if s == StateInProgress {
		return StateReserved
	}
	return s
}

const (
	DefaultAttendanceGracePeriod = 10 * time.Minute
	DefaultEditWindowGracePeriod = 60 * time.Minute
)

// Resolver определяет статус посещения по окну занятия, текущему времени и наличию записи тренировки
type Resolver struct {
	location        *time.Location
	attendanceGrace time.Duration
	editWindowGrace time.Duration
}

// NewResolver создаёт резолвер для часового пояса площадки
func NewResolver(loc *time.Location, attendanceGrace, editWindowGrace time.Duration) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{
		location:        loc,
		attendanceGrace: attendanceGrace,
		editWindowGrace: editWindowGrace,
	}
}

// Resolve чистая функция от (now, окно, hasRecord)
func (r *Resolver) Resolve(window model.Window, hasWorkoutRecord bool, now time.Time) State {
	start, end := window.Bounds(r.location)

	switch {
	case now.Before(start):
		return StateReserved
	case !now.After(end.Add(r.attendanceGrace)):
		return StateInProgress
	case hasWorkoutRecord:
		return StateAttended
	default:
		return StateAbsent
	}
}

// ResolveForRequest пока заявку не подтвердил тренер, занятие всегда PENDING
func (r *Resolver) ResolveForRequest(status model.PTRequestStatus, window model.Window, hasWorkoutRecord bool, now time.Time) State {
	if status == model.PTRequestStatusPending {
		return StatePending
	}
	return r.Resolve(window, hasWorkoutRecord, now)
}

// CanEditRecord можно ли вносить запись тренировки: с начала занятия и до конца окна редактирования
func (r *Resolver) CanEditRecord(window model.Window, now time.Time) bool {
	start, end := window.Bounds(r.location)
	return !now.Before(start) && !now.After(end.Add(r.editWindowGrace))
}
