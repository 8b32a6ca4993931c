package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrNoScheduleChosen не выбрано ни одного слота или у даты пустой набор времени
	ErrNoScheduleChosen = errors.New("no schedule chosen")
	// ErrScheduleCreationFailedAll ни одно занятие не удалось забронировать
	ErrScheduleCreationFailedAll = errors.New("schedule creation failed for all occurrences")
	// ErrTrainerNotFound тренер не найден
	ErrTrainerNotFound = errors.New("trainer not found")
	// ErrFacilityNotFound центр тренера не найден
	ErrFacilityNotFound = errors.New("facility not found")
	// ErrInvalidRange конец диапазона раньше начала
	ErrInvalidRange = errors.New("invalid date range")
)

// PartialCreationMismatch число сохранённых строк не совпало с числом принятых занятий
type PartialCreationMismatch struct {
	ScheduleCount   int // upsert-нутые строки schedules
	PTScheduleCount int // созданные связи pt_schedules
	PTRecordCount   int // принятые занятия, которые пытались сохранить
}

func (e *PartialCreationMismatch) Error() string {
	return fmt.Sprintf("partial schedule creation: schedules=%d pt_schedules=%d expected=%d",
		e.ScheduleCount, e.PTScheduleCount, e.PTRecordCount)
}

// Missing возвращает сколько занятий не привязалось к заявке
func (e *PartialCreationMismatch) Missing() int {
	return e.PTRecordCount - e.PTScheduleCount
}
