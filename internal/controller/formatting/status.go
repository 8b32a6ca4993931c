package formatting

import (
	"github.com/Freeeeeet/pt_scheduler/internal/model"
	"github.com/Freeeeeet/pt_scheduler/internal/scheduling"
)

// StatusDisplay emoji и текст статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetStateDisplay отображение статуса посещения
func GetStateDisplay(state scheduling.State) StatusDisplay {
	displays := map[scheduling.State]StatusDisplay{
		scheduling.StateReserved:   {"🗓", "Забронировано"},
		scheduling.StateInProgress: {"🏋️", "Идёт занятие"},
		scheduling.StateAttended:   {"✅", "Посещено"},
		scheduling.StateAbsent:     {"❌", "Пропуск"},
		scheduling.StatePending:    {"⏳", "Ожидает подтверждения"},
	}

	if display, ok := displays[state]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetOffDisplay отображение нерабочего интервала
func GetOffDisplay(t model.OffType) StatusDisplay {
	displays := map[model.OffType]StatusDisplay{
		model.OffTypeTrainer:       {"🛌", "Выходной тренера"},
		model.OffTypeCenterRegular: {"🔒", "Центр закрыт"},
		model.OffTypeCenterSpecial: {"📛", "Особый выходной центра"},
	}

	if display, ok := displays[t]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// PluralizeSessions склонение слова "занятие"
func PluralizeSessions(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "занятие"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "занятия"
	}
	return "занятий"
}
