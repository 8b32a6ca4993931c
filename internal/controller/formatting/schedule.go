package formatting

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
	"github.com/Freeeeeet/pt_scheduler/internal/service"
)

var weekdayNames = []string{
	"Воскресенье",
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
}

// FormatDate дата вида 08.01.2024 (Понедельник)
func FormatDate(d civil.Date) string {
	return fmt.Sprintf("%02d.%02d.%d (%s)", d.Day, int(d.Month), d.Year, weekdayNames[model.Weekday(d)])
}

// FormatTimeRange 9:00-10:00
func FormatTimeRange(start, end model.TimeCode) string {
	return start.String() + "-" + end.String()
}

// FormatOff строка одного нерабочего интервала
func FormatOff(off model.OffInterval) string {
	display := GetOffDisplay(off.Type)
	if off.IsFullDay {
		return fmt.Sprintf("%s %s (весь день)", display.Emoji, display.Text)
	}
	return fmt.Sprintf("%s %s %s", display.Emoji, display.Text, FormatTimeRange(off.StartTime, off.EndTime))
}

// FormatSessionLine краткая строка занятия для списков
func FormatSessionLine(v *service.SessionView) string {
	display := GetStateDisplay(v.State)
	line := fmt.Sprintf("%s %s #%d %s",
		display.Emoji,
		FormatTimeRange(v.Booking.StartTime, v.Booking.EndTime),
		v.Booking.ID,
		display.Text)
	if v.Booking.HasPendingChange {
		line += " 🔁"
	}
	return line
}

// FormatSession подробная карточка занятия
func FormatSession(v *service.SessionView) string {
	display := GetStateDisplay(v.State)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>Занятие #%d</b>\n\n", display.Emoji, v.Booking.ID)
	fmt.Fprintf(&sb, "📅 Дата: %s\n", FormatDate(v.Booking.Date))
	fmt.Fprintf(&sb, "🕐 Время: %s\n", FormatTimeRange(v.Booking.StartTime, v.Booking.EndTime))
	fmt.Fprintf(&sb, "📊 Статус: %s\n", display.Text)
	fmt.Fprintf(&sb, "📝 Записей тренировки: %d\n", v.RecordCount)
	if v.Booking.HasPendingChange {
		sb.WriteString("🔁 Есть запрос на перенос\n")
	}
	if v.CanEdit {
		sb.WriteString("\n✏️ Можно внести запись тренировки")
	}
	return sb.String()
}

// FormatWeek календарь недели тренера
func FormatWeek(week *service.WeekView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>Неделя %s - %s</b>\n", FormatDate(week.From), FormatDate(week.To))

	total := 0
	for _, day := range week.Days {
		sb.WriteString("\n<b>" + FormatDate(day.Date) + "</b>\n")
		for _, off := range day.Offs {
			sb.WriteString(FormatOff(off) + "\n")
		}
		if len(day.Sessions) == 0 && !day.IsClosed() {
			sb.WriteString("Нет занятий\n")
		}
		for _, s := range day.Sessions {
			sb.WriteString(FormatSessionLine(s) + "\n")
		}
		total += len(day.Sessions)
	}

	fmt.Fprintf(&sb, "\nВсего: %d %s", total, PluralizeSessions(total))
	return sb.String()
}

// FormatProposal итог проверки расписания: свободные и занятые даты
func FormatProposal(p *service.Proposal) string {
	var sb strings.Builder

	free := len(p.Partition.Success)
	fmt.Fprintf(&sb, "✅ Свободно: %d %s\n", free, PluralizeSessions(free))
	if p.Truncated {
		sb.WriteString("⚠️ Сгенерировано меньше занятий, чем запрошено\n")
	}

	if len(p.Partition.Fail) > 0 {
		sb.WriteString("\n❌ Заняты:\n")
		for _, occ := range p.Partition.Fail {
			fmt.Fprintf(&sb, "• %s %s\n", FormatDate(occ.Date), FormatTimeRange(occ.StartTime, occ.EndTime))
		}
	}
	return sb.String()
}
