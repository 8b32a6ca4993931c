package formatting

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
	"github.com/Freeeeeet/pt_scheduler/internal/scheduling"
	"github.com/Freeeeeet/pt_scheduler/internal/service"
)

func TestPluralizeSessions(t *testing.T) {
	tests := map[int]string{
		0:   "занятий",
		1:   "занятие",
		2:   "занятия",
		5:   "занятий",
		11:  "занятий",
		21:  "занятие",
		104: "занятия",
	}
	for n, want := range tests {
		assert.Equal(t, want, PluralizeSessions(n), "n=%d", n)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "08.01.2024 (Понедельник)", FormatDate(civil.Date{Year: 2024, Month: time.January, Day: 8}))
	assert.Equal(t, "14.01.2024 (Воскресенье)", FormatDate(civil.Date{Year: 2024, Month: time.January, Day: 14}))
}

func TestFormatOff(t *testing.T) {
	d := civil.Date{Year: 2024, Month: time.January, Day: 8}

	assert.Equal(t, "🔒 Центр закрыт (весь день)",
		FormatOff(model.OffInterval{Type: model.OffTypeCenterRegular, Date: d, EndTime: model.MidnightEnd, IsFullDay: true}))
	assert.Equal(t, "🛌 Выходной тренера 12:00-13:30",
		FormatOff(model.OffInterval{Type: model.OffTypeTrainer, Date: d, StartTime: 1200, EndTime: 1330}))
}

func TestFormatSessionLine(t *testing.T) {
	v := &service.SessionView{
		Booking: &model.Booking{ID: 12, StartTime: 930, EndTime: 1030, HasPendingChange: true},
		State:   scheduling.StatePending,
	}
	assert.Equal(t, "⏳ 9:30-10:30 #12 Ожидает подтверждения 🔁", FormatSessionLine(v))
}

func TestFormatWeek(t *testing.T) {
	mon := civil.Date{Year: 2024, Month: time.January, Day: 8}
	week := &service.WeekView{
		From: mon,
		To:   mon.AddDays(1),
		Days: []*service.DayView{
			{
				Date: mon,
				Sessions: []*service.SessionView{
					{Booking: &model.Booking{ID: 1, StartTime: 900, EndTime: 1000}, State: scheduling.StateAttended},
				},
			},
			{
				Date: mon.AddDays(1),
				Offs: []model.OffInterval{{Type: model.OffTypeCenterSpecial, Date: mon.AddDays(1), IsFullDay: true}},
			},
		},
	}

	out := FormatWeek(week)
	assert.Contains(t, out, "✅ 9:00-10:00 #1 Посещено")
	assert.Contains(t, out, "📛 Особый выходной центра (весь день)")
	assert.NotContains(t, out, "Нет занятий")
	assert.Contains(t, out, "Всего: 1 занятие")
}

func TestFormatProposal(t *testing.T) {
	p := &service.Proposal{
		Partition: scheduling.Partition{
			Success: []model.Occurrence{{}, {}, {}, {}, {}},
			Fail: []model.Occurrence{
				{Date: civil.Date{Year: 2024, Month: time.January, Day: 15}, StartTime: 900, EndTime: 1000},
			},
		},
	}

	out := FormatProposal(p)
	assert.Contains(t, out, "Свободно: 5 занятий")
	assert.Contains(t, out, "• 15.01.2024 (Понедельник) 9:00-10:00")
	assert.NotContains(t, out, "меньше")
}
