package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// TimeCode время суток в формате HHMM (930 = 09:30).
// Это не "минуты с полуночи": часы живут в старших разрядах по основанию 100.
type TimeCode int

const (
	// MidnightEnd конец суток, допустим только как время окончания
	MidnightEnd TimeCode = 2400
	halfHour             = 30
)

// Hour возвращает часовую часть
func (t TimeCode) Hour() int {
	return int(t) / 100
}

// Minute возвращает минутную часть
func (t TimeCode) Minute() int {
	return int(t) % 100
}

// Valid проверяет что значение попадает в [0, 2400] и минуты меньше 60
func (t TimeCode) Valid() bool {
	if t < 0 || t > MidnightEnd {
		return false
	}
	if t == MidnightEnd {
		return true
	}
	return t.Minute() < 60
}

// AddHalfHour прибавляет 30 минут с переносом часа и суток.
// 2330 + 30 мин = 0.
func (t TimeCode) AddHalfHour() TimeCode {
	hour := t.Hour()
	minute := t.Minute() + halfHour

	if minute >= 60 {
		minute = 0
		hour++
	}
	if hour >= 24 {
		hour = 0
	}

	return TimeCode(hour*100 + minute)
}

// String форматирует как H:MM (час без ведущего нуля)
func (t TimeCode) String() string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// On собирает абсолютный момент времени для даты в заданной локации.
// 2400 превращается в 00:00 следующего дня.
func (t TimeCode) On(date civil.Date, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(date.Year, date.Month, date.Day, t.Hour(), t.Minute(), 0, 0, loc)
}

// ParseTimeCode разбирает "9:30", "09:30" или "930"
func ParseTimeCode(s string) (TimeCode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse time code: empty string")
	}

	var code int
	if hh, mm, ok := strings.Cut(s, ":"); ok {
		hour, err := strconv.Atoi(hh)
		if err != nil {
			return 0, fmt.Errorf("parse time code %q: %w", s, err)
		}
		minute, err := strconv.Atoi(mm)
		if err != nil {
			return 0, fmt.Errorf("parse time code %q: %w", s, err)
		}
		code = hour*100 + minute
	} else {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("parse time code %q: %w", s, err)
		}
		code = v
	}

	tc := TimeCode(code)
	if !tc.Valid() {
		return 0, fmt.Errorf("parse time code %q: out of range", s)
	}
	return tc, nil
}

// Weekday возвращает день недели для календарной даты (0 = воскресенье)
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}
