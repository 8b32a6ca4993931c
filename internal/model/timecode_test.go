package model

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeCode_AddHalfHour(t *testing.T) {
	tests := []struct {
		in   TimeCode
		want TimeCode
	}{
		{930, 1000},
		{2330, 0},
		{1230, 1300},
		{900, 930},
		{0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.AddHalfHour())
		})
	}
}

func TestTimeCode_String(t *testing.T) {
	assert.Equal(t, "9:30", TimeCode(930).String())
	assert.Equal(t, "14:00", TimeCode(1400).String())
	assert.Equal(t, "0:00", TimeCode(0).String())
}

func TestParseTimeCode(t *testing.T) {
	tc, err := ParseTimeCode("9:30")
	require.NoError(t, err)
	assert.Equal(t, TimeCode(930), tc)

	tc, err = ParseTimeCode("1400")
	require.NoError(t, err)
	assert.Equal(t, TimeCode(1400), tc)

	_, err = ParseTimeCode("9:75")
	assert.Error(t, err)

	_, err = ParseTimeCode("abc")
	assert.Error(t, err)
}

func TestTimeCode_On(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	date := civil.Date{Year: 2024, Month: time.January, Day: 8}

	got := TimeCode(930).On(date, loc)
	assert.Equal(t, time.Date(2024, time.January, 8, 9, 30, 0, 0, loc), got)

	// 24:00 = полночь следующего дня
	got = MidnightEnd.On(date, loc)
	assert.Equal(t, time.Date(2024, time.January, 9, 0, 0, 0, 0, loc), got)
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, time.Monday, Weekday(civil.Date{Year: 2024, Month: time.January, Day: 8}))
	assert.Equal(t, time.Sunday, Weekday(civil.Date{Year: 2024, Month: time.January, Day: 14}))
}
