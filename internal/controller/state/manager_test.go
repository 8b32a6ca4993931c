package state

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	sm := NewManager()
	week := civil.Date{Year: 2024, Month: time.January, Day: 8}

	_, ok := sm.GetWeek(1)
	assert.False(t, ok)

	sm.SetWeek(1, 7, week)
	got, ok := sm.GetWeek(1)
	require.True(t, ok)
	assert.Equal(t, UserData{Week: week, TrainerID: 7}, got)

	sm.SetWeek(1, 7, week.AddDays(7))
	got, _ = sm.GetWeek(1)
	assert.Equal(t, week.AddDays(7), got.Week)

	sm.ClearState(1)
	_, ok = sm.GetWeek(1)
	assert.False(t, ok)
}
