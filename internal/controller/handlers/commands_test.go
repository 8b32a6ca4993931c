package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pt_scheduler/internal/controller/state"
	"github.com/Freeeeeet/pt_scheduler/internal/model"
)

type stubTrainers map[int64]*model.Trainer

func (s stubTrainers) GetByTelegramID(_ context.Context, telegramID int64) (*model.Trainer, error) {
	return s[telegramID], nil
}

func newTestBot(t *testing.T) *bot.Bot {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`))
	}))
	t.Cleanup(srv.Close)

	b, err := bot.New("123:abc", bot.WithServerURL(srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)
	return b
}

func startUpdate(telegramID int64) *models.Update {
	return &models.Update{Message: &models.Message{
		Text: "/start",
		Chat: models.Chat{ID: telegramID},
		From: &models.User{ID: telegramID},
	}}
}

func TestHandleStart_ResetsWeekNavigation(t *testing.T) {
	sm := state.NewManager()
	trainers := stubTrainers{10: {ID: 7, TelegramID: 10, Name: "Анна"}}
	h := NewHandlers(trainers, nil, nil, nil, sm, zap.NewNop())

	sm.SetWeek(10, 7, civil.Date{Year: 2024, Month: time.March, Day: 4})
	sm.SetWeek(20, 8, civil.Date{Year: 2024, Month: time.March, Day: 4})

	h.HandleStart(context.Background(), newTestBot(t), startUpdate(10))

	_, ok := sm.GetWeek(10)
	assert.False(t, ok)
	_, ok = sm.GetWeek(20)
	assert.True(t, ok, "чужая навигация не трогается")
}

func TestHandleStart_NotTrainerKeepsState(t *testing.T) {
	sm := state.NewManager()
	h := NewHandlers(stubTrainers{}, nil, nil, nil, sm, zap.NewNop())
	sm.SetWeek(30, 8, civil.Date{Year: 2024, Month: time.March, Day: 4})

	h.HandleStart(context.Background(), newTestBot(t), startUpdate(30))

	_, ok := sm.GetWeek(30)
	assert.True(t, ok)
}
