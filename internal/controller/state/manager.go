package state

import (
	"sync"

	"cloud.google.com/go/civil"
)

// Manager хранит, какую неделю календаря смотрит пользователь
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// GetWeek неделя, открытая пользователем последней
func (sm *Manager) GetWeek(telegramID int64) (UserData, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return *userData, true
	}
	return UserData{}, false
}

// SetWeek запоминает открытую неделю
func (sm *Manager) SetWeek(telegramID, trainerID int64, week civil.Date) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[telegramID] = &UserData{Week: week, TrainerID: trainerID}
}

// ClearState забывает навигацию пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}
