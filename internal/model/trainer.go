package model

import "time"

// Trainer тренер. FacilityID == nil если тренер не привязан к центру
type Trainer struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Name       string    `json:"name"`
	FacilityID *int64    `json:"facility_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Facility фитнес-центр
type Facility struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}
