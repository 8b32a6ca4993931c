package state

import "cloud.google.com/go/civil"

// UserData навигация пользователя по календарю
type UserData struct {
	Week      civil.Date // понедельник текущей показанной недели
	TrainerID int64
}
