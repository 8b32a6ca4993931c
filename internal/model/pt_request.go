package model

import (
	"time"

	"github.com/google/uuid"
)

// PTRequestStatus статус заявки на персональные тренировки
type PTRequestStatus string

const (
	PTRequestStatusPending  PTRequestStatus = "pending"  // Ожидает подтверждения тренера
	PTRequestStatusApproved PTRequestStatus = "approved" // Подтверждена
	PTRequestStatusRejected PTRequestStatus = "rejected" // Отклонена тренером
)

// PTRequest заявка участника на серию персональных тренировок
type PTRequest struct {
	ID         int64           `json:"id"`
	GroupID    uuid.UUID       `json:"group_id"`
	MemberID   int64           `json:"member_id"`
	TrainerID  int64           `json:"trainer_id"`
	TotalCount int             `json:"total_count"`
	Status     PTRequestStatus `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  *time.Time      `json:"updated_at"`
}

// IsPending checks if request is still waiting for the trainer
func (r *PTRequest) IsPending() bool {
	return r.Status == PTRequestStatusPending
}
