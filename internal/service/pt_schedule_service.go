package service

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
	"github.com/Freeeeeet/pt_scheduler/internal/scheduling"
)

var (
	ErrRequestNotFound   = errors.New("pt request not found")
	ErrRequestNotPending = errors.New("pt request is not pending")
	ErrNotRequestOwner   = errors.New("pt request belongs to another trainer")
	ErrInvalidTotalCount = errors.New("total count must be positive")
)

// Proposal предложенное расписание до сохранения
type Proposal struct {
	Rules       []model.WeeklyRule   `json:"rules"`
	Occurrences []model.Occurrence   `json:"occurrences"`
	Partition   scheduling.Partition `json:"partition"`
	Truncated   bool                 `json:"truncated"` // сгенерировано меньше, чем запрошено
}

// CommitResult результат сохранения принятых занятий
type CommitResult struct {
	ScheduleCount   int                                 `json:"schedule_count"`
	PTScheduleCount int                                 `json:"pt_schedule_count"`
	Mismatch        *scheduling.PartialCreationMismatch `json:"mismatch,omitempty"`
}

// ScheduleResult итог заявки: что забронировано и что нет
type ScheduleResult struct {
	Request  *model.PTRequest `json:"request,omitempty"`
	Proposal *Proposal        `json:"proposal"`
	Commit   *CommitResult    `json:"commit,omitempty"`
}

// PTScheduleOptions настройки построения расписания
type PTScheduleOptions struct {
	CollisionPolicy    scheduling.CollisionPolicy
	RespectOffSchedule bool // занятия, попавшие на выходные, считаются конфликтом
}

type PTScheduleService struct {
	bookings BookingStore
	requests PTRequestStore
	overlay  OffOverlayBuilder
	detector *scheduling.Detector
	opts     PTScheduleOptions
	logger   *zap.Logger
}

func NewPTScheduleService(
	bookings BookingStore,
	requests PTRequestStore,
	overlay OffOverlayBuilder,
	detector *scheduling.Detector,
	opts PTScheduleOptions,
	logger *zap.Logger,
) *PTScheduleService {
	return &PTScheduleService{
		bookings: bookings,
		requests: requests,
		overlay:  overlay,
		detector: detector,
		opts:     opts,
		logger:   logger,
	}
}

// Propose строит недельный шаблон, разворачивает его в totalCount занятий
// и делит их на свободные и конфликтующие. Ничего не сохраняет.
func (s *PTScheduleService) Propose(ctx context.Context, trainerID int64, chosen scheduling.SlotSelection, totalCount int, firstDate civil.Date) (*Proposal, error) {
	if err := chosen.Validate(); err != nil {
		return nil, err
	}
	if totalCount <= 0 {
		return nil, ErrInvalidTotalCount
	}

	rules, err := scheduling.BuildWeekPattern(chosen, s.opts.CollisionPolicy)
	if err != nil {
		return nil, err
	}

	occs := scheduling.Generate(rules, totalCount, firstDate)
	truncated := len(occs) < totalCount
	if truncated {
		s.logger.Warn("Recurrence generation truncated",
			zap.Int64("trainer_id", trainerID),
			zap.String("first_date", firstDate.String()),
			zap.Int("requested", totalCount),
			zap.Int("generated", len(occs)))
	}

	partition, err := s.detector.Partition(ctx, trainerID, occs)
	if err != nil {
		return nil, fmt.Errorf("partition occurrences: %w", err)
	}

	if s.opts.RespectOffSchedule && len(occs) > 0 {
		offs, err := s.overlay.BuildOffOverlay(ctx, trainerID, occs[0].Date, occs[len(occs)-1].Date)
		if err != nil {
			return nil, fmt.Errorf("build off overlay: %w", err)
		}
		partition = scheduling.ApplyOffOverlay(partition, offs)
	}

	s.logger.Info("Schedule proposed",
		zap.Int64("trainer_id", trainerID),
		zap.Int("rules", len(rules)),
		zap.Int("success", len(partition.Success)),
		zap.Int("fail", len(partition.Fail)))

	return &Proposal{
		Rules:       rules,
		Occurrences: occs,
		Partition:   partition,
		Truncated:   truncated,
	}, nil
}

// RequestSchedule создаёт заявку участника и сохраняет свободные занятия одной транзакцией.
// Если свободных нет, возвращает ErrScheduleCreationFailedAll вместе с результатом,
// чтобы можно было показать все конфликтующие слоты. При ошибке сохранения заявка не создаётся.
func (s *PTScheduleService) RequestSchedule(ctx context.Context, memberID, trainerID int64, chosen scheduling.SlotSelection, totalCount int, firstDate civil.Date) (*ScheduleResult, error) {
	proposal, err := s.Propose(ctx, trainerID, chosen, totalCount, firstDate)
	if err != nil {
		return nil, err
	}

	result := &ScheduleResult{Proposal: proposal}
	if len(proposal.Partition.Success) == 0 {
		return result, scheduling.ErrScheduleCreationFailedAll
	}

	request := &model.PTRequest{
		GroupID:    uuid.New(),
		MemberID:   memberID,
		TrainerID:  trainerID,
		TotalCount: totalCount,
		Status:     model.PTRequestStatusPending,
	}

	accepted := proposal.Partition.Success
	scheduleCount, linkCount, err := s.bookings.CreateRequestWithSchedules(ctx, request, accepted)
	if err != nil {
		return result, fmt.Errorf("commit schedule: %w", err)
	}
	result.Request = request

	commit := s.commitResult(request.ID, len(accepted), scheduleCount, linkCount)
	result.Commit = commit

	s.logger.Info("PT request created",
		zap.Int64("request_id", request.ID),
		zap.String("group_id", request.GroupID.String()),
		zap.Int64("member_id", memberID),
		zap.Int64("trainer_id", trainerID),
		zap.Int("booked", commit.PTScheduleCount),
		zap.Int("failed", len(proposal.Partition.Fail)))

	return result, nil
}

// Commit сохраняет принятые занятия и привязывает их к уже существующей заявке.
// Расхождение в количестве не ошибка: результат содержит Mismatch со счётчиками.
func (s *PTScheduleService) Commit(ctx context.Context, requestID int64, accepted []model.Occurrence) (*CommitResult, error) {
	if len(accepted) == 0 {
		return nil, scheduling.ErrScheduleCreationFailedAll
	}

	scheduleCount, linkCount, err := s.bookings.CreateForRequest(ctx, requestID, accepted)
	if err != nil {
		return nil, fmt.Errorf("commit schedule: %w", err)
	}

	result := s.commitResult(requestID, len(accepted), scheduleCount, linkCount)
	if linkCount == 0 {
		return result, scheduling.ErrScheduleCreationFailedAll
	}

	return result, nil
}

// commitResult счётчики сохранения; расхождение с числом принятых занятий логируется как предупреждение
func (s *PTScheduleService) commitResult(requestID int64, accepted, scheduleCount, linkCount int) *CommitResult {
	result := &CommitResult{
		ScheduleCount:   scheduleCount,
		PTScheduleCount: linkCount,
	}

	if linkCount > 0 && (scheduleCount != accepted || linkCount != accepted) {
		result.Mismatch = &scheduling.PartialCreationMismatch{
			ScheduleCount:   scheduleCount,
			PTScheduleCount: linkCount,
			PTRecordCount:   accepted,
		}
		s.logger.Warn("Partial schedule creation",
			zap.Int64("request_id", requestID),
			zap.Int("schedule_count", scheduleCount),
			zap.Int("pt_schedule_count", linkCount),
			zap.Int("pt_record_count", accepted))
	}

	return result
}

// ApproveRequest тренер подтверждает заявку
func (s *PTScheduleService) ApproveRequest(ctx context.Context, requestID, trainerID int64) error {
	if err := s.checkPending(ctx, requestID, trainerID); err != nil {
		return err
	}

	if err := s.requests.UpdateStatus(ctx, requestID, model.PTRequestStatusApproved); err != nil {
		return fmt.Errorf("update pt request status: %w", err)
	}

	s.logger.Info("PT request approved",
		zap.Int64("request_id", requestID),
		zap.Int64("trainer_id", trainerID),
	)

	return nil
}

// RejectRequest тренер отклоняет заявку; её занятия перестают занимать слоты
func (s *PTScheduleService) RejectRequest(ctx context.Context, requestID, trainerID int64) error {
	if err := s.checkPending(ctx, requestID, trainerID); err != nil {
		return err
	}

	if err := s.requests.UpdateStatus(ctx, requestID, model.PTRequestStatusRejected); err != nil {
		return fmt.Errorf("update pt request status: %w", err)
	}

	s.logger.Info("PT request rejected",
		zap.Int64("request_id", requestID),
		zap.Int64("trainer_id", trainerID),
	)

	return nil
}

func (s *PTScheduleService) checkPending(ctx context.Context, requestID, trainerID int64) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("get pt request: %w", err)
	}

	if request == nil {
		return ErrRequestNotFound
	}

	if request.TrainerID != trainerID {
		return ErrNotRequestOwner
	}

	if !request.IsPending() {
		return ErrRequestNotPending
	}

	return nil
}
