package cancellation_workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	cancellationRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/cancellation"
	shiftRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/shift"
	workerRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/worker"
	"github.com/m04kA/SMC-StaffingService/internal/service/blacklist"
)

// UseCase машина состояний отмены смены
//
//	pending -> auto_replied | manual_response -> blacklisted
//
// no_show и late_cancellation подтверждаются автоматически при создании,
// остальные причины ждут ответа оператора
type UseCase struct {
	cancellationRepo CancellationRepository
	shiftRepo        ShiftRepository
	workerRepo       WorkerRepository
	blacklist        BlacklistRegistry
	reliability      ReliabilityTracker
	rebooking        RebookingEngine
	publisher        EventPublisher
	txManager        TransactionManager
	policy           EscalationPolicy
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cancellationRepo CancellationRepository,
	shiftRepo ShiftRepository,
	workerRepo WorkerRepository,
	blacklist BlacklistRegistry,
	reliability ReliabilityTracker,
	rebooking RebookingEngine,
	publisher EventPublisher,
	txManager TransactionManager,
	policy EscalationPolicy,
	logger Logger,
) *UseCase {
	if policy.WindowDays <= 0 {
		policy.WindowDays = domain.DefaultEscalationWindowDays
	}

	return &UseCase{
		cancellationRepo: cancellationRepo,
		shiftRepo:        shiftRepo,
		workerRepo:       workerRepo,
		blacklist:        blacklist,
		reliability:      reliability,
		rebooking:        rebooking,
		publisher:        publisher,
		txManager:        txManager,
		policy:           policy,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Create регистрирует отмену смены назначенным работником
// Смена переходит в cancelled, для no_show активной смены учитывается невыход.
// После коммита запускается подбор замены: его сбой не отменяет созданную отмену
func (uc *UseCase) Create(ctx context.Context, req *CreateRequest) (*CreateResponse, error) {
	uc.logger.Info("CreateCancellation: shift=%d, worker=%d, reason=%s", req.ShiftID, req.WorkerID, req.Reason)

	// 1. Валидация входных данных
	if err := validateCreateRequest(req); err != nil {
		uc.logger.Warn("CreateCancellation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	cancelledAt := now
	if req.Time != nil {
		cancelledAt = req.Time.UTC()
	}

	var (
		result *domain.Cancellation
		recent int
	)

	// 2. Отмена смены и запись отмены в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		shift, err := uc.shiftRepo.GetByID(txCtx, req.ShiftID)
		if err != nil {
			if errors.Is(err, shiftRepo.ErrShiftNotFound) {
				uc.logger.Warn("CreateCancellation: shift id=%d not found", req.ShiftID)
				return ErrShiftNotFound
			}
			uc.logger.Error("CreateCancellation: failed to get shift id=%d: %v", req.ShiftID, err)
			return fmt.Errorf("%w: failed to get shift: %v", ErrInternal, err)
		}

		if _, err := uc.workerRepo.GetByID(txCtx, req.WorkerID); err != nil {
			if errors.Is(err, workerRepo.ErrWorkerNotFound) {
				uc.logger.Warn("CreateCancellation: worker id=%d not found", req.WorkerID)
				return ErrWorkerNotFound
			}
			uc.logger.Error("CreateCancellation: failed to get worker id=%d: %v", req.WorkerID, err)
			return fmt.Errorf("%w: failed to get worker: %v", ErrInternal, err)
		}

		switch shift.Status {
		case domain.ShiftStatusCancelled:
			uc.logger.Warn("CreateCancellation: shift id=%d already cancelled", req.ShiftID)
			return ErrAlreadyCancelled
		case domain.ShiftStatusCompleted:
			uc.logger.Warn("CreateCancellation: shift id=%d already completed", req.ShiftID)
			return ErrShiftCompleted
		}

		if !shift.IsAssignedTo(req.WorkerID) {
			uc.logger.Warn("CreateCancellation: worker id=%d is not assigned to shift id=%d", req.WorkerID, req.ShiftID)
			return ErrWorkerNotAssigned
		}

		wasActive := shift.IsActive()
		shift.Status = domain.ShiftStatusCancelled
		if err := uc.shiftRepo.Update(txCtx, shift); err != nil {
			uc.logger.Error("CreateCancellation: failed to cancel shift id=%d: %v", req.ShiftID, err)
			return fmt.Errorf("%w: failed to cancel shift: %v", ErrInternal, err)
		}

		status := initialStatus(req.Reason)
		created, err := uc.cancellationRepo.Create(txCtx, &domain.Cancellation{
			ShiftID:       req.ShiftID,
			WorkerID:      req.WorkerID,
			Time:          cancelledAt,
			Reason:        req.Reason,
			ReasonDetail:  trimOptional(req.ReasonDetail),
			Status:        status,
			AutoReplySent: status == domain.CancellationAutoReplied,
		})
		if err != nil {
			uc.logger.Error("CreateCancellation: failed to create cancellation: %v", err)
			return fmt.Errorf("%w: failed to create cancellation: %v", ErrInternal, err)
		}

		// Невыход на активную смену - единственный отрицательный исход для надёжности
		if req.Reason == domain.ReasonNoShow && wasActive {
			if _, err := uc.reliability.RecordOutcome(txCtx, req.WorkerID, false); err != nil {
				uc.logger.Error("CreateCancellation: failed to record no-show for worker id=%d: %v", req.WorkerID, err)
				return fmt.Errorf("%w: failed to record outcome: %v", ErrInternal, err)
			}
		}

		since := windowStart(cancelledAt, uc.policy.WindowDays)
		recent, err = uc.cancellationRepo.CountByWorkerSince(txCtx, req.WorkerID, since)
		if err != nil {
			uc.logger.Error("CreateCancellation: failed to count cancellations for worker id=%d: %v", req.WorkerID, err)
			return fmt.Errorf("%w: failed to count cancellations: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateCancellation: created cancellation id=%d, status=%s", result.ID, result.Status)

	// 3. Рекомендация эскалации (только совет, статус не меняется)
	recommended := domain.AnyRuleMatches(uc.policy.Rules, recent)
	if recommended {
		uc.logger.Warn("CreateCancellation: escalation recommended for worker id=%d, %d cancellations in %d days",
			req.WorkerID, recent, uc.policy.WindowDays)
	}

	// 4. Подбор замены после коммита
	suggestions, err := uc.rebooking.Suggest(ctx, req.ShiftID, 0)
	if err != nil {
		uc.logger.Error("CreateCancellation: failed to suggest rebooking for shift id=%d: %v", req.ShiftID, err)
		suggestions = []*domain.RebookingSuggestion{}
	}

	return &CreateResponse{
		Cancellation:          result,
		Suggestions:           suggestions,
		RecentCancellations:   recent,
		EscalationRecommended: recommended,
	}, nil
}

// Escalate переводит отмену в blacklisted и заносит работника в черный список
// Повторная эскалация отклоняется, история черного списка не дублируется
func (uc *UseCase) Escalate(ctx context.Context, req *EscalateRequest) (*EscalateResponse, error) {
	uc.logger.Info("EscalateCancellation: cancellation id=%d", req.CancellationID)

	if req.CancellationID <= 0 {
		uc.logger.Warn("EscalateCancellation: invalid cancellation id=%d", req.CancellationID)
		return nil, fmt.Errorf("%w: cancellation id must be positive", ErrInvalidInput)
	}

	var resp EscalateResponse

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		c, err := uc.getCancellation(txCtx, "EscalateCancellation", req.CancellationID)
		if err != nil {
			return err
		}

		if c.IsTerminal() {
			uc.logger.Warn("EscalateCancellation: cancellation id=%d already blacklisted", c.ID)
			return ErrAlreadyBlacklisted
		}

		if !c.CanTransitionTo(domain.CancellationBlacklisted) {
			uc.logger.Warn("EscalateCancellation: cancellation id=%d cannot move %s -> blacklisted", c.ID, c.Status)
			return ErrInvalidTransition
		}

		reason := fmt.Sprintf(domain.DefaultBlacklistReasonFormat, c.Reason)
		if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
			reason = *req.Reason
		}

		entry, event, err := uc.blacklist.Blacklist(txCtx, c.WorkerID, reason, &c.ID)
		if err != nil {
			switch {
			case errors.Is(err, blacklist.ErrWorkerNotFound):
				uc.logger.Warn("EscalateCancellation: worker id=%d not found", c.WorkerID)
				return ErrWorkerNotFound
			case errors.Is(err, blacklist.ErrInvalidReason):
				uc.logger.Warn("EscalateCancellation: invalid reason for cancellation id=%d", c.ID)
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			default:
				uc.logger.Error("EscalateCancellation: failed to blacklist worker id=%d: %v", c.WorkerID, err)
				return fmt.Errorf("%w: failed to blacklist worker: %v", ErrInternal, err)
			}
		}

		c.Status = domain.CancellationBlacklisted
		c.Blacklisted = true
		if err := uc.cancellationRepo.Update(txCtx, c); err != nil {
			uc.logger.Error("EscalateCancellation: failed to update cancellation id=%d: %v", c.ID, err)
			return fmt.Errorf("%w: failed to update cancellation: %v", ErrInternal, err)
		}

		resp = EscalateResponse{Cancellation: c, Entry: entry, Event: event}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.publisher.Publish(ctx, resp.Event); err != nil {
		uc.logger.Error("EscalateCancellation: failed to publish event id=%s: %v", resp.Event.ID, err)
	}

	uc.logger.Info("EscalateCancellation: cancellation id=%d escalated, worker id=%d blacklisted",
		resp.Cancellation.ID, resp.Cancellation.WorkerID)
	return &resp, nil
}

// Respond фиксирует ручной ответ оператора: pending -> manual_response
func (uc *UseCase) Respond(ctx context.Context, req *RespondRequest) (*domain.Cancellation, error) {
	uc.logger.Info("RespondCancellation: cancellation id=%d", req.CancellationID)

	if err := validateNote(req.Note); err != nil {
		uc.logger.Warn("RespondCancellation: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Cancellation

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		c, err := uc.getCancellation(txCtx, "RespondCancellation", req.CancellationID)
		if err != nil {
			return err
		}

		if !c.CanTransitionTo(domain.CancellationManualResponse) {
			uc.logger.Warn("RespondCancellation: cancellation id=%d cannot move %s -> manual_response", c.ID, c.Status)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, domain.CancellationManualResponse)
		}

		c.Status = domain.CancellationManualResponse
		c.FallbackHandled = true
		c.ResponseNote = trimOptional(req.Note)

		if err := uc.cancellationRepo.Update(txCtx, c); err != nil {
			uc.logger.Error("RespondCancellation: failed to update cancellation id=%d: %v", c.ID, err)
			return fmt.Errorf("%w: failed to update cancellation: %v", ErrInternal, err)
		}

		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RespondCancellation: cancellation id=%d handled manually", result.ID)
	return result, nil
}

// List возвращает отмены по фильтрам, новые первыми
func (uc *UseCase) List(ctx context.Context, req *ListRequest) ([]*domain.Cancellation, error) {
	uc.logger.Info("ListCancellations: status=%v, worker=%v, shift=%v", req.Status, req.WorkerID, req.ShiftID)

	if err := validateListRequest(req); err != nil {
		uc.logger.Warn("ListCancellations: validation failed: %v", err)
		return nil, err
	}

	cancellations, err := uc.cancellationRepo.List(ctx, domain.CancellationsFilter{
		Status:   req.Status,
		WorkerID: req.WorkerID,
		ShiftID:  req.ShiftID,
		From:     req.From,
		To:       req.To,
	})
	if err != nil {
		uc.logger.Error("ListCancellations: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to list cancellations: %v", ErrInternal, err)
	}

	return cancellations, nil
}

func (uc *UseCase) getCancellation(ctx context.Context, op string, id int64) (*domain.Cancellation, error) {
	c, err := uc.cancellationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, cancellationRepo.ErrCancellationNotFound) {
			uc.logger.Warn("%s: cancellation id=%d not found", op, id)
			return nil, ErrCancellationNotFound
		}
		uc.logger.Error("%s: failed to get cancellation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: failed to get cancellation: %v", ErrInternal, err)
	}
	return c, nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// windowStart начало окна подсчёта отмен
func windowStart(at time.Time, days int) time.Time {
	return at.AddDate(0, 0, -days)
}
