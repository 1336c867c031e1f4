package rebooking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	shiftRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/shift"
	suggestionRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/suggestion"
	workerRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/worker"
	"github.com/m04kA/SMC-StaffingService/internal/service/availability"
	"github.com/m04kA/SMC-StaffingService/internal/service/workerlock"
)

// UseCase подбор и подтверждение замены для отменённой смены
type UseCase struct {
	shiftRepo      ShiftRepository
	workerRepo     WorkerRepository
	suggestionRepo SuggestionRepository
	eventRepo      EventRepository
	availability   AvailabilityIndex
	guard          WorkerGuard
	publisher      EventPublisher
	txManager      TransactionManager
	maxSuggestions int
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shiftRepo ShiftRepository,
	workerRepo WorkerRepository,
	suggestionRepo SuggestionRepository,
	eventRepo EventRepository,
	availability AvailabilityIndex,
	guard WorkerGuard,
	publisher EventPublisher,
	txManager TransactionManager,
	maxSuggestions int,
	logger Logger,
) *UseCase {
	return &UseCase{
		shiftRepo:      shiftRepo,
		workerRepo:     workerRepo,
		suggestionRepo: suggestionRepo,
		eventRepo:      eventRepo,
		availability:   availability,
		guard:          guard,
		publisher:      publisher,
		txManager:      txManager,
		maxSuggestions: maxSuggestions,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Suggest подбирает до limit замен для отменённой смены и сохраняет их с accepted=false
// Ранжирование: резерв первым, затем надёжность по убыванию, затем ID по возрастанию.
// Нет кандидатов - пустой список, не ошибка
func (uc *UseCase) Suggest(ctx context.Context, shiftID int64, limit int) ([]*domain.RebookingSuggestion, error) {
	limit = effectiveLimit(limit, uc.maxSuggestions)
	uc.logger.Info("Suggest: shift id=%d, limit=%d", shiftID, limit)

	if shiftID <= 0 {
		uc.logger.Warn("Suggest: invalid shift id=%d", shiftID)
		return nil, fmt.Errorf("%w: shiftId must be positive", ErrInvalidInput)
	}

	shift, err := uc.getShift(ctx, "Suggest", shiftID)
	if err != nil {
		return nil, err
	}

	if shift.Status != domain.ShiftStatusCancelled {
		uc.logger.Warn("Suggest: shift id=%d is %s, not cancelled", shiftID, shift.Status)
		return nil, ErrShiftNotCancelled
	}

	candidates, err := uc.availability.FindAvailable(ctx, shift.Start, shift.End, true)
	if err != nil {
		uc.logger.Error("Suggest: availability error for shift id=%d: %v", shiftID, err)
		return nil, fmt.Errorf("%w: failed to find available workers: %v", ErrInternal, err)
	}

	ranked := rankCandidates(candidates, shift.WorkerID, limit)
	if len(ranked) == 0 {
		uc.logger.Info("Suggest: no candidates for shift id=%d", shiftID)
		return []*domain.RebookingSuggestion{}, nil
	}

	now := uc.timeProvider.Now()
	suggestions := make([]*domain.RebookingSuggestion, 0, len(ranked))

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		for i, w := range ranked {
			created, err := uc.suggestionRepo.Create(txCtx, &domain.RebookingSuggestion{
				ShiftID:     shiftID,
				WorkerID:    w.ID,
				Rank:        i + 1,
				SuggestedAt: now,
			})
			if err != nil {
				uc.logger.Error("Suggest: failed to save suggestion for worker id=%d: %v", w.ID, err)
				return fmt.Errorf("%w: failed to save suggestion: %v", ErrInternal, err)
			}
			suggestions = append(suggestions, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Suggest: %d suggestions for shift id=%d from %d available workers",
		len(suggestions), shiftID, len(candidates))
	return suggestions, nil
}

// Accept подтверждает замену: смена переназначается на кандидата и становится active
// Пересечения перепроверяются под блокировкой кандидата; при конфликте ничего не меняется
func (uc *UseCase) Accept(ctx context.Context, suggestionID int64) (*AcceptResponse, error) {
	uc.logger.Info("Accept: suggestion id=%d", suggestionID)

	// Кандидат нужен до транзакции: блокировка берётся по нему
	suggestion, err := uc.getSuggestion(ctx, suggestionID)
	if err != nil {
		return nil, err
	}
	if suggestion.Accepted {
		uc.logger.Warn("Accept: suggestion id=%d already accepted", suggestionID)
		return nil, ErrAlreadyAccepted
	}

	var resp AcceptResponse

	err = uc.guard.Do(ctx, suggestion.WorkerID, func(txCtx context.Context) error {
		sg, err := uc.getSuggestion(txCtx, suggestionID)
		if err != nil {
			return err
		}
		if sg.Accepted {
			uc.logger.Warn("Accept: suggestion id=%d already accepted", suggestionID)
			return ErrAlreadyAccepted
		}

		shift, err := uc.getShift(txCtx, "Accept", sg.ShiftID)
		if err != nil {
			return err
		}
		if shift.Status != domain.ShiftStatusCancelled {
			uc.logger.Warn("Accept: shift id=%d already rebooked, status=%s", shift.ID, shift.Status)
			return ErrShiftAlreadyRebooked
		}

		worker, err := uc.workerRepo.GetByID(txCtx, sg.WorkerID)
		if err != nil {
			if errors.Is(err, workerRepo.ErrWorkerNotFound) {
				uc.logger.Warn("Accept: worker id=%d no longer exists", sg.WorkerID)
				return ErrWorkerNoLongerAvailable
			}
			uc.logger.Error("Accept: failed to get worker id=%d: %v", sg.WorkerID, err)
			return fmt.Errorf("%w: failed to get worker: %v", ErrInternal, err)
		}
		if !worker.IsAssignable() {
			uc.logger.Warn("Accept: worker id=%d is not assignable (available=%t, blacklisted=%t)",
				worker.ID, worker.Available, worker.Blacklisted)
			return ErrWorkerNoLongerAvailable
		}

		if err := uc.availability.CheckWorkerFree(txCtx, worker.ID, shift.Start, shift.End, &shift.ID); err != nil {
			if errors.Is(err, availability.ErrWorkerBusy) {
				uc.logger.Warn("Accept: worker id=%d booked elsewhere: %v", worker.ID, err)
				return fmt.Errorf("%w: %v", ErrWorkerNoLongerAvailable, err)
			}
			uc.logger.Error("Accept: overlap check failed for worker id=%d: %v", worker.ID, err)
			return fmt.Errorf("%w: overlap check: %v", ErrInternal, err)
		}

		now := uc.timeProvider.Now()

		if err := uc.suggestionRepo.MarkAccepted(txCtx, sg.ID, now); err != nil {
			if errors.Is(err, suggestionRepo.ErrSuggestionNotFound) {
				return ErrAlreadyAccepted
			}
			uc.logger.Error("Accept: failed to mark suggestion id=%d accepted: %v", sg.ID, err)
			return fmt.Errorf("%w: failed to mark accepted: %v", ErrInternal, err)
		}
		sg.Accepted = true
		sg.AcceptedAt = &now

		previous := shift.WorkerID
		shift.WorkerID = &worker.ID
		shift.Status = domain.ShiftStatusActive
		if err := uc.shiftRepo.Update(txCtx, shift); err != nil {
			uc.logger.Error("Accept: failed to reassign shift id=%d: %v", shift.ID, err)
			return fmt.Errorf("%w: failed to reassign shift: %v", ErrInternal, err)
		}

		event := domain.NewShiftReassignedEvent(shift, previous, &sg.ID, now)
		if err := uc.eventRepo.Create(txCtx, event); err != nil {
			uc.logger.Error("Accept: failed to record event for shift id=%d: %v", shift.ID, err)
			return fmt.Errorf("%w: failed to record event: %v", ErrInternal, err)
		}

		resp = AcceptResponse{Shift: shift, Suggestion: sg, Event: event}
		return nil
	})
	if err != nil {
		if errors.Is(err, workerlock.ErrLock) {
			uc.logger.Error("Accept: %v", err)
			return nil, fmt.Errorf("%w: failed to lock worker: %v", ErrInternal, err)
		}
		return nil, err
	}

	if err := uc.publisher.Publish(ctx, resp.Event); err != nil {
		uc.logger.Error("Accept: failed to publish event id=%s: %v", resp.Event.ID, err)
	}

	uc.logger.Info("Accept: shift id=%d reassigned to worker id=%d", resp.Shift.ID, resp.Suggestion.WorkerID)
	return &resp, nil
}

// List возвращает предложения по фильтрам
func (uc *UseCase) List(ctx context.Context, req *ListRequest) ([]*domain.RebookingSuggestion, error) {
	uc.logger.Info("ListSuggestions: shift=%v, accepted=%v", req.ShiftID, req.Accepted)

	suggestions, err := uc.suggestionRepo.List(ctx, domain.SuggestionsFilter{
		ShiftID:  req.ShiftID,
		Accepted: req.Accepted,
	})
	if err != nil {
		uc.logger.Error("ListSuggestions: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to list suggestions: %v", ErrInternal, err)
	}

	return suggestions, nil
}

func (uc *UseCase) getShift(ctx context.Context, op string, id int64) (*domain.Shift, error) {
	shift, err := uc.shiftRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shiftRepo.ErrShiftNotFound) {
			uc.logger.Warn("%s: shift id=%d not found", op, id)
			return nil, ErrShiftNotFound
		}
		uc.logger.Error("%s: failed to get shift id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: failed to get shift: %v", ErrInternal, err)
	}
	return shift, nil
}

func (uc *UseCase) getSuggestion(ctx context.Context, id int64) (*domain.RebookingSuggestion, error) {
	sg, err := uc.suggestionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, suggestionRepo.ErrSuggestionNotFound) {
			uc.logger.Warn("Accept: suggestion id=%d not found", id)
			return nil, ErrSuggestionNotFound
		}
		uc.logger.Error("Accept: failed to get suggestion id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get suggestion: %v", ErrInternal, err)
	}
	return sg, nil
}
