package shifts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	shiftRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/shift"
	workerRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/worker"
	"github.com/m04kA/SMC-StaffingService/internal/service/availability"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts/models"
	"github.com/m04kA/SMC-StaffingService/internal/service/workerlock"
	workerModels "github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
)

// Service сервис для работы со сменами
// Все изменения, влияющие на пересечения смен работника, выполняются под WorkerGuard
type Service struct {
	shiftRepo    ShiftRepository
	workerRepo   WorkerRepository
	eventRepo    EventRepository
	availability AvailabilityIndex
	reliability  ReliabilityTracker
	guard        WorkerGuard
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса смен
func NewService(
	shiftRepo ShiftRepository,
	workerRepo WorkerRepository,
	eventRepo EventRepository,
	availability AvailabilityIndex,
	reliability ReliabilityTracker,
	guard WorkerGuard,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		shiftRepo:    shiftRepo,
		workerRepo:   workerRepo,
		eventRepo:    eventRepo,
		availability: availability,
		reliability:  reliability,
		guard:        guard,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает смену
// С работником - статус active, пересечения проверяются под блокировкой работника
// Без работника - статус standby
func (s *Service) Create(ctx context.Context, req *models.CreateShiftRequest) (*models.ShiftResponse, error) {
	s.logger.Info("Create: creating shift %s - %s, worker=%v",
		req.Start.Format(domain.TimeFormat), req.End.Format(domain.TimeFormat), req.WorkerID)

	shift, err := s.buildShift(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if shift.WorkerID == nil {
		created, err := s.shiftRepo.Create(ctx, shift)
		if err != nil {
			s.logger.Error("Create: repository error: %v", err)
			return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("Create: successfully created standby shift id=%d", created.ID)
		return models.FromDomainShift(created), nil
	}

	workerID := *shift.WorkerID
	var result *domain.Shift

	err = s.guard.Do(ctx, workerID, func(txCtx context.Context) error {
		if err := s.ensureAssignable(txCtx, "Create", workerID); err != nil {
			return err
		}

		if err := s.checkFree(txCtx, "Create", workerID, shift, nil); err != nil {
			return err
		}

		created, err := s.shiftRepo.Create(txCtx, shift)
		if err != nil {
			s.logger.Error("Create: repository error: %v", err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, s.lockError("Create", err)
	}

	s.logger.Info("Create: successfully created shift id=%d for worker=%d", result.ID, workerID)
	return models.FromDomainShift(result), nil
}

// GetByID получает смену по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ShiftResponse, error) {
	s.logger.Info("GetByID: fetching shift id=%d", id)

	shift, err := s.getShift(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainShift(shift), nil
}

// List возвращает смены по фильтрам: from - начало >= from, to - конец <= to
func (s *Service) List(ctx context.Context, req *models.ListShiftsRequest) (*models.ShiftListResponse, error) {
	s.logger.Info("List: status=%v, flag=%v, worker=%v", req.Status, req.Flag, req.WorkerID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		s.logger.Warn("List: to is before from")
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	shifts, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d shifts", len(shifts))
	return models.FromDomainShiftList(shifts), nil
}

// Update меняет статус, флаг и заметки смены
//
//	cancelled - только через отмену (ErrUseCancellation)
//	completed - только из active, учитывается исход для надёжности
//	active    - нужен работник, пересечения перепроверяются под блокировкой
//	standby   - из любого незавершённого статуса
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateShiftRequest) (*models.ShiftResponse, error) {
	s.logger.Info("Update: updating shift id=%d, status=%v, flag=%v", id, req.Status, req.Flag)

	if req.IsEmpty() {
		s.logger.Warn("Update: empty update for shift id=%d", id)
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var (
		nextStatus *domain.ShiftStatus
		nextFlag   *domain.ShiftFlag
	)

	if req.Status != nil {
		status, err := models.ToDomainShiftStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status=%s for shift id=%d", *req.Status, id)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if status == domain.ShiftStatusCancelled {
			s.logger.Warn("Update: shift id=%d cannot be cancelled via update", id)
			return nil, ErrUseCancellation
		}
		nextStatus = &status
	}

	if req.Flag != nil {
		flag, err := models.ToDomainShiftFlag(*req.Flag)
		if err != nil {
			s.logger.Warn("Update: invalid flag=%s for shift id=%d", *req.Flag, id)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		nextFlag = &flag
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		s.logger.Warn("Update: notes too long for shift id=%d", id)
		return nil, fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	// Работник нужен заранее: блокировка берётся до транзакции
	current, err := s.getShift(ctx, "Update", id)
	if err != nil {
		return nil, err
	}
	lockedWorkerID := current.WorkerID

	var result *domain.Shift

	apply := func(txCtx context.Context) error {
		shift, err := s.getShift(txCtx, "Update", id)
		if err != nil {
			return err
		}

		if !sameWorker(shift.WorkerID, lockedWorkerID) {
			s.logger.Warn("Update: worker of shift id=%d changed concurrently", id)
			return ErrShiftChanged
		}

		if shift.IsTerminal() {
			s.logger.Warn("Update: shift id=%d is %s", id, shift.Status)
			return ErrShiftTerminal
		}

		if nextStatus != nil && *nextStatus != shift.Status {
			if err := s.applyStatus(txCtx, shift, *nextStatus); err != nil {
				return err
			}
		}
		if nextFlag != nil {
			shift.Flag = *nextFlag
		}
		if req.Notes != nil {
			shift.Notes = trimOptional(req.Notes)
		}

		if err := s.shiftRepo.Update(txCtx, shift); err != nil {
			s.logger.Error("Update: failed to save shift id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		result = shift
		return nil
	}

	if lockedWorkerID != nil {
		err = s.guard.Do(ctx, *lockedWorkerID, apply)
	} else {
		err = s.txManager.Do(ctx, apply)
	}
	if err != nil {
		return nil, s.lockError("Update", err)
	}

	s.logger.Info("Update: successfully updated shift id=%d, status=%s", id, result.Status)
	return models.FromDomainShift(result), nil
}

// applyStatus проверяет переход и выполняет его побочные эффекты в транзакции
func (s *Service) applyStatus(ctx context.Context, shift *domain.Shift, next domain.ShiftStatus) error {
	switch next {
	case domain.ShiftStatusCompleted:
		if !shift.IsActive() || shift.WorkerID == nil {
			s.logger.Warn("Update: shift id=%d cannot be completed from %s", shift.ID, shift.Status)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, shift.Status, next)
		}
		if _, err := s.reliability.RecordOutcome(ctx, *shift.WorkerID, true); err != nil {
			s.logger.Error("Update: failed to record outcome for shift id=%d: %v", shift.ID, err)
			return fmt.Errorf("%w: Update - record outcome: %v", ErrInternal, err)
		}

	case domain.ShiftStatusActive:
		if shift.WorkerID == nil {
			s.logger.Warn("Update: shift id=%d has no worker to activate", shift.ID)
			return ErrNoWorkerAssigned
		}
		if err := s.ensureAssignable(ctx, "Update", *shift.WorkerID); err != nil {
			return err
		}
		if err := s.checkFree(ctx, "Update", *shift.WorkerID, shift, &shift.ID); err != nil {
			return err
		}
	}

	shift.Status = next
	return nil
}

// Assign назначает работника на незавершённую смену, статус становится active
// Если работник изменился, в outbox записывается shift_reassigned
func (s *Service) Assign(ctx context.Context, id int64, req *models.AssignShiftRequest) (*models.AssignShiftResponse, error) {
	s.logger.Info("Assign: assigning worker=%d to shift id=%d", req.WorkerID, id)

	if req.WorkerID <= 0 {
		s.logger.Warn("Assign: invalid worker id=%d", req.WorkerID)
		return nil, fmt.Errorf("%w: workerId must be positive", ErrInvalidInput)
	}

	var (
		result *domain.Shift
		event  *domain.Event
	)

	err := s.guard.Do(ctx, req.WorkerID, func(txCtx context.Context) error {
		shift, err := s.getShift(txCtx, "Assign", id)
		if err != nil {
			return err
		}

		if shift.IsTerminal() {
			s.logger.Warn("Assign: shift id=%d is %s", id, shift.Status)
			return ErrShiftTerminal
		}

		if err := s.ensureAssignable(txCtx, "Assign", req.WorkerID); err != nil {
			return err
		}

		if err := s.checkFree(txCtx, "Assign", req.WorkerID, shift, &shift.ID); err != nil {
			return err
		}

		previous := shift.WorkerID
		shift.WorkerID = &req.WorkerID
		shift.Status = domain.ShiftStatusActive

		if err := s.shiftRepo.Update(txCtx, shift); err != nil {
			s.logger.Error("Assign: failed to save shift id=%d: %v", id, err)
			return fmt.Errorf("%w: Assign - repository error: %v", ErrInternal, err)
		}

		if !sameWorker(previous, shift.WorkerID) {
			fact := domain.NewShiftReassignedEvent(shift, previous, nil, s.timeProvider.Now())
			if err := s.eventRepo.Create(txCtx, fact); err != nil {
				s.logger.Error("Assign: failed to record event for shift id=%d: %v", id, err)
				return fmt.Errorf("%w: Assign - record event: %v", ErrInternal, err)
			}
			event = fact
		}

		result = shift
		return nil
	})
	if err != nil {
		return nil, s.lockError("Assign", err)
	}

	if event != nil {
		s.publish(ctx, "Assign", event)
	}

	s.logger.Info("Assign: successfully assigned worker=%d to shift id=%d", req.WorkerID, id)
	return &models.AssignShiftResponse{
		Shift: *models.FromDomainShift(result),
		Event: models.FromDomainEvent(event),
	}, nil
}

// AvailableWorkers возвращает работников, свободных в окне
func (s *Service) AvailableWorkers(ctx context.Context, req *models.AvailableWorkersRequest) (*models.AvailableWorkersResponse, error) {
	s.logger.Info("AvailableWorkers: window %s - %s, includeBlacklisted=%t",
		req.Start.Format(domain.TimeFormat), req.End.Format(domain.TimeFormat), req.IncludeBlacklisted)

	workers, err := s.availability.FindAvailable(ctx, req.Start, req.End, !req.IncludeBlacklisted)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidWindow) {
			s.logger.Warn("AvailableWorkers: invalid window")
			return nil, ErrInvalidInterval
		}
		s.logger.Error("AvailableWorkers: availability error: %v", err)
		return nil, fmt.Errorf("%w: AvailableWorkers - availability error: %v", ErrInternal, err)
	}

	return &models.AvailableWorkersResponse{
		Start:   req.Start.UTC().Format(domain.TimeFormat),
		End:     req.End.UTC().Format(domain.TimeFormat),
		Workers: workerModels.FromDomainWorkerList(workers).Workers,
	}, nil
}

func (s *Service) buildShift(req *models.CreateShiftRequest) (*domain.Shift, error) {
	if !domain.ValidInterval(req.Start, req.End) {
		return nil, ErrInvalidInterval
	}

	flag := domain.ShiftFlagNormal
	if req.Flag != nil {
		parsed, err := models.ToDomainShiftFlag(*req.Flag)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		flag = parsed
	}

	if req.WorkerID != nil && *req.WorkerID <= 0 {
		return nil, fmt.Errorf("%w: workerId must be positive", ErrInvalidInput)
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.Outlet != nil && utf8.RuneCountInString(*req.Outlet) > domain.MaxOutletLength {
		return nil, fmt.Errorf("%w: outlet is longer than %d characters", ErrInvalidInput, domain.MaxOutletLength)
	}

	status := domain.ShiftStatusStandby
	if req.WorkerID != nil {
		status = domain.ShiftStatusActive
	}

	return &domain.Shift{
		Start:    req.Start.UTC(),
		End:      req.End.UTC(),
		Status:   status,
		Flag:     flag,
		WorkerID: req.WorkerID,
		Notes:    trimOptional(req.Notes),
		Outlet:   trimOptional(req.Outlet),
	}, nil
}

func (s *Service) getShift(ctx context.Context, op string, id int64) (*domain.Shift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shiftRepo.ErrShiftNotFound) {
			s.logger.Warn("%s: shift id=%d not found", op, id)
			return nil, ErrShiftNotFound
		}
		s.logger.Error("%s: failed to get shift id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get shift: %v", ErrInternal, op, err)
	}
	return shift, nil
}

func (s *Service) ensureAssignable(ctx context.Context, op string, workerID int64) error {
	worker, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, workerRepo.ErrWorkerNotFound) {
			s.logger.Warn("%s: worker id=%d not found", op, workerID)
			return ErrWorkerNotFound
		}
		s.logger.Error("%s: failed to get worker id=%d: %v", op, workerID, err)
		return fmt.Errorf("%w: %s - get worker: %v", ErrInternal, op, err)
	}

	if !worker.IsAssignable() {
		s.logger.Warn("%s: worker id=%d is not assignable (available=%t, blacklisted=%t)",
			op, workerID, worker.Available, worker.Blacklisted)
		return ErrWorkerNotAssignable
	}

	return nil
}

func (s *Service) checkFree(ctx context.Context, op string, workerID int64, shift *domain.Shift, excludeShiftID *int64) error {
	err := s.availability.CheckWorkerFree(ctx, workerID, shift.Start, shift.End, excludeShiftID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, availability.ErrWorkerBusy):
		return fmt.Errorf("%w: %v", ErrWorkerBusy, err)
	case errors.Is(err, availability.ErrInvalidWindow):
		return ErrInvalidInterval
	default:
		s.logger.Error("%s: overlap check failed for worker id=%d: %v", op, workerID, err)
		return fmt.Errorf("%w: %s - overlap check: %v", ErrInternal, op, err)
	}
}

// lockError логирует сбой блокировки, остальные ошибки возвращаются как есть
func (s *Service) lockError(op string, err error) error {
	if errors.Is(err, workerlock.ErrLock) {
		s.logger.Error("%s: %v", op, err)
		return fmt.Errorf("%w: %s - lock worker: %v", ErrInternal, op, err)
	}
	return err
}

func (s *Service) publish(ctx context.Context, op string, events ...*domain.Event) {
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("%s: failed to publish %d events: %v", op, len(events), err)
	}
}

func sameWorker(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
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
