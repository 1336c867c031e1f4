package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/ptr"
)

// Index отвечает на вопрос, какие работники свободны в заданном окне
// Чтение без блокировок: изменения расписания перепроверяют пересечения сами через CheckWorkerFree
type Index struct {
	workerRepo WorkerRepository
	shiftRepo  ShiftRepository
	logger     Logger
}

// NewIndex создает новый экземпляр индекса доступности
func NewIndex(workerRepo WorkerRepository, shiftRepo ShiftRepository, logger Logger) *Index {
	return &Index{
		workerRepo: workerRepo,
		shiftRepo:  shiftRepo,
		logger:     logger,
	}
}

// FindAvailable возвращает работников с available=true (и blacklisted=false, если excludeBlacklisted),
// у которых нет активной смены, пересекающей [windowStart, windowEnd)
// Порядок результата - по ID, ранжирование выполняет вызывающая сторона
func (i *Index) FindAvailable(ctx context.Context, windowStart, windowEnd time.Time, excludeBlacklisted bool) ([]*domain.Worker, error) {
	if !domain.ValidInterval(windowStart, windowEnd) {
		i.logger.Warn("FindAvailable: invalid window %s - %s", windowStart.Format(domain.TimeFormat), windowEnd.Format(domain.TimeFormat))
		return nil, ErrInvalidWindow
	}

	filter := domain.WorkersFilter{Available: ptr.Ptr(true)}
	if excludeBlacklisted {
		filter.Blacklisted = ptr.Ptr(false)
	}

	candidates, err := i.workerRepo.List(ctx, filter)
	if err != nil {
		i.logger.Error("FindAvailable: failed to list workers: %v", err)
		return nil, fmt.Errorf("%w: FindAvailable - list workers: %v", ErrInternal, err)
	}

	busyShifts, err := i.shiftRepo.ListActiveOverlapping(ctx, domain.ActiveOverlapFilter{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
	})
	if err != nil {
		i.logger.Error("FindAvailable: failed to list overlapping shifts: %v", err)
		return nil, fmt.Errorf("%w: FindAvailable - list shifts: %v", ErrInternal, err)
	}

	busy := make(map[int64]struct{}, len(busyShifts))
	for _, sh := range busyShifts {
		if sh.WorkerID != nil {
			busy[*sh.WorkerID] = struct{}{}
		}
	}

	available := make([]*domain.Worker, 0, len(candidates))
	for _, w := range candidates {
		if _, isBusy := busy[w.ID]; isBusy {
			continue
		}
		// Повторная проверка на случай хранилища без фильтрации по флагам
		if !w.Available || (excludeBlacklisted && w.Blacklisted) {
			continue
		}
		available = append(available, w)
	}

	i.logger.Info("FindAvailable: %d of %d workers free in %s - %s",
		len(available), len(candidates), windowStart.Format(domain.TimeFormat), windowEnd.Format(domain.TimeFormat))

	return available, nil
}

// CheckWorkerFree проверяет, что у работника нет активной смены, пересекающей [start, end)
// excludeShiftID исключает саму переназначаемую смену
// Вызывается внутри транзакции под блокировкой работника
func (i *Index) CheckWorkerFree(ctx context.Context, workerID int64, start, end time.Time, excludeShiftID *int64) error {
	if !domain.ValidInterval(start, end) {
		return ErrInvalidWindow
	}

	overlapping, err := i.shiftRepo.ListActiveOverlapping(ctx, domain.ActiveOverlapFilter{
		WindowStart:    start,
		WindowEnd:      end,
		WorkerID:       &workerID,
		ExcludeShiftID: excludeShiftID,
	})
	if err != nil {
		i.logger.Error("CheckWorkerFree: failed to list shifts for worker=%d: %v", workerID, err)
		return fmt.Errorf("%w: CheckWorkerFree - list shifts: %v", ErrInternal, err)
	}

	if len(overlapping) > 0 {
		i.logger.Warn("CheckWorkerFree: worker=%d busy, conflicting shift id=%d", workerID, overlapping[0].ID)
		return fmt.Errorf("%w: conflicting shift id=%d", ErrWorkerBusy, overlapping[0].ID)
	}

	return nil
}
