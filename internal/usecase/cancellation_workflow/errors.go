package cancellation_workflow

import (
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

var (
	// ErrShiftNotFound возвращается, когда смена не найдена
	ErrShiftNotFound = fmt.Errorf("%w: cancellation_workflow: shift not found", domain.ErrNotFound)

	// ErrWorkerNotFound возвращается, когда работник не найден
	ErrWorkerNotFound = fmt.Errorf("%w: cancellation_workflow: worker not found", domain.ErrNotFound)

	// ErrCancellationNotFound возвращается, когда отмена не найдена
	ErrCancellationNotFound = fmt.Errorf("%w: cancellation_workflow: cancellation not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: cancellation_workflow", domain.ErrInvalidInput)

	// ErrWorkerNotAssigned возвращается, когда отмену подаёт не назначенный на смену работник
	ErrWorkerNotAssigned = fmt.Errorf("%w: cancellation_workflow: worker is not assigned to the shift", domain.ErrInvalidInput)

	// ErrAlreadyCancelled возвращается, когда смена уже отменена
	ErrAlreadyCancelled = fmt.Errorf("%w: cancellation_workflow: shift already cancelled", domain.ErrConflict)

	// ErrShiftCompleted возвращается при отмене завершённой смены
	ErrShiftCompleted = fmt.Errorf("%w: cancellation_workflow: shift already completed", domain.ErrConflict)

	// ErrAlreadyBlacklisted возвращается при повторной эскалации
	ErrAlreadyBlacklisted = fmt.Errorf("%w: cancellation_workflow: cancellation already escalated", domain.ErrConflict)

	// ErrInvalidTransition возвращается при недопустимом переходе статуса отмены
	ErrInvalidTransition = fmt.Errorf("%w: cancellation_workflow: invalid status transition", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: cancellation_workflow", domain.ErrInternal)
)
