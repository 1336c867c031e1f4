package shifts

import (
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

var (
	// ErrShiftNotFound возвращается, когда смена не найдена
	ErrShiftNotFound = fmt.Errorf("%w: shifts: shift not found", domain.ErrNotFound)

	// ErrWorkerNotFound возвращается, когда работник не найден
	ErrWorkerNotFound = fmt.Errorf("%w: shifts: worker not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: shifts", domain.ErrInvalidInput)

	// ErrInvalidInterval возвращается, когда start >= end или смена слишком длинная
	ErrInvalidInterval = fmt.Errorf("%w: shifts: invalid shift interval", domain.ErrInvalidInput)

	// ErrUseCancellation возвращается при попытке отменить смену через обновление
	ErrUseCancellation = fmt.Errorf("%w: shifts: shifts are cancelled via cancellations", domain.ErrInvalidInput)

	// ErrNoWorkerAssigned возвращается при активации смены без работника
	ErrNoWorkerAssigned = fmt.Errorf("%w: shifts: shift has no assigned worker", domain.ErrInvalidInput)

	// ErrWorkerBusy возвращается, когда у работника есть пересекающаяся активная смена
	ErrWorkerBusy = fmt.Errorf("%w: shifts: worker has an overlapping active shift", domain.ErrConflict)

	// ErrWorkerNotAssignable возвращается, когда работник отключен или в черном списке
	ErrWorkerNotAssignable = fmt.Errorf("%w: shifts: worker is unavailable or blacklisted", domain.ErrConflict)

	// ErrShiftTerminal возвращается при изменении завершённой или отменённой смены
	ErrShiftTerminal = fmt.Errorf("%w: shifts: shift is completed or cancelled", domain.ErrConflict)

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = fmt.Errorf("%w: shifts: invalid status transition", domain.ErrConflict)

	// ErrShiftChanged возвращается, если работник смены сменился во время обновления
	ErrShiftChanged = fmt.Errorf("%w: shifts: shift was modified concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: shifts", domain.ErrInternal)
)
