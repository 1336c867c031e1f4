package workers

import (
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

var (
	// ErrWorkerNotFound возвращается, когда работник не найден
	ErrWorkerNotFound = fmt.Errorf("%w: workers: worker not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: workers", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: workers", domain.ErrInternal)
)
