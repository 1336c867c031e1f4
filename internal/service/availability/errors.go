package availability

import (
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

var (
	// ErrInvalidWindow возвращается, когда windowStart >= windowEnd
	ErrInvalidWindow = fmt.Errorf("%w: availability: window start must be before window end", domain.ErrInvalidInput)

	// ErrWorkerBusy возвращается, когда у работника есть активная смена, пересекающая окно
	ErrWorkerBusy = fmt.Errorf("%w: availability: worker has an overlapping active shift", domain.ErrConflict)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("%w: availability", domain.ErrInternal)
)
