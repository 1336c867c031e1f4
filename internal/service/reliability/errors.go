package reliability

import (
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

var (
	// ErrWorkerNotFound возвращается, когда работник не найден
	ErrWorkerNotFound = fmt.Errorf("%w: reliability: worker not found", domain.ErrNotFound)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("%w: reliability", domain.ErrInternal)
)
