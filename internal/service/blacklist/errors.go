package blacklist

import (
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

var (
	// ErrWorkerNotFound возвращается, когда работник не найден
	ErrWorkerNotFound = fmt.Errorf("%w: blacklist: worker not found", domain.ErrNotFound)

	// ErrInvalidReason возвращается при пустой или слишком длинной причине
	ErrInvalidReason = fmt.Errorf("%w: blacklist: invalid reason", domain.ErrInvalidInput)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("%w: blacklist", domain.ErrInternal)
)
