package rebooking

import (
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

var (
	// ErrShiftNotFound возвращается, когда смена не найдена
	ErrShiftNotFound = fmt.Errorf("%w: rebooking: shift not found", domain.ErrNotFound)

	// ErrSuggestionNotFound возвращается, когда предложение не найдено
	ErrSuggestionNotFound = fmt.Errorf("%w: rebooking: suggestion not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: rebooking", domain.ErrInvalidInput)

	// ErrShiftNotCancelled возвращается при подборе замены для неотменённой смены
	ErrShiftNotCancelled = fmt.Errorf("%w: rebooking: shift is not cancelled", domain.ErrConflict)

	// ErrAlreadyAccepted возвращается при повторном принятии предложения
	ErrAlreadyAccepted = fmt.Errorf("%w: rebooking: suggestion already accepted", domain.ErrConflict)

	// ErrShiftAlreadyRebooked возвращается, когда смена уже переназначена другим предложением
	ErrShiftAlreadyRebooked = fmt.Errorf("%w: rebooking: shift already rebooked", domain.ErrConflict)

	// ErrWorkerNoLongerAvailable возвращается, когда кандидат занят, отключен или в черном списке
	ErrWorkerNoLongerAvailable = fmt.Errorf("%w: rebooking: worker no longer available", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: rebooking", domain.ErrInternal)
)
