package cancellation_workflow

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// validateCreateRequest валидирует входные данные запроса
func validateCreateRequest(req *CreateRequest) error {
	if req.ShiftID <= 0 {
		return fmt.Errorf("%w: shiftId must be positive", ErrInvalidInput)
	}

	if req.WorkerID <= 0 {
		return fmt.Errorf("%w: workerId must be positive", ErrInvalidInput)
	}

	if !req.Reason.IsValid() {
		return fmt.Errorf("%w: unknown reason %q", ErrInvalidInput, string(req.Reason))
	}

	if req.ReasonDetail != nil && utf8.RuneCountInString(*req.ReasonDetail) > domain.MaxReasonDetailLength {
		return fmt.Errorf("%w: reasonDetail is longer than %d characters", ErrInvalidInput, domain.MaxReasonDetailLength)
	}

	if req.Time != nil && req.Time.IsZero() {
		return fmt.Errorf("%w: time must not be zero", ErrInvalidInput)
	}

	return nil
}

// validateListRequest проверяет диапазон времени отмены
func validateListRequest(req *ListRequest) error {
	if req.Status != nil && !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, string(*req.Status))
	}

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	return nil
}

// validateNote проверяет длину ответа оператора
func validateNote(note *string) error {
	if note != nil && utf8.RuneCountInString(*note) > domain.MaxNotesLength {
		return fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// initialStatus определяет статус новой отмены по причине
func initialStatus(reason domain.CancellationReason) domain.CancellationStatus {
	if reason.AutoReplies() {
		return domain.CancellationAutoReplied
	}
	return domain.CancellationPending
}
