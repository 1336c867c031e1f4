package update_shift

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts/models"
)

const (
	msgInvalidShiftID     = "некорректный ID смены"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "смена не найдена"
	msgInvalidInput       = "некорректные данные смены"
	msgUseCancellation    = "смена отменяется через POST /cancellations"
	msgNoWorkerAssigned   = "у смены нет назначенного работника"
	msgShiftTerminal      = "смена завершена или отменена"
	msgInvalidTransition  = "недопустимая смена статуса"
	msgWorkerBusy         = "у работника есть пересекающаяся активная смена"
	msgWorkerUnassignable = "работник недоступен или в черном списке"
	msgShiftChanged       = "смена изменена параллельным запросом"
)

type Handler struct {
	service ShiftService
	logger  Logger
}

func NewHandler(service ShiftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/shifts/{shiftId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shiftID, err := handlers.PathID(r, "shiftId")
	if err != nil {
		h.logger.Warn("PUT /shifts/{id} - Invalid shift ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShiftID)
		return
	}

	var req models.UpdateShiftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /shifts/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	shift, err := h.service.Update(r.Context(), shiftID, &req)
	if err != nil {
		switch {
		case errors.Is(err, shifts.ErrShiftNotFound):
			h.logger.Warn("PUT /shifts/{id} - Shift not found: shift_id=%d", shiftID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, shifts.ErrUseCancellation):
			h.logger.Warn("PUT /shifts/{id} - Cancel via update rejected: shift_id=%d", shiftID)
			handlers.RespondBadRequest(w, msgUseCancellation)

		case errors.Is(err, shifts.ErrNoWorkerAssigned):
			h.logger.Warn("PUT /shifts/{id} - No worker assigned: shift_id=%d", shiftID)
			handlers.RespondBadRequest(w, msgNoWorkerAssigned)

		case errors.Is(err, shifts.ErrInvalidInput):
			h.logger.Warn("PUT /shifts/{id} - Invalid input: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, shifts.ErrShiftTerminal):
			h.logger.Warn("PUT /shifts/{id} - Shift is terminal: shift_id=%d", shiftID)
			handlers.RespondConflict(w, "shift_terminal", msgShiftTerminal)

		case errors.Is(err, shifts.ErrInvalidTransition):
			h.logger.Warn("PUT /shifts/{id} - Invalid transition: shift_id=%d", shiftID)
			handlers.RespondConflict(w, "invalid_transition", msgInvalidTransition)

		case errors.Is(err, shifts.ErrWorkerBusy):
			h.logger.Warn("PUT /shifts/{id} - Worker busy: shift_id=%d", shiftID)
			handlers.RespondConflict(w, "worker_busy", msgWorkerBusy)

		case errors.Is(err, shifts.ErrWorkerNotAssignable):
			h.logger.Warn("PUT /shifts/{id} - Worker not assignable: shift_id=%d", shiftID)
			handlers.RespondConflict(w, "worker_not_assignable", msgWorkerUnassignable)

		case errors.Is(err, shifts.ErrShiftChanged):
			h.logger.Warn("PUT /shifts/{id} - Shift changed concurrently: shift_id=%d", shiftID)
			handlers.RespondConflict(w, "shift_changed", msgShiftChanged)

		default:
			h.logger.Error("PUT /shifts/{id} - Failed to update shift: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /shifts/{id} - Shift updated successfully: shift_id=%d, status=%s", shift.ID, shift.Status)
	handlers.RespondJSON(w, http.StatusOK, shift)
}
