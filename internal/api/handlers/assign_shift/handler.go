package assign_shift

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
	msgInvalidInput       = "некорректный ID работника"
	msgShiftNotFound      = "смена не найдена"
	msgWorkerNotFound     = "работник не найден"
	msgShiftTerminal      = "смена завершена или отменена"
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

// Handle POST /api/v1/shifts/{shiftId}/assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shiftID, err := handlers.PathID(r, "shiftId")
	if err != nil {
		h.logger.Warn("POST /shifts/{id}/assign - Invalid shift ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShiftID)
		return
	}

	var req models.AssignShiftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shifts/{id}/assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Assign(r.Context(), shiftID, &req)
	if err != nil {
		switch {
		case errors.Is(err, shifts.ErrInvalidInput):
			h.logger.Warn("POST /shifts/{id}/assign - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, shifts.ErrShiftNotFound):
			h.logger.Warn("POST /shifts/{id}/assign - Shift not found: shift_id=%d", shiftID)
			handlers.RespondNotFound(w, msgShiftNotFound)

		case errors.Is(err, shifts.ErrWorkerNotFound):
			h.logger.Warn("POST /shifts/{id}/assign - Worker not found: worker_id=%d", req.WorkerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, shifts.ErrShiftTerminal):
			h.logger.Warn("POST /shifts/{id}/assign - Shift is terminal: shift_id=%d", shiftID)
			handlers.RespondConflict(w, "shift_terminal", msgShiftTerminal)

		case errors.Is(err, shifts.ErrWorkerBusy):
			h.logger.Warn("POST /shifts/{id}/assign - Worker busy: shift_id=%d, worker_id=%d", shiftID, req.WorkerID)
			handlers.RespondConflict(w, "worker_busy", msgWorkerBusy)

		case errors.Is(err, shifts.ErrWorkerNotAssignable):
			h.logger.Warn("POST /shifts/{id}/assign - Worker not assignable: worker_id=%d", req.WorkerID)
			handlers.RespondConflict(w, "worker_not_assignable", msgWorkerUnassignable)

		case errors.Is(err, shifts.ErrShiftChanged):
			h.logger.Warn("POST /shifts/{id}/assign - Shift changed concurrently: shift_id=%d", shiftID)
			handlers.RespondConflict(w, "shift_changed", msgShiftChanged)

		default:
			h.logger.Error("POST /shifts/{id}/assign - Failed to assign shift: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shifts/{id}/assign - Shift assigned successfully: shift_id=%d, worker_id=%d", shiftID, req.WorkerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
