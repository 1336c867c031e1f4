package create_shift

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается ISO-8601"
	msgInvalidInterval    = "начало смены должно быть раньше конца"
	msgInvalidInput       = "некорректные данные смены"
	msgWorkerNotFound     = "работник не найден"
	msgWorkerBusy         = "у работника есть пересекающаяся активная смена"
	msgWorkerUnassignable = "работник недоступен или в черном списке"
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

// Handle POST /api/v1/shifts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shifts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /shifts - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	shift, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, shifts.ErrInvalidInterval):
			h.logger.Warn("POST /shifts - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, shifts.ErrInvalidInput):
			h.logger.Warn("POST /shifts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, shifts.ErrWorkerNotFound):
			h.logger.Warn("POST /shifts - Worker not found: worker_id=%v", req.WorkerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, shifts.ErrWorkerBusy):
			h.logger.Warn("POST /shifts - Worker busy: worker_id=%d", *req.WorkerID)
			handlers.RespondConflict(w, "worker_busy", msgWorkerBusy)

		case errors.Is(err, shifts.ErrWorkerNotAssignable):
			h.logger.Warn("POST /shifts - Worker not assignable: worker_id=%d", *req.WorkerID)
			handlers.RespondConflict(w, "worker_not_assignable", msgWorkerUnassignable)

		default:
			h.logger.Error("POST /shifts - Failed to create shift: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shifts - Shift created successfully: shift_id=%d, status=%s", shift.ID, shift.Status)
	handlers.RespondJSON(w, http.StatusCreated, shift)
}
