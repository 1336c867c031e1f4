package list_shifts

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/shifts
// Query params: status, flag, workerId, from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /shifts - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, shifts.ErrInvalidInput) {
			h.logger.Warn("GET /shifts - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /shifts - Failed to list shifts: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /shifts - Shifts retrieved successfully: count=%d", len(result.Shifts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
