package get_available_workers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts"
)

const (
	msgInvalidParams   = "некорректные параметры запроса, ожидаются start и end в ISO-8601"
	msgInvalidInterval = "start должен быть раньше end"
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

// Handle GET /api/v1/shifts/available-workers
// Query params: start, end (обязательно), includeBlacklisted (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /shifts/available-workers - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.AvailableWorkers(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, shifts.ErrInvalidInterval) {
			h.logger.Warn("GET /shifts/available-workers - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)
			return
		}
		h.logger.Error("GET /shifts/available-workers - Failed to find workers: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /shifts/available-workers - Workers retrieved successfully: count=%d", len(result.Workers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
