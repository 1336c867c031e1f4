package list_workers

import (
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service WorkerService
	logger  Logger
}

func NewHandler(service WorkerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/workers
// Query params: standby, available, blacklisted (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /workers - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /workers - Failed to list workers: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /workers - Workers retrieved successfully: count=%d", len(result.Workers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
