package get_worker

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/service/workers"
)

const (
	msgInvalidWorkerID = "некорректный ID работника"
	msgNotFound        = "работник не найден"
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

// Handle GET /api/v1/workers/{workerId}
// Ответ включает историю черного списка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workerID, err := handlers.PathID(r, "workerId")
	if err != nil {
		h.logger.Warn("GET /workers/{id} - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	worker, err := h.service.GetByID(r.Context(), workerID)
	if err != nil {
		if errors.Is(err, workers.ErrWorkerNotFound) {
			h.logger.Warn("GET /workers/{id} - Worker not found: worker_id=%d", workerID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /workers/{id} - Failed to get worker: worker_id=%d, error=%v", workerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, worker)
}
