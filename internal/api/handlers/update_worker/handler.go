package update_worker

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/service/workers"
	"github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
)

const (
	msgInvalidWorkerID    = "некорректный ID работника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные работника"
	msgNotFound           = "работник не найден"
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

// Handle PUT /api/v1/workers/{workerId}
// Надёжность и флаг черного списка здесь не меняются: неизвестные поля тела отклоняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workerID, err := handlers.PathID(r, "workerId")
	if err != nil {
		h.logger.Warn("PUT /workers/{id} - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	var req models.UpdateWorkerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /workers/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	worker, err := h.service.Update(r.Context(), workerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, workers.ErrWorkerNotFound):
			h.logger.Warn("PUT /workers/{id} - Worker not found: worker_id=%d", workerID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, workers.ErrInvalidInput):
			h.logger.Warn("PUT /workers/{id} - Invalid input: worker_id=%d, error=%v", workerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /workers/{id} - Failed to update worker: worker_id=%d, error=%v", workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /workers/{id} - Worker updated successfully: worker_id=%d", worker.ID)
	handlers.RespondJSON(w, http.StatusOK, worker)
}
