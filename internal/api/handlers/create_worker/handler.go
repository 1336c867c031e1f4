package create_worker

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/service/workers"
	"github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные работника"
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

// Handle POST /api/v1/workers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWorkerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /workers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	worker, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, workers.ErrInvalidInput) {
			h.logger.Warn("POST /workers - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /workers - Failed to create worker: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /workers - Worker created successfully: worker_id=%d", worker.ID)
	handlers.RespondJSON(w, http.StatusCreated, worker)
}
