package list_cancellations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/api/handlers/dto"
	cancellationWorkflow "github.com/m04kA/SMC-StaffingService/internal/usecase/cancellation_workflow"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	useCase CancellationUseCase
	logger  Logger
}

func NewHandler(useCase CancellationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/cancellations
// Query params: status, workerId, shiftId, from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r)
	if err != nil {
		h.logger.Warn("GET /cancellations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	list, err := h.useCase.List(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, cancellationWorkflow.ErrInvalidInput) {
			h.logger.Warn("GET /cancellations - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /cancellations - Failed to list cancellations: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /cancellations - Cancellations retrieved successfully: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, &CancellationListResponse{
		Cancellations: dto.FromDomainCancellationList(list),
	})
}
