package respond_cancellation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/api/handlers/dto"
	cancellationWorkflow "github.com/m04kA/SMC-StaffingService/internal/usecase/cancellation_workflow"
)

const (
	msgInvalidCancellationID = "некорректный ID отмены"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInput          = "некорректный ответ"
	msgNotFound              = "отмена не найдена"
	msgInvalidTransition     = "ответить можно только на отмену в статусе pending"
)

// RespondRequest HTTP request model
type RespondRequest struct {
	Note *string `json:"note,omitempty"`
}

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

// Handle PUT /api/v1/cancellations/{cancellationId}/respond
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cancellationID, err := handlers.PathID(r, "cancellationId")
	if err != nil {
		h.logger.Warn("PUT /cancellations/{id}/respond - Invalid cancellation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCancellationID)
		return
	}

	var req RespondRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("PUT /cancellations/{id}/respond - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cancellation, err := h.useCase.Respond(r.Context(), &cancellationWorkflow.RespondRequest{
		CancellationID: cancellationID,
		Note:           req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancellationWorkflow.ErrCancellationNotFound):
			h.logger.Warn("PUT /cancellations/{id}/respond - Cancellation not found: cancellation_id=%d", cancellationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancellationWorkflow.ErrInvalidTransition):
			h.logger.Warn("PUT /cancellations/{id}/respond - Invalid transition: cancellation_id=%d", cancellationID)
			handlers.RespondConflict(w, "invalid_transition", msgInvalidTransition)

		case errors.Is(err, cancellationWorkflow.ErrInvalidInput):
			h.logger.Warn("PUT /cancellations/{id}/respond - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /cancellations/{id}/respond - Failed to respond: cancellation_id=%d, error=%v",
				cancellationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /cancellations/{id}/respond - Cancellation handled manually: cancellation_id=%d", cancellationID)
	handlers.RespondJSON(w, http.StatusOK, dto.FromDomainCancellation(cancellation))
}
