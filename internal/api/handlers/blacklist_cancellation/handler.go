package blacklist_cancellation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	cancellationWorkflow "github.com/m04kA/SMC-StaffingService/internal/usecase/cancellation_workflow"
)

const (
	msgInvalidCancellationID = "некорректный ID отмены"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInput          = "некорректная причина"
	msgNotFound              = "отмена не найдена"
	msgWorkerNotFound        = "работник не найден"
	msgAlreadyBlacklisted    = "отмена уже эскалирована"
	msgInvalidTransition     = "недопустимая смена статуса отмены"
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

// Handle PUT /api/v1/cancellations/{cancellationId}/blacklist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cancellationID, err := handlers.PathID(r, "cancellationId")
	if err != nil {
		h.logger.Warn("PUT /cancellations/{id}/blacklist - Invalid cancellation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCancellationID)
		return
	}

	var req BlacklistRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("PUT /cancellations/{id}/blacklist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Escalate(r.Context(), &cancellationWorkflow.EscalateRequest{
		CancellationID: cancellationID,
		Reason:         req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancellationWorkflow.ErrCancellationNotFound):
			h.logger.Warn("PUT /cancellations/{id}/blacklist - Cancellation not found: cancellation_id=%d", cancellationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancellationWorkflow.ErrWorkerNotFound):
			h.logger.Warn("PUT /cancellations/{id}/blacklist - Worker not found: cancellation_id=%d", cancellationID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, cancellationWorkflow.ErrAlreadyBlacklisted):
			h.logger.Warn("PUT /cancellations/{id}/blacklist - Already blacklisted: cancellation_id=%d", cancellationID)
			handlers.RespondConflict(w, "already_blacklisted", msgAlreadyBlacklisted)

		case errors.Is(err, cancellationWorkflow.ErrInvalidTransition):
			h.logger.Warn("PUT /cancellations/{id}/blacklist - Invalid transition: cancellation_id=%d", cancellationID)
			handlers.RespondConflict(w, "invalid_transition", msgInvalidTransition)

		case errors.Is(err, cancellationWorkflow.ErrInvalidInput):
			h.logger.Warn("PUT /cancellations/{id}/blacklist - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /cancellations/{id}/blacklist - Failed to escalate: cancellation_id=%d, error=%v",
				cancellationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /cancellations/{id}/blacklist - Worker blacklisted: cancellation_id=%d, worker_id=%d",
		cancellationID, result.Cancellation.WorkerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
