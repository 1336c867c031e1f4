package create_cancellation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	cancellationWorkflow "github.com/m04kA/SMC-StaffingService/internal/usecase/cancellation_workflow"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается ISO-8601"
	msgInvalidInput       = "некорректные данные отмены"
	msgWorkerNotAssigned  = "работник не назначен на эту смену"
	msgShiftNotFound      = "смена не найдена"
	msgWorkerNotFound     = "работник не найден"
	msgAlreadyCancelled   = "смена уже отменена"
	msgShiftCompleted     = "смена уже завершена"
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

// Handle POST /api/v1/cancellations
// В ответе также подобранные замены и рекомендация эскалации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateCancellationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cancellations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /cancellations - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Create(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, cancellationWorkflow.ErrWorkerNotAssigned):
			h.logger.Warn("POST /cancellations - Worker not assigned: shift_id=%d, worker_id=%d", req.ShiftID, req.WorkerID)
			handlers.RespondErrorCode(w, http.StatusBadRequest, "worker_not_assigned", msgWorkerNotAssigned)

		case errors.Is(err, cancellationWorkflow.ErrInvalidInput):
			h.logger.Warn("POST /cancellations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, cancellationWorkflow.ErrShiftNotFound):
			h.logger.Warn("POST /cancellations - Shift not found: shift_id=%d", req.ShiftID)
			handlers.RespondNotFound(w, msgShiftNotFound)

		case errors.Is(err, cancellationWorkflow.ErrWorkerNotFound):
			h.logger.Warn("POST /cancellations - Worker not found: worker_id=%d", req.WorkerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, cancellationWorkflow.ErrAlreadyCancelled):
			h.logger.Warn("POST /cancellations - Shift already cancelled: shift_id=%d", req.ShiftID)
			handlers.RespondConflict(w, "already_cancelled", msgAlreadyCancelled)

		case errors.Is(err, cancellationWorkflow.ErrShiftCompleted):
			h.logger.Warn("POST /cancellations - Shift completed: shift_id=%d", req.ShiftID)
			handlers.RespondConflict(w, "shift_completed", msgShiftCompleted)

		default:
			h.logger.Error("POST /cancellations - Failed to create cancellation: shift_id=%d, error=%v", req.ShiftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cancellations - Cancellation created successfully: cancellation_id=%d, status=%s, suggestions=%d",
		result.Cancellation.ID, result.Cancellation.Status, len(result.Suggestions))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
