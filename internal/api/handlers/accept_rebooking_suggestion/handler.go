package accept_rebooking_suggestion

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/usecase/rebooking"
)

const (
	msgInvalidSuggestionID     = "некорректный ID предложения"
	msgSuggestionNotFound      = "предложение не найдено"
	msgShiftNotFound           = "смена не найдена"
	msgAlreadyAccepted         = "предложение уже принято"
	msgShiftAlreadyRebooked    = "смена уже переназначена по другому предложению"
	msgWorkerNoLongerAvailable = "работник больше недоступен на это время"
)

type Handler struct {
	useCase RebookingUseCase
	logger  Logger
}

func NewHandler(useCase RebookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/rebooking-suggestions/{suggestionId}/accept
// При конфликте (409) клиент запрашивает свежие предложения сам, повторов нет
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	suggestionID, err := handlers.PathID(r, "suggestionId")
	if err != nil {
		h.logger.Warn("POST /rebooking-suggestions/{id}/accept - Invalid suggestion ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSuggestionID)
		return
	}

	result, err := h.useCase.Accept(r.Context(), suggestionID)
	if err != nil {
		switch {
		case errors.Is(err, rebooking.ErrSuggestionNotFound):
			h.logger.Warn("POST /rebooking-suggestions/{id}/accept - Suggestion not found: suggestion_id=%d", suggestionID)
			handlers.RespondNotFound(w, msgSuggestionNotFound)

		case errors.Is(err, rebooking.ErrShiftNotFound):
			h.logger.Warn("POST /rebooking-suggestions/{id}/accept - Shift not found: suggestion_id=%d", suggestionID)
			handlers.RespondNotFound(w, msgShiftNotFound)

		case errors.Is(err, rebooking.ErrAlreadyAccepted):
			h.logger.Warn("POST /rebooking-suggestions/{id}/accept - Already accepted: suggestion_id=%d", suggestionID)
			handlers.RespondConflict(w, "already_accepted", msgAlreadyAccepted)

		case errors.Is(err, rebooking.ErrShiftAlreadyRebooked):
			h.logger.Warn("POST /rebooking-suggestions/{id}/accept - Shift already rebooked: suggestion_id=%d", suggestionID)
			handlers.RespondConflict(w, "shift_already_rebooked", msgShiftAlreadyRebooked)

		case errors.Is(err, rebooking.ErrWorkerNoLongerAvailable):
			h.logger.Warn("POST /rebooking-suggestions/{id}/accept - Worker no longer available: suggestion_id=%d", suggestionID)
			handlers.RespondConflict(w, "worker_no_longer_available", msgWorkerNoLongerAvailable)

		default:
			h.logger.Error("POST /rebooking-suggestions/{id}/accept - Failed to accept: suggestion_id=%d, error=%v",
				suggestionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rebooking-suggestions/{id}/accept - Suggestion accepted: suggestion_id=%d, shift_id=%d, worker_id=%d",
		suggestionID, result.Shift.ID, result.Suggestion.WorkerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
