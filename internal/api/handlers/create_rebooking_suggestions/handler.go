package create_rebooking_suggestions

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/api/handlers/dto"
	"github.com/m04kA/SMC-StaffingService/internal/usecase/rebooking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры подбора"
	msgShiftNotFound      = "смена не найдена"
	msgShiftNotCancelled  = "замену можно подобрать только для отменённой смены"
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

// Handle POST /api/v1/rebooking-suggestions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rebooking-suggestions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	limit := 0
	if req.Limit != nil {
		if *req.Limit <= 0 {
			h.logger.Warn("POST /rebooking-suggestions - Invalid limit: %d", *req.Limit)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		limit = *req.Limit
	}

	suggestions, err := h.useCase.Suggest(r.Context(), req.ShiftID, limit)
	if err != nil {
		switch {
		case errors.Is(err, rebooking.ErrInvalidInput):
			h.logger.Warn("POST /rebooking-suggestions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rebooking.ErrShiftNotFound):
			h.logger.Warn("POST /rebooking-suggestions - Shift not found: shift_id=%d", req.ShiftID)
			handlers.RespondNotFound(w, msgShiftNotFound)

		case errors.Is(err, rebooking.ErrShiftNotCancelled):
			h.logger.Warn("POST /rebooking-suggestions - Shift not cancelled: shift_id=%d", req.ShiftID)
			handlers.RespondConflict(w, "shift_not_cancelled", msgShiftNotCancelled)

		default:
			h.logger.Error("POST /rebooking-suggestions - Failed to suggest: shift_id=%d, error=%v", req.ShiftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rebooking-suggestions - Suggestions created: shift_id=%d, count=%d", req.ShiftID, len(suggestions))
	handlers.RespondJSON(w, http.StatusCreated, &SuggestResponse{
		ShiftID:     req.ShiftID,
		Suggestions: dto.FromDomainSuggestionList(suggestions),
	})
}
