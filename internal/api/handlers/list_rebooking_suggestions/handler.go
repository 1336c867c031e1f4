package list_rebooking_suggestions

import (
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/api/handlers/dto"
	"github.com/m04kA/SMC-StaffingService/internal/usecase/rebooking"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

// SuggestionListResponse HTTP response model
type SuggestionListResponse struct {
	Suggestions []dto.SuggestionResponse `json:"suggestions"`
}

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

// Handle GET /api/v1/rebooking-suggestions
// Query params: shiftId, accepted (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shiftID, err := handlers.QueryInt64(r, "shiftId")
	if err != nil {
		h.logger.Warn("GET /rebooking-suggestions - Invalid shiftId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	accepted, err := handlers.QueryBool(r, "accepted")
	if err != nil {
		h.logger.Warn("GET /rebooking-suggestions - Invalid accepted: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	list, err := h.useCase.List(r.Context(), &rebooking.ListRequest{ShiftID: shiftID, Accepted: accepted})
	if err != nil {
		h.logger.Error("GET /rebooking-suggestions - Failed to list suggestions: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rebooking-suggestions - Suggestions retrieved successfully: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, &SuggestionListResponse{
		Suggestions: dto.FromDomainSuggestionList(list),
	})
}
