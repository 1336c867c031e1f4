package get_shift

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts"
)

const (
	msgInvalidShiftID = "некорректный ID смены"
	msgNotFound       = "смена не найдена"
)

type Handler struct {
	service ShiftService
	logger  Logger
}

func NewHandler(service ShiftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shifts/{shiftId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shiftID, err := handlers.PathID(r, "shiftId")
	if err != nil {
		h.logger.Warn("GET /shifts/{id} - Invalid shift ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShiftID)
		return
	}

	shift, err := h.service.GetByID(r.Context(), shiftID)
	if err != nil {
		if errors.Is(err, shifts.ErrShiftNotFound) {
			h.logger.Warn("GET /shifts/{id} - Shift not found: shift_id=%d", shiftID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /shifts/{id} - Failed to get shift: shift_id=%d, error=%v", shiftID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, shift)
}
