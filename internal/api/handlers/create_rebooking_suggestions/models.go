package create_rebooking_suggestions

import (
	"github.com/m04kA/SMC-StaffingService/internal/api/handlers/dto"
)

// SuggestRequest HTTP request model
type SuggestRequest struct {
	ShiftID int64 `json:"shiftId"`
	Limit   *int  `json:"limit,omitempty"` // ограничивается rebooking.max_suggestions
}

// SuggestResponse HTTP response model, порядок совпадает с рангом
type SuggestResponse struct {
	ShiftID     int64                    `json:"shiftId"`
	Suggestions []dto.SuggestionResponse `json:"suggestions"`
}
