// Package dto общие HTTP-модели отмен и предложений замены,
// которые возвращают сразу несколько эндпоинтов
package dto

import (
	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// CancellationResponse отмена смены
type CancellationResponse struct {
	ID              int64   `json:"id"`
	ShiftID         int64   `json:"shiftId"`
	WorkerID        int64   `json:"workerId"`
	Time            string  `json:"time"`
	Reason          string  `json:"reason"`
	ReasonDetail    *string `json:"reasonDetail,omitempty"`
	Status          string  `json:"status"`
	ResponseNote    *string `json:"responseNote,omitempty"`
	AutoReplySent   bool    `json:"autoReplySent"`
	FallbackHandled bool    `json:"fallbackHandled"`
	Blacklisted     bool    `json:"blacklisted"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// SuggestionResponse предложение замены
type SuggestionResponse struct {
	ID          int64   `json:"id"`
	ShiftID     int64   `json:"shiftId"`
	WorkerID    int64   `json:"workerId"`
	Rank        int     `json:"rank"`
	SuggestedAt string  `json:"suggestedAt"`
	Accepted    bool    `json:"accepted"`
	AcceptedAt  *string `json:"acceptedAt,omitempty"`
}

func FromDomainCancellation(c *domain.Cancellation) *CancellationResponse {
	if c == nil {
		return nil
	}

	return &CancellationResponse{
		ID:              c.ID,
		ShiftID:         c.ShiftID,
		WorkerID:        c.WorkerID,
		Time:            c.Time.UTC().Format(domain.TimeFormat),
		Reason:          string(c.Reason),
		ReasonDetail:    c.ReasonDetail,
		Status:          string(c.Status),
		ResponseNote:    c.ResponseNote,
		AutoReplySent:   c.AutoReplySent,
		FallbackHandled: c.FallbackHandled,
		Blacklisted:     c.Blacklisted,
		CreatedAt:       c.CreatedAt.UTC().Format(domain.TimeFormat),
		UpdatedAt:       c.UpdatedAt.UTC().Format(domain.TimeFormat),
	}
}

func FromDomainCancellationList(list []*domain.Cancellation) []CancellationResponse {
	result := make([]CancellationResponse, 0, len(list))
	for _, c := range list {
		result = append(result, *FromDomainCancellation(c))
	}
	return result
}

func FromDomainSuggestion(s *domain.RebookingSuggestion) *SuggestionResponse {
	if s == nil {
		return nil
	}

	resp := &SuggestionResponse{
		ID:          s.ID,
		ShiftID:     s.ShiftID,
		WorkerID:    s.WorkerID,
		Rank:        s.Rank,
		SuggestedAt: s.SuggestedAt.UTC().Format(domain.TimeFormat),
		Accepted:    s.Accepted,
	}
	if s.AcceptedAt != nil {
		at := s.AcceptedAt.UTC().Format(domain.TimeFormat)
		resp.AcceptedAt = &at
	}
	return resp
}

// FromDomainSuggestionList сохраняет порядок ранжирования
func FromDomainSuggestionList(list []*domain.RebookingSuggestion) []SuggestionResponse {
	result := make([]SuggestionResponse, 0, len(list))
	for _, s := range list {
		result = append(result, *FromDomainSuggestion(s))
	}
	return result
}
