package models

import (
	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// Request модели

// CreateWorkerRequest запрос на создание работника
type CreateWorkerRequest struct {
	Name      string  `json:"name"`
	Role      *string `json:"role,omitempty"`
	Location  *string `json:"location,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Available *bool   `json:"available,omitempty"` // по умолчанию true
	Standby   bool    `json:"standby"`
}

// UpdateWorkerRequest частичное обновление анкеты
// Надёжность и черный список через этот запрос не меняются
type UpdateWorkerRequest struct {
	Name      *string `json:"name,omitempty"`
	Role      *string `json:"role,omitempty"`
	Location  *string `json:"location,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Available *bool   `json:"available,omitempty"`
	Standby   *bool   `json:"standby,omitempty"`
}

// IsEmpty возвращает true, если ни одно поле не задано
func (r *UpdateWorkerRequest) IsEmpty() bool {
	return r.Name == nil && r.Role == nil && r.Location == nil &&
		r.Phone == nil && r.Available == nil && r.Standby == nil
}

// ListWorkersRequest фильтры списка работников
type ListWorkersRequest struct {
	Standby     *bool
	Available   *bool
	Blacklisted *bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListWorkersRequest) ToDomainFilter() domain.WorkersFilter {
	return domain.WorkersFilter{
		Standby:     r.Standby,
		Available:   r.Available,
		Blacklisted: r.Blacklisted,
	}
}

// Response модели

// WorkerResponse ответ с данными работника
type WorkerResponse struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Role                 *string `json:"role,omitempty"`
	Location             *string `json:"location,omitempty"`
	Email                *string `json:"email,omitempty"`
	Phone                *string `json:"phone,omitempty"`
	Available            bool    `json:"available"`
	Standby              bool    `json:"standby"`
	Reliability          float64 `json:"reliability"`
	TotalAssignments     int     `json:"totalAssignments"`
	CompletedAssignments int     `json:"completedAssignments"`
	Blacklisted          bool    `json:"blacklisted"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

// BlacklistEntryResponse запись журнала черного списка
type BlacklistEntryResponse struct {
	ID             int64  `json:"id"`
	WorkerID       int64  `json:"workerId"`
	Reason         string `json:"reason"`
	CancellationID *int64 `json:"cancellationId,omitempty"`
	BlacklistedAt  string `json:"blacklistedAt"`
}

// WorkerDetailsResponse работник вместе с историей черного списка
type WorkerDetailsResponse struct {
	WorkerResponse
	BlacklistHistory []BlacklistEntryResponse `json:"blacklistHistory"`
}

// WorkerListResponse ответ со списком работников
type WorkerListResponse struct {
	Workers []WorkerResponse `json:"workers"`
}

// Методы конвертации

// FromDomainWorker конвертирует domain модель в DTO
func FromDomainWorker(w *domain.Worker) *WorkerResponse {
	if w == nil {
		return nil
	}

	return &WorkerResponse{
		ID:                   w.ID,
		Name:                 w.Name,
		Role:                 w.Role,
		Location:             w.Location,
		Email:                w.Email,
		Phone:                w.Phone,
		Available:            w.Available,
		Standby:              w.Standby,
		Reliability:          w.Reliability,
		TotalAssignments:     w.TotalAssignments,
		CompletedAssignments: w.CompletedAssignments,
		Blacklisted:          w.Blacklisted,
		CreatedAt:            w.CreatedAt.UTC().Format(domain.TimeFormat),
		UpdatedAt:            w.UpdatedAt.UTC().Format(domain.TimeFormat),
	}
}

// FromDomainWorkerList конвертирует список domain моделей в DTO
func FromDomainWorkerList(workers []*domain.Worker) *WorkerListResponse {
	resp := &WorkerListResponse{
		Workers: make([]WorkerResponse, 0, len(workers)),
	}
	for _, w := range workers {
		resp.Workers = append(resp.Workers, *FromDomainWorker(w))
	}
	return resp
}

// FromDomainBlacklistEntry конвертирует запись журнала в DTO
func FromDomainBlacklistEntry(e *domain.BlacklistEntry) *BlacklistEntryResponse {
	if e == nil {
		return nil
	}

	return &BlacklistEntryResponse{
		ID:             e.ID,
		WorkerID:       e.WorkerID,
		Reason:         e.Reason,
		CancellationID: e.CancellationID,
		BlacklistedAt:  e.BlacklistedAt.UTC().Format(domain.TimeFormat),
	}
}

// FromDomainWorkerDetails собирает работника и его историю черного списка
func FromDomainWorkerDetails(w *domain.Worker, history []*domain.BlacklistEntry) *WorkerDetailsResponse {
	resp := &WorkerDetailsResponse{
		WorkerResponse:   *FromDomainWorker(w),
		BlacklistHistory: make([]BlacklistEntryResponse, 0, len(history)),
	}
	for _, e := range history {
		resp.BlacklistHistory = append(resp.BlacklistHistory, *FromDomainBlacklistEntry(e))
	}
	return resp
}
