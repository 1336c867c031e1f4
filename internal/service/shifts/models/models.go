package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	workerModels "github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid shift status")

	// ErrInvalidFlag возвращается при некорректном флаге
	ErrInvalidFlag = errors.New("invalid shift flag")
)

// Request модели

// CreateShiftRequest запрос на создание смены
type CreateShiftRequest struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	WorkerID *int64    `json:"workerId,omitempty"` // без работника смена создаётся в статусе standby
	Flag     *string   `json:"flag,omitempty"`     // по умолчанию normal
	Notes    *string   `json:"notes,omitempty"`
	Outlet   *string   `json:"outlet,omitempty"`
}

// UpdateShiftRequest частичное обновление смены
type UpdateShiftRequest struct {
	Status *string `json:"status,omitempty"`
	Flag   *string `json:"flag,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// IsEmpty возвращает true, если ни одно поле не задано
func (r *UpdateShiftRequest) IsEmpty() bool {
	return r.Status == nil && r.Flag == nil && r.Notes == nil
}

// AssignShiftRequest запрос на назначение работника
type AssignShiftRequest struct {
	WorkerID int64 `json:"workerId"`
}

// ListShiftsRequest фильтры списка смен
type ListShiftsRequest struct {
	Status   *string
	Flag     *string
	WorkerID *int64
	From     *time.Time
	To       *time.Time
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListShiftsRequest) ToDomainFilter() (domain.ShiftsFilter, error) {
	filter := domain.ShiftsFilter{
		WorkerID: r.WorkerID,
		From:     r.From,
		To:       r.To,
	}

	if r.Status != nil {
		status, err := ToDomainShiftStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.Flag != nil {
		flag, err := ToDomainShiftFlag(*r.Flag)
		if err != nil {
			return filter, err
		}
		filter.Flag = &flag
	}

	return filter, nil
}

// AvailableWorkersRequest окно поиска свободных работников
type AvailableWorkersRequest struct {
	Start              time.Time
	End                time.Time
	IncludeBlacklisted bool
}

// Response модели

// ShiftResponse ответ с данными смены
type ShiftResponse struct {
	ID        int64   `json:"id"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Status    string  `json:"status"`
	Flag      string  `json:"flag"`
	WorkerID  *int64  `json:"workerId,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Outlet    *string `json:"outlet,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// ShiftListResponse ответ со списком смен
type ShiftListResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
}

// EventResponse факт, записанный в outbox
type EventResponse struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	AggregateID int64                  `json:"aggregateId"`
	Payload     map[string]interface{} `json:"payload"`
	OccurredAt  string                 `json:"occurredAt"`
}

// AssignShiftResponse результат назначения
// Event заполнен, только если работник смены изменился
type AssignShiftResponse struct {
	Shift ShiftResponse  `json:"shift"`
	Event *EventResponse `json:"event,omitempty"`
}

// AvailableWorkersResponse свободные работники в окне
type AvailableWorkersResponse struct {
	Start   string                        `json:"start"`
	End     string                        `json:"end"`
	Workers []workerModels.WorkerResponse `json:"workers"`
}

// Методы конвертации

// ToDomainShiftStatus конвертирует строку в статус смены
func ToDomainShiftStatus(s string) (domain.ShiftStatus, error) {
	status := domain.ShiftStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ToDomainShiftFlag конвертирует строку во флаг смены
func ToDomainShiftFlag(s string) (domain.ShiftFlag, error) {
	flag := domain.ShiftFlag(s)
	if !flag.IsValid() {
		return "", ErrInvalidFlag
	}
	return flag, nil
}

// FromDomainShift конвертирует domain модель в DTO
func FromDomainShift(s *domain.Shift) *ShiftResponse {
	if s == nil {
		return nil
	}

	return &ShiftResponse{
		ID:        s.ID,
		Start:     s.Start.UTC().Format(domain.TimeFormat),
		End:       s.End.UTC().Format(domain.TimeFormat),
		Status:    string(s.Status),
		Flag:      string(s.Flag),
		WorkerID:  s.WorkerID,
		Notes:     s.Notes,
		Outlet:    s.Outlet,
		CreatedAt: s.CreatedAt.UTC().Format(domain.TimeFormat),
		UpdatedAt: s.UpdatedAt.UTC().Format(domain.TimeFormat),
	}
}

// FromDomainShiftList конвертирует список domain моделей в DTO
func FromDomainShiftList(shifts []*domain.Shift) *ShiftListResponse {
	resp := &ShiftListResponse{
		Shifts: make([]ShiftResponse, 0, len(shifts)),
	}
	for _, s := range shifts {
		resp.Shifts = append(resp.Shifts, *FromDomainShift(s))
	}
	return resp
}

// FromDomainEvent конвертирует факт в DTO
func FromDomainEvent(e *domain.Event) *EventResponse {
	if e == nil {
		return nil
	}

	return &EventResponse{
		ID:          e.ID,
		Type:        string(e.Type),
		AggregateID: e.AggregateID,
		Payload:     e.Payload,
		OccurredAt:  e.OccurredAt.UTC().Format(domain.TimeFormat),
	}
}
