package domain

import "time"

// ShiftStatus represents the status of a shift
type ShiftStatus string

const (
	ShiftStatusActive    ShiftStatus = "active"
	ShiftStatusStandby   ShiftStatus = "standby"
	ShiftStatusCompleted ShiftStatus = "completed"
	ShiftStatusCancelled ShiftStatus = "cancelled"
)

// IsValid returns true if the status is one of the known statuses
func (s ShiftStatus) IsValid() bool {
	switch s {
	case ShiftStatusActive, ShiftStatusStandby, ShiftStatusCompleted, ShiftStatusCancelled:
		return true
	}
	return false
}

// ShiftFlag represents the operational flag of a shift
type ShiftFlag string

const (
	ShiftFlagNormal       ShiftFlag = "normal"
	ShiftFlagUrgent       ShiftFlag = "urgent"
	ShiftFlagNoShowRisk   ShiftFlag = "no_show_risk"
	ShiftFlagHighPriority ShiftFlag = "high_priority"
)

// IsValid returns true if the flag is one of the known flags
func (f ShiftFlag) IsValid() bool {
	switch f {
	case ShiftFlagNormal, ShiftFlagUrgent, ShiftFlagNoShowRisk, ShiftFlagHighPriority:
		return true
	}
	return false
}

// Shift represents a work shift with a half-open interval [Start, End)
type Shift struct {
	ID       int64
	Start    time.Time
	End      time.Time
	Status   ShiftStatus
	Flag     ShiftFlag
	WorkerID *int64 // слабая ссылка на работника, только для поиска
	Notes    *string
	Outlet   *string // простая метка точки, без разделения данных

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the shift is assigned and not cancelled/completed
func (s *Shift) IsActive() bool {
	return s.Status == ShiftStatusActive
}

// IsTerminal returns true if the shift is completed or cancelled
func (s *Shift) IsTerminal() bool {
	return s.Status == ShiftStatusCompleted || s.Status == ShiftStatusCancelled
}

// IsAssignedTo returns true if the shift is held by the worker
func (s *Shift) IsAssignedTo(workerID int64) bool {
	return s.WorkerID != nil && *s.WorkerID == workerID
}

// Overlaps returns true if the shift interval intersects [start, end)
func (s *Shift) Overlaps(start, end time.Time) bool {
	return IntervalsOverlap(s.Start, s.End, start, end)
}

// IntervalsOverlap проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
// Смежные интервалы (один заканчивается там, где начинается другой) не пересекаются
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ValidInterval returns true if start < end
func ValidInterval(start, end time.Time) bool {
	return !start.IsZero() && !end.IsZero() && start.Before(end)
}

// ShiftsFilter фильтр списка смен
type ShiftsFilter struct {
	Status   *ShiftStatus // по статусу
	Flag     *ShiftFlag   // по флагу
	WorkerID *int64       // по назначенному работнику
	From     *time.Time   // начало смены >= From
	To       *time.Time   // конец смены <= To
}

// ActiveOverlapFilter выборка активных смен, пересекающих окно
// Используется индексом доступности и проверкой конфликтов при записи
type ActiveOverlapFilter struct {
	WindowStart    time.Time
	WindowEnd      time.Time
	WorkerID       *int64 // только смены этого работника (nil = все)
	ExcludeShiftID *int64 // не учитывать эту смену (переназначение самой себя)
}
