package domain

import "time"

// Worker represents a worker who can hold shifts
type Worker struct {
	ID       int64
	Name     string
	Role     *string
	Location *string
	Email    *string
	Phone    *string

	Available bool // false = мягкое отключение (работник не удаляется)
	Standby   bool // резерв для быстрой замены

	Reliability          float64 // 0..100, пишет только трекер надёжности
	TotalAssignments     int
	CompletedAssignments int

	Blacklisted bool // снимается только вручную, вне этого сервиса

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAssignable returns true if the worker can receive new shifts
func (w *Worker) IsAssignable() bool {
	return w.Available && !w.Blacklisted
}

// RecordOutcome учитывает результат одной смены и пересчитывает надёжность
func (w *Worker) RecordOutcome(completed bool) {
	w.TotalAssignments++
	if completed {
		w.CompletedAssignments++
	}
	w.Reliability = CalculateReliability(w.CompletedAssignments, w.TotalAssignments)
}

// CalculateReliability возвращает процент завершённых смен (0, если смен не было)
func CalculateReliability(completed, total int) float64 {
	if total <= 0 {
		return 0.0
	}
	return float64(completed) / float64(total) * 100
}

// WorkersFilter фильтр списка работников
type WorkersFilter struct {
	Standby     *bool   // только резерв / только не резерв
	Available   *bool   // по флагу доступности
	Blacklisted *bool   // по флагу черного списка (для отчётов не задаётся)
	IDs         []int64 // ограничить набором ID (пустой = без ограничения)
}
