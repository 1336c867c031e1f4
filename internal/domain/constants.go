package domain

import "time"

// Default configuration values
const (
	DefaultMaxSuggestions       = 5
	DefaultEscalationWindowDays = 30
)

// Business validation constants
const (
	MaxSuggestionsLimit      = 50
	MaxNameLength            = 200
	MaxNotesLength           = 500
	MaxReasonDetailLength    = 500
	MaxBlacklistReasonLength = 500
	MaxOutletLength          = 100
)

// Time format constants
const (
	TimeFormat = time.RFC3339 // ISO-8601
)

// DefaultBlacklistReasonFormat причина эскалации по умолчанию (подставляется причина отмены)
const DefaultBlacklistReasonFormat = "Multiple cancellations detected: %s"

// NonTerminalShiftStatuses статусы смен, которые ещё можно менять
var NonTerminalShiftStatuses = []ShiftStatus{
	ShiftStatusActive,
	ShiftStatusStandby,
}
