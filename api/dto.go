/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's internal model from the external API contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Response wrappers
  - *DTO: Resource representations returned to clients

DATES:
  Dates travel as strings and are converted with ranges.Normalize, so
  clients may send "2023-01-02", "2023-01-02 09:30:00", or RFC 3339.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/offset.go: OffsetJSON type
*/
package api

import "github.com/warp/schedule-engine/factory"

// =============================================================================
// OFFSET OPERATIONS
// =============================================================================

// RangeRequest asks for the date sequence bounded by start/end/periods.
type RangeRequest struct {
	Start   string             `json:"start,omitempty"`
	End     string             `json:"end,omitempty"`
	Periods int                `json:"periods,omitempty"`
	Offset  factory.OffsetJSON `json:"offset"`
}

// RangeResponse carries the generated sequence.
type RangeResponse struct {
	Freq  string   `json:"freq"`
	Dates []string `json:"dates"`
}

// ApplyRequest advances a date by an offset.
type ApplyRequest struct {
	Date   string             `json:"date"`
	Offset factory.OffsetJSON `json:"offset"`
}

// ApplyResponse carries the advanced date.
type ApplyResponse struct {
	Freq   string `json:"freq"`
	Result string `json:"result"`
}

// RollRequest snaps a date onto an offset's lattice. Direction is
// "forward" or "back".
type RollRequest struct {
	Date      string             `json:"date"`
	Direction string             `json:"direction"`
	Offset    factory.OffsetJSON `json:"offset"`
}

// DescribeRequest inspects an offset, optionally testing a date's
// membership.
type DescribeRequest struct {
	Date   string             `json:"date,omitempty"`
	Offset factory.OffsetJSON `json:"offset"`
}

// DescribeResponse reports the offset's identity and, when a date was
// given, its lattice membership.
type DescribeResponse struct {
	Freq     string `json:"freq"`
	RuleCode string `json:"rule_code"`
	Anchored bool   `json:"anchored"`
	OnOffset *bool  `json:"on_offset,omitempty"`
}

// =============================================================================
// SCHEDULES
// =============================================================================

// CreateScheduleRequest saves a named schedule.
type CreateScheduleRequest struct {
	Name    string             `json:"name"`
	Start   string             `json:"start,omitempty"`
	End     string             `json:"end,omitempty"`
	Periods int                `json:"periods,omitempty"`
	Offset  factory.OffsetJSON `json:"offset"`
}

// ScheduleDTO represents a stored schedule.
type ScheduleDTO struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Start     *string            `json:"start,omitempty"`
	End       *string            `json:"end,omitempty"`
	Periods   int                `json:"periods,omitempty"`
	Offset    factory.OffsetJSON `json:"offset"`
	Freq      string             `json:"freq"`
	CreatedAt string             `json:"created_at"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
