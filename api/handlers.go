/*
handlers.go - HTTP API handlers for the schedule engine

PURPOSE:
  Exposes offset arithmetic and schedule management via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to the engine.

ENDPOINTS:
  Offsets:
    POST /api/ranges            Generate a date range
    POST /api/offsets/apply     Advance a date by an offset
    POST /api/offsets/roll      Snap a date forward/back onto the lattice
    POST /api/offsets/describe  Inspect an offset, test membership

  Schedules:
    GET    /api/schedules            List stored schedules
    POST   /api/schedules            Save a named schedule
    GET    /api/schedules/{id}       Get a schedule
    GET    /api/schedules/{id}/dates Expand a schedule into dates
    DELETE /api/schedules/{id}       Delete a schedule

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: invalid definitions, bad dates, configuration errors
  - 404: schedule not found
  - 422: under-specified range (fewer than two of start/end/periods)
  - 500: internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/schedule-engine/factory"
	"github.com/warp/schedule-engine/offsets"
	"github.com/warp/schedule-engine/ranges"
	"github.com/warp/schedule-engine/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a handler backed by the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// OFFSET ENDPOINTS
// =============================================================================

// GenerateRange produces the date sequence for a range request.
// POST /api/ranges
func (h *Handler) GenerateRange(w http.ResponseWriter, r *http.Request) {
	var req RangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, status, err := expandRange(req.Start, req.End, req.Periods, req.Offset)
	if err != nil {
		writeError(w, status, "Failed to generate range", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ApplyOffset advances a date by an offset.
// POST /api/offsets/apply
func (h *Handler) ApplyOffset(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	off, err := factory.Build(req.Offset)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid offset definition", err)
		return
	}
	at, err := ranges.Normalize(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	writeJSON(w, http.StatusOK, ApplyResponse{
		Freq:   offsets.FreqStr(off),
		Result: formatDate(off.Apply(at)),
	})
}

// RollOffset snaps a date onto the offset's lattice.
// POST /api/offsets/roll
func (h *Handler) RollOffset(w http.ResponseWriter, r *http.Request) {
	var req RollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	off, err := factory.Build(req.Offset)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid offset definition", err)
		return
	}
	at, err := ranges.Normalize(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	var result time.Time
	switch req.Direction {
	case "forward", "":
		result = offsets.RollForward(off, at)
	case "back":
		result = offsets.RollBack(off, at)
	default:
		writeError(w, http.StatusBadRequest, "Direction must be forward or back", nil)
		return
	}

	writeJSON(w, http.StatusOK, ApplyResponse{
		Freq:   offsets.FreqStr(off),
		Result: formatDate(result),
	})
}

// DescribeOffset reports an offset's identity and optional membership test.
// POST /api/offsets/describe
func (h *Handler) DescribeOffset(w http.ResponseWriter, r *http.Request) {
	var req DescribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	off, err := factory.Build(req.Offset)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid offset definition", err)
		return
	}

	resp := DescribeResponse{
		Freq:     offsets.FreqStr(off),
		RuleCode: off.RuleCode(),
		Anchored: off.IsAnchored(),
	}
	if req.Date != "" {
		at, err := ranges.Normalize(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return
		}
		on := off.OnOffset(at)
		resp.OnOffset = &on
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// SCHEDULE ENDPOINTS
// =============================================================================

// CreateSchedule saves a named schedule.
// POST /api/schedules
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Schedule name is required", nil)
		return
	}

	// Reject definitions and bounds that could never expand.
	if _, err := factory.Build(req.Offset); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid offset definition", err)
		return
	}

	sched := sqlite.Schedule{
		Name:       req.Name,
		Definition: req.Offset,
		Periods:    req.Periods,
	}
	var err error
	if sched.Start, err = optionalDate(req.Start); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return
	}
	if sched.End, err = optionalDate(req.End); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date", err)
		return
	}

	saved, err := h.Store.CreateSchedule(r.Context(), sched)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save schedule", err)
		return
	}
	writeJSON(w, http.StatusCreated, toScheduleDTO(saved))
}

// ListSchedules returns all stored schedules.
// GET /api/schedules
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	scheds, err := h.Store.ListSchedules(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list schedules", err)
		return
	}

	dtos := make([]ScheduleDTO, 0, len(scheds))
	for _, s := range scheds {
		dtos = append(dtos, toScheduleDTO(s))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSchedule returns a single schedule.
// GET /api/schedules/{id}
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	sched, err := h.Store.GetSchedule(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sqlite.ErrScheduleNotFound) {
		writeError(w, http.StatusNotFound, "Schedule not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(sched))
}

// ExpandSchedule generates the stored schedule's date sequence.
// GET /api/schedules/{id}/dates
func (h *Handler) ExpandSchedule(w http.ResponseWriter, r *http.Request) {
	sched, err := h.Store.GetSchedule(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sqlite.ErrScheduleNotFound) {
		writeError(w, http.StatusNotFound, "Schedule not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get schedule", err)
		return
	}

	spec := ranges.Spec{Start: sched.Start, End: sched.End, Periods: sched.Periods}
	off, err := factory.Build(sched.Definition)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Corrupt schedule definition", err)
		return
	}
	spec.Offset = off

	resp, status, err := expandSpec(spec, off)
	if err != nil {
		writeError(w, status, "Failed to expand schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteSchedule removes a schedule.
// DELETE /api/schedules/{id}
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteSchedule(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sqlite.ErrScheduleNotFound) {
		writeError(w, http.StatusNotFound, "Schedule not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete schedule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

func expandRange(start, end string, periods int, def factory.OffsetJSON) (RangeResponse, int, error) {
	off, err := factory.Build(def)
	if err != nil {
		return RangeResponse{}, http.StatusBadRequest, err
	}

	spec := ranges.Spec{Periods: periods, Offset: off}
	if spec.Start, err = optionalDate(start); err != nil {
		return RangeResponse{}, http.StatusBadRequest, err
	}
	if spec.End, err = optionalDate(end); err != nil {
		return RangeResponse{}, http.StatusBadRequest, err
	}
	return expandSpec(spec, off)
}

func expandSpec(spec ranges.Spec, off offsets.Offset) (RangeResponse, int, error) {
	seq, err := ranges.Generate(spec)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ranges.ErrInsufficientRangeSpec) {
			status = http.StatusUnprocessableEntity
		}
		return RangeResponse{}, status, err
	}

	dates, err := seq.Collect()
	if err != nil {
		return RangeResponse{}, http.StatusBadRequest, err
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, formatDate(d))
	}
	return RangeResponse{Freq: offsets.FreqStr(off), Dates: out}, http.StatusOK, nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ranges.Normalize(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t time.Time) string {
	if t.Equal(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())) {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339Nano)
}

func toScheduleDTO(s sqlite.Schedule) ScheduleDTO {
	dto := ScheduleDTO{
		ID:        s.ID,
		Name:      s.Name,
		Periods:   s.Periods,
		Offset:    s.Definition,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
	if off, err := factory.Build(s.Definition); err == nil {
		dto.Freq = offsets.FreqStr(off)
	}
	if s.Start != nil {
		dto.Start = strPtr(formatDate(*s.Start))
	}
	if s.End != nil {
		dto.End = strPtr(formatDate(*s.End))
	}
	return dto
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func strPtr(s string) *string {
	return &s
}
