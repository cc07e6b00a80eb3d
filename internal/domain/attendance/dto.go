package attendance

import (
	"time"

	"github.com/shiftsense/attendance-engine-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// ActionRequest carries the optional free-text note attached to a
// clock-in/break/clock-out action.
type ActionRequest struct {
	Note string `json:"note"`
}

const maxNoteLength = 500

func (r *ActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Note) > maxNoteLength {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PageRequest asks the history coordinator to populate one window of
// attendance history.
type PageRequest struct {
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
}

func (r *PageRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Kind, []string{WindowWeek, WindowMonth}) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: week, month",
		})
	}

	if r.Offset < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "offset",
			Message: "offset must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PageResponse struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Records   []RecordResponse `json:"records"`
}

type RecordResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	EmployeeImageURL *string `json:"employee_image_url,omitempty"`
	Date             string  `json:"date"`
	ClockIn          *string `json:"clock_in,omitempty"`
	ClockOut         *string `json:"clock_out,omitempty"`
	BreakStart       *string `json:"break_start,omitempty"`
	BreakEnd         *string `json:"break_end,omitempty"`
	Status           string  `json:"status"`
	Note             *string `json:"note,omitempty"`
	LastModified     string  `json:"last_modified"`
}

type AvailabilityResponse struct {
	CanClockIn    bool `json:"can_clock_in"`
	CanStartBreak bool `json:"can_start_break"`
	CanEndBreak   bool `json:"can_end_break"`
	CanClockOut   bool `json:"can_clock_out"`
}

type TodayResponse struct {
	Record       *RecordResponse      `json:"record"`
	Availability AvailabilityResponse `json:"availability"`
	States       ActionStatesResponse `json:"states"`
}

type ActionStatesResponse struct {
	ClockIn  string `json:"clock_in"`
	Break    string `json:"break"`
	ClockOut string `json:"clock_out"`
}

type StatusBoardResponse struct {
	In        int              `json:"in"`
	InBreak   int              `json:"in_break"`
	Out       int              `json:"out"`
	Total     int              `json:"total"`
	Absent    int              `json:"absent"`
	Recent    []RecordResponse `json:"recent"`
	FetchedAt string           `json:"fetched_at"`
}

// timePtrToString formats a *time.Time as RFC3339, passing nil through.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

// NewRecordResponse maps a Record entity to its API shape.
func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		EmployeeImageURL: r.EmployeeImageURL,
		Date:             r.Date.Format("2006-01-02"),
		ClockIn:          timePtrToString(r.ClockIn),
		ClockOut:         timePtrToString(r.ClockOut),
		BreakStart:       timePtrToString(r.BreakStart),
		BreakEnd:         timePtrToString(r.BreakEnd),
		Status:           r.Status,
		Note:             r.Note,
		LastModified:     r.LastModified.Format(time.RFC3339),
	}
}

// NewRecordResponses maps a batch, preserving order.
func NewRecordResponses(records []Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewRecordResponse(r))
	}
	return out
}

// NewAvailabilityResponse maps the derived action flags.
func NewAvailabilityResponse(a Availability) AvailabilityResponse {
	return AvailabilityResponse{
		CanClockIn:    a.CanClockIn,
		CanStartBreak: a.CanStartBreak,
		CanEndBreak:   a.CanEndBreak,
		CanClockOut:   a.CanClockOut,
	}
}

// NewStatusBoardResponse maps the admin snapshot.
func NewStatusBoardResponse(b StatusBoard) StatusBoardResponse {
	return StatusBoardResponse{
		In:        b.In,
		InBreak:   b.InBreak,
		Out:       b.Out,
		Total:     b.Total,
		Absent:    b.Absent,
		Recent:    NewRecordResponses(b.Recent),
		FetchedAt: b.FetchedAt.Format(time.RFC3339),
	}
}
