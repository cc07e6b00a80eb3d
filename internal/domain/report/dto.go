package report

import (
	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/validator"
)

// ========================================
// REPORT DTOs
// ========================================

type HoursRequest struct {
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
}

func (r *HoursRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Kind, []string{attendance.WindowWeek, attendance.WindowMonth}) {
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

// DaySummary is one bar of the worked-hours chart. CapacityHours is
// the employee's configured expected daily hours, used by consumers to
// render proportional bars.
type DaySummary struct {
	Label         string  `json:"label"`
	Date          string  `json:"date"`
	WorkedHours   float64 `json:"worked_hours"`
	CapacityHours float64 `json:"capacity_hours"`
}

type HoursResponse struct {
	Kind       string       `json:"kind"`
	Offset     int          `json:"offset"`
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
	TotalHours float64      `json:"total_hours"`
	Days       []DaySummary `json:"days"`
}

// DashboardResponse bundles everything the dashboard landing view
// renders in a single round trip.
type DashboardResponse struct {
	Today attendance.TodayResponse `json:"today"`
	Week  HoursResponse            `json:"week"`
	Month HoursResponse            `json:"month"`
}

// ExportFile is a generated workbook ready to stream to the caller.
type ExportFile struct {
	Name    string
	Content []byte
}
