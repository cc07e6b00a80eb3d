package response

import (
	"errors"
	"net/http"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Remote API errors keep their upstream message and surface as a
	// gateway failure, not as this service's fault.
	var remoteErr *attendance.RemoteError
	if errors.As(err, &remoteErr) {
		BadGateway(w, remoteErr.Message)
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, attendance.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing access token")
	case errors.Is(err, attendance.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// State machine precondition violations
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "You have already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "You have not clocked in yet")
	case errors.Is(err, attendance.ErrNoActiveBreak):
		Conflict(w, "No break is currently running")

	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
