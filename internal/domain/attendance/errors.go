package attendance

import "errors"

// Attendance domain errors
var (
	// Precondition violations, raised locally before any network call
	ErrAlreadyClockedIn = errors.New("you have already clocked in today")
	ErrNotClockedIn     = errors.New("you have not clocked in yet")
	ErrNoActiveBreak    = errors.New("no break is currently running")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrInvalidRecord  = errors.New("attendance record violates clock ordering")

	// Auth errors
	ErrInvalidToken           = errors.New("invalid or missing access token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
