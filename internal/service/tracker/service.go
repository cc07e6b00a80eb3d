package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/sse"
	"github.com/shiftsense/attendance-engine-go/internal/store/memory"
)

// TrackerServiceImpl drives the per-day attendance state machine.
// Every action is a two-phase write: call the remote API, then merge
// whatever it returned into the session cache. The cache is never
// mutated optimistically, so a failed call leaves it untouched, and
// the server's record always wins over the local guess.
type TrackerServiceImpl struct {
	gateway   attendance.Gateway
	registry  *memory.Registry
	snapshots attendance.Snapshotter
	hub       *sse.Hub
}

func NewTrackerService(
	gateway attendance.Gateway,
	registry *memory.Registry,
	snapshots attendance.Snapshotter,
	hub *sse.Hub,
) attendance.TrackerService {
	return &TrackerServiceImpl{
		gateway:   gateway,
		registry:  registry,
		snapshots: snapshots,
		hub:       hub,
	}
}

// ClaimsEmployeeID extracts employee_id from JWT claims.
func ClaimsEmployeeID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", attendance.ErrInvalidToken, err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("%w: employee_id claim is missing", attendance.ErrInvalidToken)
	}
	return employeeID, nil
}

func (s *TrackerServiceImpl) session(ctx context.Context) (string, attendance.Store, error) {
	employeeID, err := ClaimsEmployeeID(ctx)
	if err != nil {
		return "", nil, err
	}
	return employeeID, s.registry.For(employeeID), nil
}

// Today implements attendance.TrackerService.
func (s *TrackerServiceImpl) Today(ctx context.Context) (attendance.TodayResponse, error) {
	employeeID, store, err := s.session(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	record, states, err := s.gateway.Today(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	var recordResp *attendance.RecordResponse
	if record != nil {
		s.absorb(ctx, employeeID, store, *record)
		resp := attendance.NewRecordResponse(*record)
		recordResp = &resp
	}

	return attendance.TodayResponse{
		Record:       recordResp,
		Availability: attendance.NewAvailabilityResponse(attendance.AvailabilityOf(record)),
		States: attendance.ActionStatesResponse{
			ClockIn:  states.ClockIn,
			Break:    states.Break,
			ClockOut: states.ClockOut,
		},
	}, nil
}

// ClockIn implements attendance.TrackerService.
func (s *TrackerServiceImpl) ClockIn(ctx context.Context, req attendance.ActionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, store, err := s.session(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	// Local guard only; the server remains the final authority and its
	// rejection is surfaced unchanged.
	if today := store.Today(); today != nil && today.ClockIn != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyClockedIn
	}

	record, err := s.gateway.ClockIn(ctx, req.Note)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.absorb(ctx, employeeID, store, record)
	return attendance.NewRecordResponse(record), nil
}

// StartBreak implements attendance.TrackerService.
func (s *TrackerServiceImpl) StartBreak(ctx context.Context, req attendance.ActionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, store, err := s.session(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	today := store.Today()
	if today == nil || !today.Open() || today.OnBreak() {
		return attendance.RecordResponse{}, attendance.ErrNotClockedIn
	}

	record, err := s.gateway.StartBreak(ctx, req.Note)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.absorb(ctx, employeeID, store, record)
	return attendance.NewRecordResponse(record), nil
}

// EndBreak implements attendance.TrackerService.
func (s *TrackerServiceImpl) EndBreak(ctx context.Context, req attendance.ActionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, store, err := s.session(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	today := store.Today()
	if today == nil || !today.OnBreak() {
		return attendance.RecordResponse{}, attendance.ErrNoActiveBreak
	}

	record, err := s.gateway.EndBreak(ctx, req.Note)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.absorb(ctx, employeeID, store, record)
	return attendance.NewRecordResponse(record), nil
}

// ClockOut implements attendance.TrackerService. A running break is
// closed first as its own gateway call; if that step fails the
// clock-out is never sent.
func (s *TrackerServiceImpl) ClockOut(ctx context.Context, req attendance.ActionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, store, err := s.session(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	today := store.Today()
	if today == nil || !today.Open() {
		return attendance.RecordResponse{}, attendance.ErrNotClockedIn
	}

	if today.OnBreak() {
		record, err := s.gateway.EndBreak(ctx, req.Note)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to end break before clock-out: %w", err)
		}
		s.absorb(ctx, employeeID, store, record)
	}

	record, err := s.gateway.ClockOut(ctx, req.Note)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.absorb(ctx, employeeID, store, record)
	return attendance.NewRecordResponse(record), nil
}

// ResetSession implements attendance.TrackerService.
func (s *TrackerServiceImpl) ResetSession(ctx context.Context) error {
	employeeID, err := ClaimsEmployeeID(ctx)
	if err != nil {
		return err
	}

	s.registry.Reset(employeeID)

	if s.snapshots != nil {
		if err := s.snapshots.Clear(ctx, employeeID); err != nil {
			return fmt.Errorf("failed to clear persisted snapshot: %w", err)
		}
	}

	if s.hub != nil {
		s.hub.Publish(employeeID, sse.Event{
			EmployeeID: employeeID,
			Event:      sse.EventSessionReset,
		})
	}
	return nil
}

// absorb merges a server-confirmed record into the session cache,
// write-through persists it, and notifies open dashboard tabs. A
// persistence failure is logged, not surfaced: the in-memory cache is
// the source the dashboard reads from.
func (s *TrackerServiceImpl) absorb(ctx context.Context, employeeID string, store attendance.Store, record attendance.Record) {
	changed := store.Merge(record)
	if len(changed) == 0 {
		return
	}

	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, employeeID, changed); err != nil {
			slog.Error("Failed to persist attendance snapshot",
				"employee_id", employeeID, "error", err)
		}
	}

	if s.hub != nil {
		s.hub.Publish(employeeID, sse.Event{
			EmployeeID: employeeID,
			Event:      sse.EventRecordUpdated,
			Data:       attendance.NewRecordResponse(record),
		})
	}
}
