package postgres

import (
	"context"
	"fmt"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/database"
)

// SnapshotStore persists merged attendance records so a returning
// session starts warm instead of refetching its whole history.
type SnapshotStore struct {
	db *database.DB
}

func NewSnapshotStore(db *database.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save implements attendance.Snapshotter. Rows are upserted on the
// same (employee, date) identity the in-memory merge uses, so a
// write-through after every merge stays idempotent.
func (s *SnapshotStore) Save(ctx context.Context, employeeID string, records []attendance.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		if err := s.upsertRow(ctx, tx, employeeID, rec); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}
	return nil
}

// upsertRow writes one snapshot row through the given querier, which
// may be the pool or an open transaction.
func (s *SnapshotStore) upsertRow(ctx context.Context, q database.Querier, employeeID string, rec attendance.Record) error {
	_, err := q.Exec(ctx, `
		INSERT INTO attendance_snapshots (
			employee_id, date, record_id, employee_name, employee_image_url,
			clock_in, clock_out, break_start, break_end,
			status, note, last_modified, saved_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (employee_id, date) DO UPDATE SET
			record_id = EXCLUDED.record_id,
			employee_name = EXCLUDED.employee_name,
			employee_image_url = EXCLUDED.employee_image_url,
			clock_in = EXCLUDED.clock_in,
			clock_out = EXCLUDED.clock_out,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			status = EXCLUDED.status,
			note = EXCLUDED.note,
			last_modified = EXCLUDED.last_modified,
			saved_at = NOW()
	`,
		employeeID,
		rec.Date,
		rec.ID,
		rec.EmployeeName,
		rec.EmployeeImageURL,
		rec.ClockIn,
		rec.ClockOut,
		rec.BreakStart,
		rec.BreakEnd,
		rec.Status,
		rec.Note,
		rec.LastModified,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot row: %w", err)
	}
	return nil
}

// Load implements attendance.Snapshotter.
func (s *SnapshotStore) Load(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT record_id, employee_id, date, employee_name, employee_image_url,
		       clock_in, clock_out, break_start, break_end,
		       status, note, last_modified
		FROM attendance_snapshots
		WHERE employee_id = $1
		ORDER BY date DESC
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.Date,
			&rec.EmployeeName,
			&rec.EmployeeImageURL,
			&rec.ClockIn,
			&rec.ClockOut,
			&rec.BreakStart,
			&rec.BreakEnd,
			&rec.Status,
			&rec.Note,
			&rec.LastModified,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear implements attendance.Snapshotter.
func (s *SnapshotStore) Clear(ctx context.Context, employeeID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM attendance_snapshots WHERE employee_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}
