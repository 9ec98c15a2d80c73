package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/radiol/optiroster/pkg/db"
)

// InsertRoster inserts a new roster header record.
func (d *DB) InsertRoster(ctx context.Context, roster *db.Roster) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO roster (id, year, month, status, objective, solve_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, roster.ID, roster.Year, roster.Month, roster.Status, roster.Objective, roster.SolveSeconds, roster.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert roster: %w", err)
	}
	return nil
}

// InsertAssignments inserts the selected assignments of a roster.
// All rows are written in one transaction so a failure leaves no partial set.
func (d *DB) InsertAssignments(ctx context.Context, assignments []db.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO roster_assignment (roster_id, hospital, worker, date, shift)
			VALUES ($1, $2, $3, $4, $5)
		`, a.RosterID, a.Hospital, a.Worker, a.Date, a.Shift)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// InsertPenalties inserts the resolved penalty ledger of a roster.
// All rows are written in one transaction so a failure leaves no partial set.
func (d *DB) InsertPenalties(ctx context.Context, penalties []db.Penalty) error {
	if len(penalties) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range penalties {
		meta, err := json.Marshal(p.Meta)
		if err != nil {
			return fmt.Errorf("failed to encode penalty meta: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO roster_penalty (roster_id, position, source, weight, value, meta)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.RosterID, p.Position, p.Source, p.Weight, p.Value, meta)
		if err != nil {
			return fmt.Errorf("failed to insert penalty: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRosters retrieves all roster header records.
func (d *DB) GetRosters(ctx context.Context) ([]db.Roster, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, year, month, status, objective, solve_seconds, created_at
		FROM roster
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rosters: %w", err)
	}
	defer rows.Close()

	var rosters []db.Roster
	for rows.Next() {
		var r db.Roster
		var createdAt time.Time
		if err := rows.Scan(&r.ID, &r.Year, &r.Month, &r.Status, &r.Objective, &r.SolveSeconds, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		r.CreatedAt = createdAt
		rosters = append(rosters, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rosters: %w", err)
	}

	return rosters, nil
}

// GetAssignments retrieves the assignments of one roster.
func (d *DB) GetAssignments(ctx context.Context, rosterID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT roster_id, hospital, worker, date, shift
		FROM roster_assignment
		WHERE roster_id = $1
		ORDER BY date, hospital, shift, worker
	`, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var date time.Time
		if err := rows.Scan(&a.RosterID, &a.Hospital, &a.Worker, &date, &a.Shift); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Date = date.Format("2006-01-02")
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// GetPenalties retrieves the resolved penalty ledger of one roster.
func (d *DB) GetPenalties(ctx context.Context, rosterID string) ([]db.Penalty, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT roster_id, position, source, weight, value, meta
		FROM roster_penalty
		WHERE roster_id = $1
		ORDER BY position
	`, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query penalties: %w", err)
	}
	defer rows.Close()

	var penalties []db.Penalty
	for rows.Next() {
		var p db.Penalty
		var meta []byte
		if err := rows.Scan(&p.RosterID, &p.Position, &p.Source, &p.Weight, &p.Value, &meta); err != nil {
			return nil, fmt.Errorf("failed to scan penalty: %w", err)
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &p.Meta); err != nil {
				return nil, fmt.Errorf("failed to decode penalty meta: %w", err)
			}
		}
		penalties = append(penalties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating penalties: %w", err)
	}

	return penalties, nil
}
