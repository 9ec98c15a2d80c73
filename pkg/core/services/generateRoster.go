package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radiol/optiroster/pkg/core/engine"
	"github.com/radiol/optiroster/pkg/db"
)

// topPenaltyItems is how many individual penalty items the report keeps.
const topPenaltyItems = 10

// GenerateRosterResult contains the solve outcome, the explainability
// report, and the persisted roster ID when a store was provided.
type GenerateRosterResult struct {
	Result   *engine.SolveResult
	Report   engine.Report
	RosterID string
}

// GenerateRoster runs the optimization engine for one month and optionally
// persists the outcome. The store may be nil to skip persistence.
func GenerateRoster(ctx context.Context, store db.RosterStore, logger *zap.Logger, in engine.Inputs) (*GenerateRosterResult, error) {
	logger.Info("Generating roster",
		zap.Int("year", in.Year),
		zap.Int("month", int(in.Month)),
		zap.Int("hospitals", len(in.Hospitals)),
		zap.Int("workers", len(in.Workers)))

	result, err := engine.Solve(in)
	if err != nil {
		return nil, fmt.Errorf("failed to solve roster: %w", err)
	}

	logger.Info("Solve finished",
		zap.String("status", string(result.Status)),
		zap.Float64("objective", result.ObjectiveValue),
		zap.Duration("solve_time", result.SolveTime))

	report := engine.BuildReport(result.Penalties, topPenaltyItems)

	out := &GenerateRosterResult{
		Result: result,
		Report: report,
	}

	if store == nil {
		return out, nil
	}

	rosterID, err := persistRoster(ctx, store, in, result)
	if err != nil {
		return nil, err
	}
	out.RosterID = rosterID

	logger.Info("Roster persisted", zap.String("roster_id", rosterID))

	return out, nil
}

// persistRoster writes the roster header, the selected assignments and the
// resolved penalty ledger.
func persistRoster(ctx context.Context, store db.RosterStore, in engine.Inputs, result *engine.SolveResult) (string, error) {
	roster := &db.Roster{
		ID:           uuid.New().String(),
		Year:         in.Year,
		Month:        int(in.Month),
		Status:       string(result.Status),
		Objective:    result.ObjectiveValue,
		SolveSeconds: result.SolveTime.Seconds(),
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.InsertRoster(ctx, roster); err != nil {
		return "", fmt.Errorf("failed to persist roster: %w", err)
	}

	var assignments []db.Assignment
	for _, key := range result.Assignments() {
		assignments = append(assignments, db.Assignment{
			RosterID: roster.ID,
			Hospital: key.Hospital,
			Worker:   key.Worker,
			Date:     key.Date.String(),
			Shift:    string(key.Shift),
		})
	}
	if err := store.InsertAssignments(ctx, assignments); err != nil {
		return "", fmt.Errorf("failed to persist assignments: %w", err)
	}

	var penalties []db.Penalty
	for i, item := range result.Penalties {
		penalties = append(penalties, db.Penalty{
			RosterID: roster.ID,
			Position: i,
			Source:   item.Source,
			Weight:   item.Weight,
			Value:    item.Value,
			Meta:     item.Meta,
		})
	}
	if err := store.InsertPenalties(ctx, penalties); err != nil {
		return "", fmt.Errorf("failed to persist penalties: %w", err)
	}

	return roster.ID, nil
}
