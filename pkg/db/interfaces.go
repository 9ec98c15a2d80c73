package db

import "context"

// RosterStore defines the persistence operations for solved rosters.
// The postgres package provides the production implementation.
type RosterStore interface {
	InsertRoster(ctx context.Context, roster *Roster) error
	InsertAssignments(ctx context.Context, assignments []Assignment) error
	InsertPenalties(ctx context.Context, penalties []Penalty) error
	GetRosters(ctx context.Context) ([]Roster, error)
	GetAssignments(ctx context.Context, rosterID string) ([]Assignment, error)
	GetPenalties(ctx context.Context, rosterID string) ([]Penalty, error)
}
