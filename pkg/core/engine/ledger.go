package engine

import "github.com/nextmv-io/sdk/mip"

// Term is one coefficient-variable pair of a penalty expression.
type Term struct {
	Coef float64
	Var  mip.Var
}

// PenaltyItem is one ledger entry: a linear expression over decision
// variables (typically a single slack), a non-negative weight, the name of
// the rule that produced it, and structured metadata for reporting.
type PenaltyItem struct {
	Terms  []Term
	Weight float64
	Source string
	Meta   map[string]string
}

// Ledger is the append-only sequence of penalty items, keyed implicitly by
// insertion order. The solver driver routes every item into the objective;
// the reporter resolves them after the solve.
type Ledger struct {
	items []PenaltyItem
}

// Append adds an item to the ledger.
func (l *Ledger) Append(item PenaltyItem) {
	l.items = append(l.items, item)
}

// Items returns the ledger entries in insertion order.
func (l *Ledger) Items() []PenaltyItem {
	return l.items
}

// Len returns the number of ledger entries.
func (l *Ledger) Len() int {
	return len(l.items)
}
