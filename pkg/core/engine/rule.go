package engine

// Rule is one scheduling rule. A rule may add linear constraints to the
// session's model, append weighted penalty items to the ledger, or both.
//
// Rules are pure with respect to the session they receive: applying the
// same registry to the same inputs produces the same model. The apply order
// is irrelevant for correctness but fixed for reproducible variable and
// constraint numbering.
type Rule interface {
	// Name is the stable identifier operators use to enable the rule.
	Name() string

	// Summary is a short human description for rule listings and reports.
	Summary() string

	// Requires lists the context fields the rule consults. A missing
	// field is a fatal configuration error checked before any rule runs.
	Requires() []ContextKey

	// Apply adds the rule's constraints and penalty items to the session.
	Apply(s *Session) error
}

// Rule names. Operators select rules by these identifiers.
const (
	RuleCoverage        = "one-person-per-coverage-point"
	RuleOverlap         = "no-overlap-same-time"
	RuleForbidden       = "respect-forbidden-preferences"
	RuleCaps            = "per-worker-per-hospital-cap"
	RuleNightGap        = "night-spacing-minimum"
	RuleRemoteAfter     = "forbid-remote-after-night"
	RuleSpecialistNight = "university-holiday-last-night-needs-specialist"
	RuleNightPairs      = "night-spacing-pairs"
	RuleNightPlusRemote = "avoid-night-plus-remote-daypm-same-day"
	RuleNightDeviation  = "night-deviation-band"
	RuleWeekdayBalance  = "weekday-balance-non-night"
	RuleDutyAfterNight  = "no-duty-after-night"
	RuleDesired         = "respect-desired-preferences"
	RuleAvailable       = "respect-available-preferences"
)

var knownRuleNames = map[string]bool{
	RuleCoverage:        true,
	RuleOverlap:         true,
	RuleForbidden:       true,
	RuleCaps:            true,
	RuleNightGap:        true,
	RuleRemoteAfter:     true,
	RuleSpecialistNight: true,
	RuleNightPairs:      true,
	RuleNightPlusRemote: true,
	RuleNightDeviation:  true,
	RuleWeekdayBalance:  true,
	RuleDutyAfterNight:  true,
	RuleDesired:         true,
	RuleAvailable:       true,
}

// Registry returns the fixed, ordered rule list for a session. Discovery is
// declarative: the known rules are constructed here, hard rules first, and
// filtered by the options' enabled set. There is no global mutable registry
// and no side-effectful loading.
func Registry(opts Options) []Rule {
	all := []Rule{
		NewCoverageRule(),
		NewOverlapRule(),
		NewForbiddenRule(),
		NewCapsRule(),
		NewNightGapRule(opts.MinNightGap),
		NewRemoteAfterNightRule(),
		NewSpecialistNightRule(),
		NewNightPairsRule(opts.MinNightGap, opts.SoftNightWindow, opts.Weights.NightSpacing),
		NewNightPlusRemoteRule(opts.Weights.NightPlusRemote),
		NewNightDeviationRule(opts.Weights.NightDeviation),
		NewWeekdayBalanceRule(opts.Weights.WeekdayBalance),
		NewDutyAfterNightRule(opts.Weights.DutyAfterNight),
		NewDesiredRule(opts.Weights.Desired),
		NewAvailableRule(opts.Weights.Available),
	}

	rules := make([]Rule, 0, len(all))
	for _, rule := range all {
		if opts.ruleEnabled(rule.Name()) {
			rules = append(rules, rule)
		}
	}
	return rules
}

// activeWorkers returns the workers with at least one materialized decision
// variable, in input order.
func (s *Session) activeWorkers() []string {
	var names []string
	for _, worker := range s.ctx.Workers {
		if len(s.byWorker[worker.Name]) > 0 {
			names = append(names, worker.Name)
		}
	}
	return names
}
