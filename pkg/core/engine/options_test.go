package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, 2, opts.MinNightGap)
	assert.Equal(t, 7, opts.SoftNightWindow)
	assert.Equal(t, 5.0, opts.Weights.NightSpacing)
	assert.Equal(t, 3.0, opts.Weights.NightPlusRemote)
	assert.Equal(t, 2.0, opts.Weights.NightDeviation)
	assert.Equal(t, 1.0, opts.Weights.WeekdayBalance)
	assert.Equal(t, 4.0, opts.Weights.DutyAfterNight)
	assert.Equal(t, 8.0, opts.Weights.Desired)
	assert.Equal(t, 1.0, opts.Weights.Available)
	assert.NoError(t, opts.Validate())
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"min night gap below one", func(o *Options) { o.MinNightGap = 0 }},
		{"window below min gap", func(o *Options) { o.SoftNightWindow = 1 }},
		{"negative weight", func(o *Options) { o.Weights.Desired = -1 }},
		{"negative time limit", func(o *Options) { o.SolverTimeLimit = -1 }},
		{"unknown rule name", func(o *Options) { o.EnabledRules = []string{"no-such-rule"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestRegistry_OrderAndNames(t *testing.T) {
	rules := Registry(DefaultOptions())

	var names []string
	for _, rule := range rules {
		names = append(names, rule.Name())
		assert.NotEmpty(t, rule.Summary())
		assert.NotEmpty(t, rule.Requires())
	}

	// Hard rules first, then soft rules, in fixed order
	assert.Equal(t, []string{
		RuleCoverage,
		RuleOverlap,
		RuleForbidden,
		RuleCaps,
		RuleNightGap,
		RuleRemoteAfter,
		RuleSpecialistNight,
		RuleNightPairs,
		RuleNightPlusRemote,
		RuleNightDeviation,
		RuleWeekdayBalance,
		RuleDutyAfterNight,
		RuleDesired,
		RuleAvailable,
	}, names)
}

func TestRegistry_EnabledSubset(t *testing.T) {
	opts := DefaultOptions()
	opts.EnabledRules = []string{RuleCoverage, RuleNightGap}

	rules := Registry(opts)

	require.Len(t, rules, 2)
	assert.Equal(t, RuleCoverage, rules[0].Name())
	assert.Equal(t, RuleNightGap, rules[1].Name())
}
