package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radiol/optiroster/pkg/core/model"
)

const scenarioYAML = `
year: 2025
month: 10
holidays:
  - "2025-10-13"
hospitals:
  - name: H1
    remote: true
    demands:
      - shift: Night
        weekdays: [Fri]
        frequency: Weekly
  - name: HU
    university: true
    demands:
      - shift: Night
        frequency: Biweekly
        rrule: "FREQ=WEEKLY;INTERVAL=2;BYDAY=FR"
workers:
  - name: W1
    specialist: true
    rules:
      - hospital: H1
        weekdays: [Fri]
        shift: Night
specifiedDays:
  - hospital: H1
    date: "2025-10-13"
    shift: Day
    holiday: true
preferences:
  - worker: W1
    date: "2025-10-03"
    shift: Night
    preference: Forbidden
caps:
  - worker: W1
    hospital: H1
    max: 3
engine:
  minNightGap: 3
  weights:
    desired: 10.0
  timeLimitSeconds: 30
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster_config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromPath(t *testing.T) {
	cfg, err := LoadFromPath(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, 2025, cfg.Year)
	assert.Equal(t, 10, cfg.Month)
	require.Len(t, cfg.Hospitals, 2)
	assert.True(t, cfg.Hospitals[0].Remote)
	assert.True(t, cfg.Hospitals[1].University)
	require.Len(t, cfg.Workers, 1)
	assert.True(t, cfg.Workers[0].Specialist)
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	_, err := LoadFromPath(writeScenario(t, "year: 2025\nmonth: 10\n"))
	assert.Error(t, err)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	broken := `
year: 2025
month: 10
hospitals:
  - name: H1
    demands:
      - shift: Night
        frequency: Biweekly
        rrule: "FREQ=NONSENSE"
workers:
  - name: W1
`
	_, err := LoadFromPath(writeScenario(t, broken))
	assert.Error(t, err)
}

func TestConfig_ToInputs(t *testing.T) {
	cfg, err := LoadFromPath(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	in, err := cfg.ToInputs()
	require.NoError(t, err)

	assert.Equal(t, 2025, in.Year)
	assert.Equal(t, time.October, in.Month)
	assert.True(t, in.Holidays[model.NewDate(2025, time.October, 13)])

	// Engine section merges over defaults
	assert.Equal(t, 3, in.Options.MinNightGap)
	assert.Equal(t, 7, in.Options.SoftNightWindow)
	assert.Equal(t, 10.0, in.Options.Weights.Desired)
	assert.Equal(t, 5.0, in.Options.Weights.NightSpacing)
	assert.Equal(t, 30*time.Second, in.Options.SolverTimeLimit)

	// Weekday names parse into time.Weekday
	require.Len(t, in.Hospitals, 2)
	assert.Equal(t, []time.Weekday{time.Friday}, in.Hospitals[0].Demands[0].Weekdays)

	// The biweekly rrule expands to every other Friday of the month:
	// starting from the first Friday 10-03, that is 10-03, 10-17, 10-31.
	biweekly := in.Hospitals[1].Demands[0]
	assert.Equal(t, model.FrequencyBiweekly, biweekly.Frequency)
	assert.Equal(t, []model.Date{
		model.NewDate(2025, time.October, 3),
		model.NewDate(2025, time.October, 17),
		model.NewDate(2025, time.October, 31),
	}, biweekly.Dates)

	// Preferences and caps land in their maps
	prefKey := model.PreferenceKey{Worker: "W1", Date: model.NewDate(2025, time.October, 3), Shift: model.ShiftNight}
	assert.Equal(t, model.PreferenceForbidden, in.Preferences[prefKey])
	cap, ok := in.Caps.Get("W1", "H1")
	assert.True(t, ok)
	assert.Equal(t, 3, cap)

	// Specified days carry the holiday flag
	require.Len(t, in.SpecifiedDays, 1)
	assert.True(t, in.SpecifiedDays[0].TreatAsHoliday)
}

func TestParseWeekdays_Invalid(t *testing.T) {
	_, err := parseWeekdays([]string{"Friday"})
	assert.Error(t, err)
}
