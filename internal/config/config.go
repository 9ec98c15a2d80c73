// Package config loads and validates roster scenario files: the month, the
// hospitals and their demand, the workers and their availability,
// preferences, caps, and the engine options.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/radiol/optiroster/pkg/core/calendar"
	"github.com/radiol/optiroster/pkg/core/engine"
	"github.com/radiol/optiroster/pkg/core/model"
)

// DemandRuleConfig declares recurring coverage demand for one hospital.
// Dates may be listed explicitly or produced from an RRULE recurrence
// (e.g. "FREQ=WEEKLY;INTERVAL=2;BYDAY=FR" for biweekly Fridays).
type DemandRuleConfig struct {
	Shift     string   `yaml:"shift" validate:"required,oneof=Day Night AM PM"`
	Weekdays  []string `yaml:"weekdays,omitempty" validate:"dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	Frequency string   `yaml:"frequency" validate:"required,oneof=Weekly Biweekly SpecificDays"`
	Dates     []string `yaml:"dates,omitempty"`
	RRule     string   `yaml:"rrule,omitempty"`
}

// HospitalConfig describes one coverage site.
type HospitalConfig struct {
	Name       string             `yaml:"name" validate:"required"`
	Remote     bool               `yaml:"remote,omitempty"`
	University bool               `yaml:"university,omitempty"`
	Demands    []DemandRuleConfig `yaml:"demands,omitempty" validate:"dive"`
}

// AssignmentRuleConfig is one positive availability statement of a worker.
type AssignmentRuleConfig struct {
	Hospital string   `yaml:"hospital" validate:"required"`
	Weekdays []string `yaml:"weekdays" validate:"required,dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	Shift    string   `yaml:"shift" validate:"required,oneof=Day Night AM PM"`
}

// WorkerConfig describes one staff member.
type WorkerConfig struct {
	Name       string                 `yaml:"name" validate:"required"`
	Specialist bool                   `yaml:"specialist,omitempty"`
	Rules      []AssignmentRuleConfig `yaml:"rules,omitempty" validate:"dive"`
}

// SpecifiedDayConfig forces demand at an explicit point.
type SpecifiedDayConfig struct {
	Hospital string `yaml:"hospital" validate:"required"`
	Date     string `yaml:"date" validate:"required"`
	Shift    string `yaml:"shift" validate:"required,oneof=Day Night AM PM"`
	Holiday  bool   `yaml:"holiday,omitempty"`
}

// PreferenceConfig is one explicit worker preference entry.
type PreferenceConfig struct {
	Worker     string `yaml:"worker" validate:"required"`
	Date       string `yaml:"date" validate:"required"`
	Shift      string `yaml:"shift" validate:"required,oneof=Day Night AM PM"`
	Preference string `yaml:"preference" validate:"required,oneof=Desired Available Forbidden"`
}

// CapConfig bounds one worker's monthly assignments at one hospital.
type CapConfig struct {
	Worker   string `yaml:"worker" validate:"required"`
	Hospital string `yaml:"hospital" validate:"required"`
	Max      int    `yaml:"max" validate:"min=0"`
}

// WeightsConfig holds soft-rule weights. Nil fields keep the defaults.
type WeightsConfig struct {
	NightSpacing    *float64 `yaml:"nightSpacing,omitempty" validate:"omitempty,min=0"`
	NightPlusRemote *float64 `yaml:"nightPlusRemote,omitempty" validate:"omitempty,min=0"`
	NightDeviation  *float64 `yaml:"nightDeviation,omitempty" validate:"omitempty,min=0"`
	WeekdayBalance  *float64 `yaml:"weekdayBalance,omitempty" validate:"omitempty,min=0"`
	DutyAfterNight  *float64 `yaml:"dutyAfterNight,omitempty" validate:"omitempty,min=0"`
	Desired         *float64 `yaml:"desired,omitempty" validate:"omitempty,min=0"`
	Available       *float64 `yaml:"available,omitempty" validate:"omitempty,min=0"`
}

// EngineConfig holds the engine options.
type EngineConfig struct {
	MinNightGap      *int          `yaml:"minNightGap,omitempty" validate:"omitempty,min=1"`
	SoftNightWindow  *int          `yaml:"softNightWindow,omitempty" validate:"omitempty,min=1"`
	Weights          WeightsConfig `yaml:"weights,omitempty"`
	EnabledRules     []string      `yaml:"enabledRules,omitempty"`
	TimeLimitSeconds float64       `yaml:"timeLimitSeconds,omitempty" validate:"min=0"`
}

// Config represents one roster scenario file.
type Config struct {
	Year          int                  `yaml:"year" validate:"required,min=1"`
	Month         int                  `yaml:"month" validate:"required,min=1,max=12"`
	Holidays      []string             `yaml:"holidays,omitempty"`
	Hospitals     []HospitalConfig     `yaml:"hospitals" validate:"required,dive"`
	Workers       []WorkerConfig       `yaml:"workers" validate:"required,dive"`
	SpecifiedDays []SpecifiedDayConfig `yaml:"specifiedDays,omitempty" validate:"dive"`
	Preferences   []PreferenceConfig   `yaml:"preferences,omitempty" validate:"dive"`
	Caps          []CapConfig          `yaml:"caps,omitempty" validate:"dive"`
	Engine        EngineConfig         `yaml:"engine,omitempty"`
	DatabaseURL   string               `yaml:"databaseURL,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the scenario with an environment suffix.
// For example, env="test" will look for "roster_config.test.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the scenario from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the scenario struct and checks rrule syntax.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for _, hospital := range cfg.Hospitals {
		for i, demand := range hospital.Demands {
			if demand.RRule == "" {
				continue
			}
			if _, err := rrule.StrToRRule(demand.RRule); err != nil {
				return fmt.Errorf("invalid rrule in hospital %q demand %d: %w", hospital.Name, i, err)
			}
		}
	}

	return nil
}

// ToInputs converts the scenario into engine inputs, expanding RRULE
// recurrences against the target month.
func (cfg *Config) ToInputs() (engine.Inputs, error) {
	in := engine.Inputs{
		Year:        cfg.Year,
		Month:       time.Month(cfg.Month),
		Preferences: model.PreferenceMap{},
		Caps:        model.CapMap{},
		Holidays:    calendar.HolidaySet{},
		Options:     cfg.engineOptions(),
	}

	monthStart := model.NewDate(cfg.Year, time.Month(cfg.Month), 1).Time()
	monthEnd := monthStart.AddDate(0, 1, -1)

	for _, raw := range cfg.Holidays {
		date, err := model.ParseDate(raw)
		if err != nil {
			return engine.Inputs{}, fmt.Errorf("holiday: %w", err)
		}
		in.Holidays[date] = true
	}

	for _, hc := range cfg.Hospitals {
		hospital := model.Hospital{
			Name:         hc.Name,
			IsRemote:     hc.Remote,
			IsUniversity: hc.University,
		}
		for i, dc := range hc.Demands {
			rule := model.DemandRule{
				Shift:     model.ShiftKind(dc.Shift),
				Frequency: model.Frequency(dc.Frequency),
			}
			weekdays, err := parseWeekdays(dc.Weekdays)
			if err != nil {
				return engine.Inputs{}, fmt.Errorf("hospital %q demand %d: %w", hc.Name, i, err)
			}
			rule.Weekdays = weekdays

			for _, raw := range dc.Dates {
				date, err := model.ParseDate(raw)
				if err != nil {
					return engine.Inputs{}, fmt.Errorf("hospital %q demand %d: %w", hc.Name, i, err)
				}
				rule.Dates = append(rule.Dates, date)
			}
			if dc.RRule != "" {
				expanded, err := expandRRule(dc.RRule, monthStart, monthEnd)
				if err != nil {
					return engine.Inputs{}, fmt.Errorf("hospital %q demand %d: %w", hc.Name, i, err)
				}
				rule.Dates = append(rule.Dates, expanded...)
			}

			hospital.Demands = append(hospital.Demands, rule)
		}
		in.Hospitals = append(in.Hospitals, hospital)
	}

	for _, wc := range cfg.Workers {
		worker := model.Worker{Name: wc.Name, IsSpecialist: wc.Specialist}
		for i, rc := range wc.Rules {
			weekdays, err := parseWeekdays(rc.Weekdays)
			if err != nil {
				return engine.Inputs{}, fmt.Errorf("worker %q rule %d: %w", wc.Name, i, err)
			}
			worker.Rules = append(worker.Rules, model.AssignmentRule{
				Hospital: rc.Hospital,
				Weekdays: weekdays,
				Shift:    model.ShiftKind(rc.Shift),
			})
		}
		in.Workers = append(in.Workers, worker)
	}

	for i, sc := range cfg.SpecifiedDays {
		date, err := model.ParseDate(sc.Date)
		if err != nil {
			return engine.Inputs{}, fmt.Errorf("specified day %d: %w", i, err)
		}
		in.SpecifiedDays = append(in.SpecifiedDays, model.SpecifiedDay{
			Hospital:       sc.Hospital,
			Date:           date,
			Shift:          model.ShiftKind(sc.Shift),
			TreatAsHoliday: sc.Holiday,
		})
	}

	for i, pc := range cfg.Preferences {
		date, err := model.ParseDate(pc.Date)
		if err != nil {
			return engine.Inputs{}, fmt.Errorf("preference %d: %w", i, err)
		}
		key := model.PreferenceKey{Worker: pc.Worker, Date: date, Shift: model.ShiftKind(pc.Shift)}
		in.Preferences[key] = model.Preference(pc.Preference)
	}

	for _, cc := range cfg.Caps {
		in.Caps[model.CapKey{Worker: cc.Worker, Hospital: cc.Hospital}] = cc.Max
	}

	return in, nil
}

// engineOptions merges the scenario's engine section over the defaults.
func (cfg *Config) engineOptions() engine.Options {
	opts := engine.DefaultOptions()

	ec := cfg.Engine
	if ec.MinNightGap != nil {
		opts.MinNightGap = *ec.MinNightGap
	}
	if ec.SoftNightWindow != nil {
		opts.SoftNightWindow = *ec.SoftNightWindow
	}
	if ec.Weights.NightSpacing != nil {
		opts.Weights.NightSpacing = *ec.Weights.NightSpacing
	}
	if ec.Weights.NightPlusRemote != nil {
		opts.Weights.NightPlusRemote = *ec.Weights.NightPlusRemote
	}
	if ec.Weights.NightDeviation != nil {
		opts.Weights.NightDeviation = *ec.Weights.NightDeviation
	}
	if ec.Weights.WeekdayBalance != nil {
		opts.Weights.WeekdayBalance = *ec.Weights.WeekdayBalance
	}
	if ec.Weights.DutyAfterNight != nil {
		opts.Weights.DutyAfterNight = *ec.Weights.DutyAfterNight
	}
	if ec.Weights.Desired != nil {
		opts.Weights.Desired = *ec.Weights.Desired
	}
	if ec.Weights.Available != nil {
		opts.Weights.Available = *ec.Weights.Available
	}
	opts.EnabledRules = ec.EnabledRules
	if ec.TimeLimitSeconds > 0 {
		opts.SolverTimeLimit = time.Duration(ec.TimeLimitSeconds * float64(time.Second))
	}

	return opts
}

// expandRRule evaluates a recurrence against the month and returns the
// matching dates.
func expandRRule(raw string, monthStart, monthEnd time.Time) ([]model.Date, error) {
	rule, err := rrule.StrToRRule(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule: %w", err)
	}
	rule.DTStart(monthStart)

	var dates []model.Date
	for _, occurrence := range rule.Between(monthStart, monthEnd, true) {
		dates = append(dates, model.DateOf(occurrence))
	}
	return dates, nil
}

var weekdayNames = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	var weekdays []time.Weekday
	for _, name := range names {
		weekday, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("invalid weekday %q", name)
		}
		weekdays = append(weekdays, weekday)
	}
	return weekdays, nil
}

// findConfigFile searches for the scenario file in the current directory
// and the home directory. If env is provided, it is added as an extension
// (e.g. "roster_config.test.yaml").
func findConfigFile(env string) (string, error) {
	configFileName := "roster_config.yaml"
	if env != "" {
		configFileName = "roster_config." + env + ".yaml"
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
