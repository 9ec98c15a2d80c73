package engine

import (
	"fmt"

	"github.com/radiol/optiroster/pkg/core/model"
)

// ValidateInputs checks the domain inputs before any solver work: unique
// hospital and worker names, valid enumeration values, and no references to
// unknown hospitals or workers.
func ValidateInputs(
	hospitals []model.Hospital,
	workers []model.Worker,
	specified []model.SpecifiedDay,
	preferences model.PreferenceMap,
	caps model.CapMap,
) error {
	hospitalNames := make(map[string]bool, len(hospitals))
	for _, hospital := range hospitals {
		if hospital.Name == "" {
			return fmt.Errorf("%w: hospital with empty name", ErrDomainValidation)
		}
		if hospitalNames[hospital.Name] {
			return fmt.Errorf("%w: duplicate hospital name %q", ErrDomainValidation, hospital.Name)
		}
		hospitalNames[hospital.Name] = true

		for i, rule := range hospital.Demands {
			if !rule.Shift.IsValid() {
				return fmt.Errorf("%w: hospital %q demand %d has invalid shift %q", ErrDomainValidation, hospital.Name, i, rule.Shift)
			}
			if !rule.Frequency.IsValid() {
				return fmt.Errorf("%w: hospital %q demand %d has invalid frequency %q", ErrDomainValidation, hospital.Name, i, rule.Frequency)
			}
			if rule.Frequency != model.FrequencyWeekly && len(rule.Dates) == 0 {
				return fmt.Errorf("%w: hospital %q demand %d has frequency %s but no dates", ErrDomainValidation, hospital.Name, i, rule.Frequency)
			}
		}
	}

	workerNames := make(map[string]bool, len(workers))
	for _, worker := range workers {
		if worker.Name == "" {
			return fmt.Errorf("%w: worker with empty name", ErrDomainValidation)
		}
		if workerNames[worker.Name] {
			return fmt.Errorf("%w: duplicate worker name %q", ErrDomainValidation, worker.Name)
		}
		workerNames[worker.Name] = true

		for i, rule := range worker.Rules {
			if !hospitalNames[rule.Hospital] {
				return fmt.Errorf("%w: worker %q rule %d references unknown hospital %q", ErrDomainValidation, worker.Name, i, rule.Hospital)
			}
			if !rule.Shift.IsValid() {
				return fmt.Errorf("%w: worker %q rule %d has invalid shift %q", ErrDomainValidation, worker.Name, i, rule.Shift)
			}
		}
	}

	for i, sd := range specified {
		if !hospitalNames[sd.Hospital] {
			return fmt.Errorf("%w: specified day %d references unknown hospital %q", ErrDomainValidation, i, sd.Hospital)
		}
		if !sd.Shift.IsValid() {
			return fmt.Errorf("%w: specified day %d has invalid shift %q", ErrDomainValidation, i, sd.Shift)
		}
	}

	for key, preference := range preferences {
		if !workerNames[key.Worker] {
			return fmt.Errorf("%w: preference references unknown worker %q", ErrConfig, key.Worker)
		}
		if !key.Shift.IsValid() {
			return fmt.Errorf("%w: preference for worker %q has invalid shift %q", ErrConfig, key.Worker, key.Shift)
		}
		if !preference.IsValid() {
			return fmt.Errorf("%w: preference for worker %q has invalid value %q", ErrConfig, key.Worker, preference)
		}
	}

	for key, cap := range caps {
		if !workerNames[key.Worker] {
			return fmt.Errorf("%w: cap references unknown worker %q", ErrConfig, key.Worker)
		}
		if !hospitalNames[key.Hospital] {
			return fmt.Errorf("%w: cap references unknown hospital %q", ErrConfig, key.Hospital)
		}
		if cap < 0 {
			return fmt.Errorf("%w: cap for worker %q at hospital %q must be non-negative, got %d", ErrConfig, key.Worker, key.Hospital, cap)
		}
	}

	return nil
}
