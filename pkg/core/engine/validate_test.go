package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radiol/optiroster/pkg/core/model"
)

func validHospitals() []model.Hospital {
	return []model.Hospital{{
		Name: "H1",
		Demands: []model.DemandRule{{
			Shift:     model.ShiftNight,
			Weekdays:  []time.Weekday{time.Friday},
			Frequency: model.FrequencyWeekly,
		}},
	}}
}

func validWorkers() []model.Worker {
	return []model.Worker{{
		Name: "W1",
		Rules: []model.AssignmentRule{{
			Hospital: "H1",
			Weekdays: []time.Weekday{time.Friday},
			Shift:    model.ShiftNight,
		}},
	}}
}

func TestValidateInputs_Valid(t *testing.T) {
	err := ValidateInputs(validHospitals(), validWorkers(), nil, nil, nil)
	assert.NoError(t, err)
}

func TestValidateInputs_DomainErrors(t *testing.T) {
	tests := []struct {
		name      string
		hospitals []model.Hospital
		workers   []model.Worker
		specified []model.SpecifiedDay
	}{
		{
			name:      "duplicate hospital name",
			hospitals: append(validHospitals(), model.Hospital{Name: "H1"}),
			workers:   validWorkers(),
		},
		{
			name:      "duplicate worker name",
			hospitals: validHospitals(),
			workers:   append(validWorkers(), model.Worker{Name: "W1"}),
		},
		{
			name:      "assignment rule references unknown hospital",
			hospitals: validHospitals(),
			workers: []model.Worker{{
				Name:  "W1",
				Rules: []model.AssignmentRule{{Hospital: "H9", Shift: model.ShiftNight}},
			}},
		},
		{
			name:      "specified day references unknown hospital",
			hospitals: validHospitals(),
			workers:   validWorkers(),
			specified: []model.SpecifiedDay{{Hospital: "H9", Date: model.NewDate(2025, time.October, 3), Shift: model.ShiftNight}},
		},
		{
			name: "demand rule without dates",
			hospitals: []model.Hospital{{
				Name:    "H1",
				Demands: []model.DemandRule{{Shift: model.ShiftNight, Frequency: model.FrequencySpecificDays}},
			}},
			workers: validWorkers(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputs(tt.hospitals, tt.workers, tt.specified, nil, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDomainValidation)
		})
	}
}

func TestValidateInputs_ConfigErrors(t *testing.T) {
	date := model.NewDate(2025, time.October, 3)

	t.Run("preference references unknown worker", func(t *testing.T) {
		prefs := model.PreferenceMap{
			{Worker: "W9", Date: date, Shift: model.ShiftNight}: model.PreferenceDesired,
		}
		err := ValidateInputs(validHospitals(), validWorkers(), nil, prefs, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfig)
	})

	t.Run("cap references unknown hospital", func(t *testing.T) {
		caps := model.CapMap{{Worker: "W1", Hospital: "H9"}: 3}
		err := ValidateInputs(validHospitals(), validWorkers(), nil, nil, caps)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfig)
	})

	t.Run("negative cap", func(t *testing.T) {
		caps := model.CapMap{{Worker: "W1", Hospital: "H1"}: -1}
		err := ValidateInputs(validHospitals(), validWorkers(), nil, nil, caps)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfig)
	})
}

func TestNewSession_MissingContextKeyIsFatal(t *testing.T) {
	// The coverage rule requires required_coverage; an unpopulated field
	// is a configuration error before any rule applies.
	ctx := &Context{
		Days:      october(t, nil),
		Hospitals: validHospitals(),
		Workers:   validWorkers(),
		Options:   DefaultOptions(),
	}

	_, err := NewSession(ctx, &BuildResult{}, Registry(DefaultOptions()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}
