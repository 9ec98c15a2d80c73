package engine

import (
	"sort"
	"time"

	"github.com/radiol/optiroster/pkg/core/calendar"
	"github.com/radiol/optiroster/pkg/core/model"
)

// BuildResult is the output of the variable builder: the decision keys to
// materialize, the coverage set, and the infeasibility diagnostics computed
// alongside.
type BuildResult struct {
	// Keys are the VarKeys that survived both passes, in deterministic
	// (hospital, date, shift, worker) order.
	Keys []model.VarKey

	// RequiredCoverage are the points that must each be staffed by exactly
	// one worker, in deterministic order.
	RequiredCoverage []model.CoveragePoint

	// CandidateCount maps each coverage point to the number of workers
	// with a materialized variable on it.
	CandidateCount map[model.CoveragePoint]int

	// UncoverablePoints are coverage points with zero candidate workers.
	// A non-empty set makes the model infeasible.
	UncoverablePoints []model.CoveragePoint

	// ThinPoints are coverage points with at most one candidate worker.
	// When the solver reports infeasibility and no point is outright
	// uncoverable, these are the likely binding points.
	ThinPoints []model.CoveragePoint
}

// Diagnostics returns the coverage points to surface with an infeasibility
// report: the uncoverable points when any exist, the thin points otherwise.
func (b *BuildResult) Diagnostics() []model.CoveragePoint {
	if len(b.UncoverablePoints) > 0 {
		return b.UncoverablePoints
	}
	return b.ThinPoints
}

// BuildVariables materializes the feasible decision space by a two-pass
// sieve over the hospital x worker x date x shift product.
//
// Pass 1 elevates by workers: every (hospital, worker, date, shift) matching
// an assignment rule gets upper bound 1. Pass 2 restricts by hospitals: the
// demand rules and specified days expand into the required coverage set, and
// every key outside it drops back to upper bound 0. Pass 3 collects the
// surviving keys in deterministic order.
func BuildVariables(
	days []calendar.Day,
	hospitals []model.Hospital,
	workers []model.Worker,
	specified []model.SpecifiedDay,
	holidays calendar.HolidaySet,
) *BuildResult {
	// Pass 1: elevate by workers.
	elevated := make(map[model.VarKey]bool)
	for _, worker := range workers {
		for _, rule := range worker.Rules {
			for _, day := range days {
				if !weekdayIn(day.Weekday, rule.Weekdays) {
					continue
				}
				elevated[model.VarKey{
					Hospital: rule.Hospital,
					Worker:   worker.Name,
					Date:     day.Date,
					Shift:    rule.Shift,
				}] = true
			}
		}
	}

	// Pass 2: restrict by hospitals.
	coverage := expandCoverage(days, hospitals, specified, holidays)
	covered := make(map[model.CoveragePoint]bool, len(coverage))
	for _, p := range coverage {
		covered[p] = true
	}

	keys := make([]model.VarKey, 0, len(elevated))
	for key := range elevated {
		if covered[key.Point()] {
			keys = append(keys, key)
		}
	}

	// Pass 3: deterministic ordering for reproducible variable numbering.
	sort.Slice(keys, func(i, j int) bool {
		return lessVarKey(keys[i], keys[j])
	})

	result := &BuildResult{
		Keys:             keys,
		RequiredCoverage: coverage,
		CandidateCount:   make(map[model.CoveragePoint]int, len(coverage)),
	}
	for _, key := range keys {
		result.CandidateCount[key.Point()]++
	}
	for _, point := range coverage {
		count := result.CandidateCount[point]
		if count == 0 {
			result.UncoverablePoints = append(result.UncoverablePoints, point)
		}
		if count <= 1 {
			result.ThinPoints = append(result.ThinPoints, point)
		}
	}

	return result
}

// expandCoverage produces the required coverage set from the hospitals'
// demand rules and the specified days, in deterministic order.
//
// Frequency semantics: Weekly demand produces a point for every month date
// whose weekday is in the rule's set; Biweekly and SpecificDays produce
// points for the enumerated dates only. Non-night points on a holiday are
// suppressed unless re-enabled by a specified day. Within one hospital the
// first rule producing a (date, shift) pair wins.
func expandCoverage(
	days []calendar.Day,
	hospitals []model.Hospital,
	specified []model.SpecifiedDay,
	holidays calendar.HolidaySet,
) []model.CoveragePoint {
	inMonth := make(map[model.Date]bool, len(days))
	for _, day := range days {
		inMonth[day.Date] = true
	}

	var points []model.CoveragePoint
	seen := make(map[model.CoveragePoint]bool)

	add := func(p model.CoveragePoint) {
		if !seen[p] {
			seen[p] = true
			points = append(points, p)
		}
	}

	for _, hospital := range hospitals {
		// Holiday-forcing specified days extend this hospital's holiday
		// view before suppression is evaluated.
		hospitalHolidays := holidays
		var forced []model.Date
		for _, sd := range specified {
			if sd.Hospital == hospital.Name && sd.TreatAsHoliday {
				forced = append(forced, sd.Date)
			}
		}
		if len(forced) > 0 {
			hospitalHolidays = holidays.Merge(forced)
		}

		for _, rule := range hospital.Demands {
			for _, date := range demandDates(rule, days) {
				if rule.Shift != model.ShiftNight && hospitalHolidays.IsHoliday(date) {
					continue
				}
				add(model.CoveragePoint{Hospital: hospital.Name, Date: date, Shift: rule.Shift})
			}
		}
	}

	// Specified days force demand regardless of the weekly rules and the
	// holiday suppression above.
	for _, sd := range specified {
		if !inMonth[sd.Date] {
			continue
		}
		add(model.CoveragePoint{Hospital: sd.Hospital, Date: sd.Date, Shift: sd.Shift})
	}

	sort.Slice(points, func(i, j int) bool {
		return lessCoveragePoint(points[i], points[j])
	})
	return points
}

// demandDates expands one demand rule to its candidate dates within the
// month, before holiday suppression.
func demandDates(rule model.DemandRule, days []calendar.Day) []model.Date {
	var dates []model.Date
	switch rule.Frequency {
	case model.FrequencyWeekly:
		for _, day := range days {
			if weekdayIn(day.Weekday, rule.Weekdays) {
				dates = append(dates, day.Date)
			}
		}
	case model.FrequencyBiweekly, model.FrequencySpecificDays:
		inMonth := make(map[model.Date]bool, len(days))
		for _, day := range days {
			inMonth[day.Date] = true
		}
		for _, date := range rule.Dates {
			if inMonth[date] {
				dates = append(dates, date)
			}
		}
	}
	return dates
}

func weekdayIn(wd time.Weekday, set []time.Weekday) bool {
	for _, w := range set {
		if w == wd {
			return true
		}
	}
	return false
}

func lessVarKey(a, b model.VarKey) bool {
	if a.Hospital != b.Hospital {
		return a.Hospital < b.Hospital
	}
	if a.Date != b.Date {
		return a.Date.Before(b.Date)
	}
	if a.Shift != b.Shift {
		return a.Shift < b.Shift
	}
	return a.Worker < b.Worker
}

func lessCoveragePoint(a, b model.CoveragePoint) bool {
	if a.Hospital != b.Hospital {
		return a.Hospital < b.Hospital
	}
	if a.Date != b.Date {
		return a.Date.Before(b.Date)
	}
	return a.Shift < b.Shift
}
