package engine

import (
	"fmt"

	"github.com/radiol/optiroster/pkg/core/calendar"
	"github.com/radiol/optiroster/pkg/core/model"
)

// ContextKey names one field of the solve context that a rule may require.
type ContextKey string

const (
	CtxDays             ContextKey = "days"
	CtxHospitals        ContextKey = "hospitals"
	CtxWorkers          ContextKey = "workers"
	CtxRequiredCoverage ContextKey = "required_coverage"
	CtxPreferences      ContextKey = "preferences"
	CtxCaps             ContextKey = "caps"
	CtxOptions          ContextKey = "options"
)

// Context is the typed record of everything rules may consult. It replaces
// the string-keyed dictionary of earlier designs; missing-field checks run
// once, before any rule applies.
type Context struct {
	// Days is the ordered day sequence of the target month.
	Days []calendar.Day

	// Hospitals and Workers are the validated domain inputs.
	Hospitals []model.Hospital
	Workers   []model.Worker

	// RequiredCoverage is the expanded set of points that must each be
	// staffed by exactly one worker, in deterministic order.
	RequiredCoverage []model.CoveragePoint

	// Preferences are the explicit worker preference entries.
	Preferences model.PreferenceMap

	// Caps are the per-worker-per-hospital assignment caps.
	Caps model.CapMap

	// Options are the session options (gaps, weights, enabled rules).
	Options Options

	// HolidayOverlays maps hospital names to holiday-forcing dates from
	// SpecifiedDays, merged into that hospital's calendar view.
	HolidayOverlays map[string][]model.Date

	// Holidays is the externally provided public holiday table.
	Holidays calendar.HolidaySet

	hospitalsByName map[string]model.Hospital
}

// Has reports whether the named context field is populated.
func (c *Context) Has(key ContextKey) bool {
	switch key {
	case CtxDays:
		return len(c.Days) > 0
	case CtxHospitals:
		return c.Hospitals != nil
	case CtxWorkers:
		return c.Workers != nil
	case CtxRequiredCoverage:
		return c.RequiredCoverage != nil
	case CtxPreferences:
		return c.Preferences != nil
	case CtxCaps:
		return c.Caps != nil
	case CtxOptions:
		return true
	}
	return false
}

// Hospital looks up a hospital by name.
func (c *Context) Hospital(name string) (model.Hospital, bool) {
	if c.hospitalsByName == nil {
		c.hospitalsByName = make(map[string]model.Hospital, len(c.Hospitals))
		for _, h := range c.Hospitals {
			c.hospitalsByName[h.Name] = h
		}
	}
	h, ok := c.hospitalsByName[name]
	return h, ok
}

// DaysFor returns the day sequence as seen by one hospital: the month's
// days with any holiday-forcing SpecifiedDays of that hospital merged in.
func (c *Context) DaysFor(hospital string) []calendar.Day {
	overlay := c.HolidayOverlays[hospital]
	if len(overlay) == 0 {
		return c.Days
	}
	merged := c.Holidays.Merge(overlay)
	days, err := calendar.Month(c.Days[0].Date.Year, c.Days[0].Date.Month, merged)
	if err != nil {
		// The month was already built once; rebuilding with more
		// holidays cannot fail.
		return c.Days
	}
	return days
}

// validateRequirements checks that every enabled rule's required context
// fields are populated. A missing field is a fatal configuration error.
func validateRequirements(rules []Rule, ctx *Context) error {
	for _, rule := range rules {
		for _, key := range rule.Requires() {
			if !ctx.Has(key) {
				return fmt.Errorf("%w: rule %q requires context key %q which is not populated", ErrConfig, rule.Name(), key)
			}
		}
	}
	return nil
}
