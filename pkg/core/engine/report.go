package engine

import "sort"

// RuleTotal aggregates the penalty mass one rule contributed.
type RuleTotal struct {
	Source string
	Total  float64
	Count  int
}

// MetaTotal aggregates penalty mass by one metadata value.
type MetaTotal struct {
	Value string
	Total float64
	Count int
}

// Report is the explainability summary of a solve: total penalty, per-rule
// totals in descending order, and the largest individual items.
type Report struct {
	TotalPenalty float64
	PerRule      []RuleTotal
	TopItems     []ResolvedPenalty
}

// BuildReport aggregates resolved penalties by source rule and picks the
// topN costliest individual items. Items with zero cost are excluded from
// the top list but counted in the totals.
func BuildReport(penalties []ResolvedPenalty, topN int) Report {
	report := Report{}

	totals := make(map[string]*RuleTotal)
	var order []string
	for _, item := range penalties {
		report.TotalPenalty += item.Cost()
		total, ok := totals[item.Source]
		if !ok {
			total = &RuleTotal{Source: item.Source}
			totals[item.Source] = total
			order = append(order, item.Source)
		}
		total.Total += item.Cost()
		total.Count++
	}

	for _, source := range order {
		report.PerRule = append(report.PerRule, *totals[source])
	}
	sort.SliceStable(report.PerRule, func(i, j int) bool {
		return report.PerRule[i].Total > report.PerRule[j].Total
	})

	var nonZero []ResolvedPenalty
	for _, item := range penalties {
		if item.Cost() > 0 {
			nonZero = append(nonZero, item)
		}
	}
	sort.SliceStable(nonZero, func(i, j int) bool {
		return nonZero[i].Cost() > nonZero[j].Cost()
	})
	if topN > 0 && len(nonZero) > topN {
		nonZero = nonZero[:topN]
	}
	report.TopItems = nonZero

	return report
}

// GroupByMeta aggregates penalty cost by the given metadata field. Items
// without the field are grouped under the empty string. Results are in
// descending total order.
func GroupByMeta(penalties []ResolvedPenalty, field string) []MetaTotal {
	totals := make(map[string]*MetaTotal)
	var order []string
	for _, item := range penalties {
		value := item.Meta[field]
		total, ok := totals[value]
		if !ok {
			total = &MetaTotal{Value: value}
			totals[value] = total
			order = append(order, value)
		}
		total.Total += item.Cost()
		total.Count++
	}

	result := make([]MetaTotal, 0, len(order))
	for _, value := range order {
		result = append(result, *totals[value])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})
	return result
}
