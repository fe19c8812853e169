// Package report assembles analysis results and changes into a single
// structure ready for rendering: per-kind metrics, conflicts ordered by
// descending severity, and the underlying change set. It adds no
// further logic of its own (per §4.10) beyond grouping and sorting.
package report

import (
	"sort"

	"github.com/jjkester/checkmerge/analysis"
	"github.com/jjkester/checkmerge/diff"
)

// Metric is a single named measurement, optionally with child metrics
// (e.g. a per-kind result count with max/avg severity children).
type Metric struct {
	Name     string
	Value    float64
	Children []Metric
}

// Report is the final output of an analysis run: a set of metrics, the
// conflicts found (sorted worst first), and the changes they stem from.
type Report struct {
	Metrics   []Metric
	Conflicts []analysis.Result
	Changes   []diff.Change
}

// Build groups results by kind into metrics, sorts conflicts by
// descending severity, and attaches the changes unchanged.
func Build(changes []diff.Change, results []analysis.Result) *Report {
	byKind := map[string][]analysis.Result{}
	for _, r := range results {
		byKind[r.Kind] = append(byKind[r.Kind], r)
	}

	kinds := make([]string, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	metrics := make([]Metric, 0, len(kinds))
	for _, kind := range kinds {
		metrics = append(metrics, resultMetric(kind, byKind[kind]))
	}

	conflicts := append([]analysis.Result(nil), results...)
	sort.SliceStable(conflicts, func(i, j int) bool {
		return conflicts[i].Severity > conflicts[j].Severity
	})

	return &Report{
		Metrics:   metrics,
		Conflicts: conflicts,
		Changes:   changes,
	}
}

// resultMetric builds the parent metric for one result kind: its count,
// with max-severity and avg-severity children.
func resultMetric(kind string, items []analysis.Result) Metric {
	var max, sum float64
	for i, r := range items {
		if i == 0 || r.Severity > max {
			max = r.Severity
		}
		sum += r.Severity
	}
	avg := 0.0
	if len(items) > 0 {
		avg = sum / float64(len(items))
	}

	return Metric{
		Name:  kind,
		Value: float64(len(items)),
		Children: []Metric{
			{Name: "max_severity", Value: max},
			{Name: "avg_severity", Value: avg},
		},
	}
}
