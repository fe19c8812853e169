package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jjkester/checkmerge/diff"
	"github.com/jjkester/checkmerge/report"
)

// renderChanges writes one line per change, indented to reflect nothing
// deeper than the flat edit script (§4.5 produces a flat list, unlike the
// teacher's nested Deltas tree, so there is exactly one indent level here).
func renderChanges(w io.Writer, changes []diff.Change) {
	for _, c := range changes {
		n := c.NonNull()
		loc := "?"
		if n.SourceRange != nil {
			loc = n.SourceRange.Start.String()
		}
		fmt.Fprintf(w, "  %s %s: %s\n", c.Operation, loc, n.Name())
	}
}

// renderReport writes a plain-text rendering of r: a metrics summary line
// per kind, followed by conflicts ordered worst-first, followed by the
// underlying changes. No ANSI color, unlike the teacher's FormatPretty.
func renderReport(w io.Writer, r *report.Report) {
	if len(r.Metrics) > 0 {
		fmt.Fprintln(w, "Metrics:")
		for _, m := range r.Metrics {
			renderMetric(w, m, 1)
		}
	}

	if len(r.Conflicts) > 0 {
		fmt.Fprintln(w, "Conflicts:")
		for _, c := range r.Conflicts {
			fmt.Fprintf(w, "  [%.1f] %s: %s\n", c.Severity, c.Kind, c.Name)
			if c.Description != "" {
				fmt.Fprintf(w, "    %s\n", c.Description)
			}
			for _, loc := range c.BaseLocations() {
				fmt.Fprintf(w, "    base:  %s\n", loc)
			}
			for _, loc := range c.OtherLocations() {
				fmt.Fprintf(w, "    other: %s\n", loc)
			}
		}
	} else {
		fmt.Fprintln(w, "Conflicts: none")
	}

	if len(r.Changes) > 0 {
		fmt.Fprintln(w, "Changes:")
		renderChanges(w, r.Changes)
	}
}

func renderMetric(w io.Writer, m report.Metric, indent int) {
	fmt.Fprintf(w, "%s%s: %v\n", strings.Repeat("  ", indent), m.Name, m.Value)
	for _, child := range m.Children {
		renderMetric(w, child, indent+1)
	}
}
