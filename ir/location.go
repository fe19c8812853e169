// Package ir defines the intermediate representation CheckMerge's diff and
// analysis engines operate on: an ordered tree of typed nodes augmented
// with a directed dependency graph.
package ir

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Location identifies a single point in source code. File may be empty when
// the origin is unknown or irrelevant; Column 0 denotes a full line.
type Location struct {
	File   string
	Line   uint
	Column uint
}

// String renders the location as "file:line:column".
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsLine reports whether this location denotes an entire line rather than a
// specific column.
func (l Location) IsLine() bool {
	return l.Column == 0
}

// Less orders locations lexicographically by (file, line, column) when both
// locations carry a file, falling back to (line, column) otherwise.
func (l Location) Less(other Location) bool {
	if l.File != "" && other.File != "" {
		if l.File != other.File {
			return l.File < other.File
		}
	}
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

// ParseLocation parses a "file:line:column" string produced by Location.String.
func ParseLocation(value string) (Location, error) {
	segments := strings.Split(value, ":")
	if len(segments) != 3 {
		return Location{}, fmt.Errorf("ir: invalid location string %q", value)
	}

	line, err := strconv.ParseUint(segments[1], 10, 64)
	if err != nil {
		return Location{}, fmt.Errorf("ir: invalid location string %q: %w", value, err)
	}
	column, err := strconv.ParseUint(segments[2], 10, 64)
	if err != nil {
		return Location{}, fmt.Errorf("ir: invalid location string %q: %w", value, err)
	}

	return Location{File: segments[0], Line: uint(line), Column: uint(column)}, nil
}

// Range is a half-open [Start, End) span of locations. Start and End must
// share the same File.
type Range struct {
	Start Location
	End   Location
}

// NewRange builds a Range, panicking if Start and End do not share a file.
// Both locations are produced by a single parse front-end, so a mismatch
// here is a bug in the caller, not recoverable input.
func NewRange(start, end Location) Range {
	if start.File != end.File {
		panic(fmt.Sprintf("ir: range start file %q does not match end file %q", start.File, end.File))
	}
	return Range{Start: start, End: end}
}

// Contains reports whether loc falls within this range.
func (r Range) Contains(loc Location) bool {
	return !loc.Less(r.Start) && loc.Less(r.End)
}

// Overlaps reports whether r and other share any location. Commutative.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Less(other.End) && other.Start.Less(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", r.Start.File, r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}

// Compress sorts ranges by start and folds overlapping ranges into their
// union. The result is deterministic and sorted by Start.
func Compress(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Less(sorted[j].Start)
	})

	result := []Range{sorted[0]}

	for _, higher := range sorted[1:] {
		lower := result[len(result)-1]

		if higher.Overlaps(lower) && lower.End.Less(higher.End) {
			result[len(result)-1] = Range{Start: lower.Start, End: higher.End}
		} else if !higher.Overlaps(lower) {
			result = append(result, higher)
		}
		// higher fully contained in lower: drop it.
	}

	return result
}
