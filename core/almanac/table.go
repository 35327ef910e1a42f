package almanac

import (
	"slices"
	"sort"

	"github.com/FocuswithJustin/almanac/core/interval"
)

// Table is one stage of the pipeline. Rule source intervals are assumed to be
// disjoint; overlapping rules are not detected.
type Table struct {
	name  string
	rules []Rule // sorted by Source.Start
}

// Segment is a piece of an interval resolved by at most one rule.
// A nil Rule means the piece passes through unchanged.
type Segment struct {
	Source interval.Interval
	Rule   *Rule
}

// Translate returns the segment's image in the next stage.
func (s Segment) Translate() interval.Interval {
	if s.Rule == nil {
		return s.Source
	}
	return s.Source.Shift(s.Rule.Offset())
}

// NewTable copies rules into an immutable table.
func NewTable(name string, rules []Rule) *Table {
	sorted := slices.Clone(rules)
	slices.SortFunc(sorted, func(a, b Rule) int {
		switch {
		case a.Source.Start < b.Source.Start:
			return -1
		case a.Source.Start > b.Source.Start:
			return 1
		}
		return 0
	})
	return &Table{name: name, rules: sorted}
}

// Name is the header name without the " map:" suffix, e.g. "seed-to-soil".
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// firstEndingAfter returns the index of the first rule whose source ends after v.
func (t *Table) firstEndingAfter(v int64) int {
	return sort.Search(len(t.rules), func(i int) bool {
		return t.rules[i].Source.End > v
	})
}

// Lookup translates v through the table. Values no rule covers are returned
// unchanged.
func (t *Table) Lookup(v int64) int64 {
	i := t.firstEndingAfter(v)
	if i < len(t.rules) {
		if out, ok := t.rules[i].Apply(v); ok {
			return out
		}
	}
	return v
}

// Split partitions iv at rule boundaries. The segments are ascending,
// contiguous and together cover iv exactly.
func (t *Table) Split(iv interval.Interval) []Segment {
	var segments []Segment
	cursor := iv.Start
	for i := t.firstEndingAfter(iv.Start); i < len(t.rules) && cursor < iv.End; i++ {
		r := &t.rules[i]
		if r.Source.Start >= iv.End {
			break
		}
		overlap, ok := r.Source.Intersect(interval.Interval{Start: cursor, End: iv.End})
		if !ok {
			continue
		}
		if overlap.Start > cursor {
			segments = append(segments, Segment{Source: interval.Interval{Start: cursor, End: overlap.Start}})
		}
		segments = append(segments, Segment{Source: overlap, Rule: r})
		cursor = overlap.End
	}
	if cursor < iv.End {
		segments = append(segments, Segment{Source: interval.Interval{Start: cursor, End: iv.End}})
	}
	return segments
}

// MapInterval splits iv and translates every segment whole.
func (t *Table) MapInterval(iv interval.Interval) []interval.Interval {
	segments := t.Split(iv)
	out := make([]interval.Interval, len(segments))
	for i, s := range segments {
		out[i] = s.Translate()
	}
	return out
}
