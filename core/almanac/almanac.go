// Package almanac holds the parsed model of an almanac: the initial seeds or
// seed ranges and the ordered pipeline of category tables they are translated
// through. An Almanac is built once by Parse and never modified afterwards, so
// it may be shared freely between goroutines.
package almanac

import (
	"fmt"
	"slices"

	"github.com/FocuswithJustin/almanac/core/interval"
)

// Mode selects how the initial record is read.
type Mode int

const (
	// ModeIdentifiers reads the initial record as a flat list of seeds.
	ModeIdentifiers Mode = iota
	// ModeRanges reads the initial record as (start, length) pairs.
	ModeRanges
)

var modeNames = map[Mode]string{
	ModeIdentifiers: "ids",
	ModeRanges:      "ranges",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "ids" or "ranges" to a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (want ids or ranges)", s)
}

// Almanac is the immutable result of parsing.
type Almanac struct {
	mode   Mode
	seeds  []int64
	ranges []interval.Interval
	tables []*Table
}

// NewIdentifiers builds an almanac whose initial record is a list of seeds.
func NewIdentifiers(seeds []int64, tables []*Table) *Almanac {
	return &Almanac{
		mode:   ModeIdentifiers,
		seeds:  slices.Clone(seeds),
		tables: slices.Clone(tables),
	}
}

// NewRanges builds an almanac whose initial record is a list of seed ranges.
func NewRanges(ranges []interval.Interval, tables []*Table) *Almanac {
	return &Almanac{
		mode:   ModeRanges,
		ranges: slices.Clone(ranges),
		tables: slices.Clone(tables),
	}
}

// Mode reports how the initial record was read.
func (a *Almanac) Mode() Mode { return a.mode }

// Seeds returns the initial identifiers (ModeIdentifiers only).
func (a *Almanac) Seeds() []int64 { return slices.Clone(a.seeds) }

// Ranges returns the initial intervals (ModeRanges only).
func (a *Almanac) Ranges() []interval.Interval { return slices.Clone(a.ranges) }

// Tables returns the pipeline in declared order.
func (a *Almanac) Tables() []*Table { return slices.Clone(a.tables) }

// StageNames lists table names in pipeline order.
func (a *Almanac) StageNames() []string {
	names := make([]string, len(a.tables))
	for i, t := range a.tables {
		names[i] = t.Name()
	}
	return names
}
