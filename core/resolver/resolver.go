// Package resolver translates seeds and seed ranges through an almanac's
// pipeline of tables and reduces the results to a minimum.
//
// Every function here is pure: tables are only read, and the result for one
// seed never depends on another. Callers may therefore fan work out across
// goroutines (see ParallelMin) without locking.
package resolver

import (
	"github.com/FocuswithJustin/almanac/core/almanac"
	"github.com/FocuswithJustin/almanac/core/errors"
)

// Resolve translates id through every table in order.
func Resolve(id int64, tables []*almanac.Table) int64 {
	for _, t := range tables {
		id = t.Lookup(id)
	}
	return id
}

// Path returns id followed by its value after each stage. The last element
// equals Resolve(id, tables).
func Path(id int64, tables []*almanac.Table) []int64 {
	path := make([]int64, 0, len(tables)+1)
	path = append(path, id)
	for _, t := range tables {
		id = t.Lookup(id)
		path = append(path, id)
	}
	return path
}

// MinIdentifiers returns the lowest resolved value over ids.
func MinIdentifiers(ids []int64, tables []*almanac.Table) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.NewValidation("seeds", "nothing to resolve")
	}
	best := Resolve(ids[0], tables)
	for _, id := range ids[1:] {
		best = min(best, Resolve(id, tables))
	}
	return best, nil
}
