package resolver

import (
	"github.com/FocuswithJustin/almanac/core/almanac"
	"github.com/FocuswithJustin/almanac/core/errors"
	"github.com/FocuswithJustin/almanac/core/interval"
)

// ResolveInterval translates iv through every table by interval splitting.
// The pieces produced by one stage feed the next as they are; they are
// neither merged nor deduplicated.
func ResolveInterval(iv interval.Interval, tables []*almanac.Table) ([]interval.Interval, error) {
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	current := []interval.Interval{iv}
	for _, t := range tables {
		next := make([]interval.Interval, 0, len(current))
		for _, piece := range current {
			next = append(next, t.MapInterval(piece)...)
		}
		current = next
	}
	return current, nil
}

// MinInterval returns the lowest value any member of iv resolves to.
func MinInterval(iv interval.Interval, tables []*almanac.Table) (int64, error) {
	pieces, err := ResolveInterval(iv, tables)
	if err != nil {
		return 0, err
	}
	best := pieces[0].Start
	for _, p := range pieces[1:] {
		best = min(best, p.Start)
	}
	return best, nil
}

// MinRanges returns the lowest resolved value over every member of every
// interval in ivs, using interval splitting.
func MinRanges(ivs []interval.Interval, tables []*almanac.Table) (int64, error) {
	return minOver(ivs, func(iv interval.Interval) (int64, error) {
		return MinInterval(iv, tables)
	})
}

// EnumerateMin resolves every member of iv one at a time. Its cost is linear
// in iv.Len(); it serves as a reference for MinInterval on small inputs.
func EnumerateMin(iv interval.Interval, tables []*almanac.Table) (int64, error) {
	if err := iv.Validate(); err != nil {
		return 0, err
	}
	return fold(iv, Resolve(iv.Start, tables), func(best, v int64) int64 {
		return min(best, Resolve(v, tables))
	}), nil
}

// MinRangesEnumerated is MinRanges computed by EnumerateMin.
func MinRangesEnumerated(ivs []interval.Interval, tables []*almanac.Table) (int64, error) {
	return minOver(ivs, func(iv interval.Interval) (int64, error) {
		return EnumerateMin(iv, tables)
	})
}

// fold threads acc through every member of iv.
func fold(iv interval.Interval, acc int64, step func(acc, v int64) int64) int64 {
	for v := range iv.Values() {
		acc = step(acc, v)
	}
	return acc
}

func minOver(ivs []interval.Interval, each func(interval.Interval) (int64, error)) (int64, error) {
	if len(ivs) == 0 {
		return 0, errors.NewValidation("seed ranges", "nothing to resolve")
	}
	var best int64
	for i, iv := range ivs {
		v, err := each(iv)
		if err != nil {
			return 0, errors.Wrapf(err, "seed range %d", i+1)
		}
		if i == 0 || v < best {
			best = v
		}
	}
	return best, nil
}
