// Package interval provides the half-open integer range that flows through
// the almanac pipeline.
package interval

import (
	"fmt"
	"iter"
	"math"

	"github.com/FocuswithJustin/almanac/core/errors"
)

// Interval is the half-open range [Start, End). A valid interval has
// 0 <= Start < End. The zero value is empty and therefore invalid.
type Interval struct {
	Start int64
	End   int64
}

// New returns the interval [start, start+length).
func New(start, length int64) (Interval, error) {
	if start < 0 {
		return Interval{}, errors.NewValidationValue("interval start", fmt.Sprint(start), "must not be negative")
	}
	if length <= 0 {
		return Interval{}, errors.NewValidationValue("interval length", fmt.Sprint(length), "must be positive")
	}
	if start > math.MaxInt64-length {
		return Interval{}, errors.NewValidationValue("interval", fmt.Sprintf("%d+%d", start, length), "end overflows int64")
	}
	return Interval{Start: start, End: start + length}, nil
}

// Len returns the number of integers in the interval.
func (iv Interval) Len() int64 {
	return iv.End - iv.Start
}

// Validate reports whether the interval may enter the pipeline.
func (iv Interval) Validate() error {
	if iv.Start < 0 {
		return errors.NewValidationValue("interval", iv.String(), "start must not be negative")
	}
	if iv.End <= iv.Start {
		return errors.NewValidationValue("interval", iv.String(), "length must be positive")
	}
	return nil
}

// Contains reports whether v lies in the interval.
func (iv Interval) Contains(v int64) bool {
	return v >= iv.Start && v < iv.End
}

// Intersect returns the overlap of iv and other. ok is false when they are disjoint.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	start := max(iv.Start, other.Start)
	end := min(iv.End, other.End)
	if start >= end {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Shift moves both endpoints by offset.
func (iv Interval) Shift(offset int64) Interval {
	return Interval{Start: iv.Start + offset, End: iv.End + offset}
}

// Values yields every member of the interval in ascending order.
func (iv Interval) Values() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for v := iv.Start; v < iv.End; v++ {
			if !yield(v) {
				return
			}
		}
	}
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.Start, iv.End)
}
