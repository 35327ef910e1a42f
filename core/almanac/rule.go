package almanac

import (
	"fmt"
	"math"

	"github.com/FocuswithJustin/almanac/core/errors"
	"github.com/FocuswithJustin/almanac/core/interval"
)

// Rule redirects every value of Source to the same position in the range
// starting at Dest.
type Rule struct {
	Source interval.Interval
	Dest   int64
}

// NewRule builds a rule from the "dest src len" triple of an almanac line.
func NewRule(dest, src, length int64) (Rule, error) {
	source, err := interval.New(src, length)
	if err != nil {
		return Rule{}, errors.Wrap(err, "rule source")
	}
	if dest < 0 {
		return Rule{}, errors.NewValidationValue("rule destination", fmt.Sprint(dest), "must not be negative")
	}
	if dest > math.MaxInt64-length {
		return Rule{}, errors.NewValidationValue("rule destination", fmt.Sprintf("%d+%d", dest, length), "end overflows int64")
	}
	return Rule{Source: source, Dest: dest}, nil
}

// Offset is the distance every matched value moves.
func (r Rule) Offset() int64 {
	return r.Dest - r.Source.Start
}

// Destination returns the range the source is redirected to.
func (r Rule) Destination() interval.Interval {
	return r.Source.Shift(r.Offset())
}

// Apply translates v when the rule's source contains it.
func (r Rule) Apply(v int64) (int64, bool) {
	if !r.Source.Contains(v) {
		return v, false
	}
	return v - r.Source.Start + r.Dest, true
}

func (r Rule) String() string {
	return fmt.Sprintf("%v -> %v", r.Source, r.Destination())
}
