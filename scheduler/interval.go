package scheduler

import (
	"fmt"
	"time"
)

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsValid reports whether the range has positive length.
func (r TimeRange) IsValid() bool {
	return r.Start.Before(r.End)
}

// Overlaps reports whether r and o share at least one instant. Touching
// endpoints do not overlap under half-open semantics. This single predicate
// covers "starts during", "ends during" and "encompasses" alike.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Contains reports whether o lies entirely within r.
func (r TimeRange) Contains(o TimeRange) bool {
	return !o.Start.Before(r.Start) && !o.End.After(r.End)
}

// Subtract removes o from r, yielding zero, one or two sub-ranges.
func (r TimeRange) Subtract(o TimeRange) []TimeRange {
	if !r.Overlaps(o) {
		return []TimeRange{r}
	}

	var out []TimeRange
	if r.Start.Before(o.Start) {
		out = append(out, TimeRange{Start: r.Start, End: o.Start})
	}
	if o.End.Before(r.End) {
		out = append(out, TimeRange{Start: o.End, End: r.End})
	}
	return out
}

// SubtractAll removes every block from every range, preserving order.
func SubtractAll(ranges []TimeRange, blocks []TimeRange) []TimeRange {
	for _, block := range blocks {
		var next []TimeRange
		for _, r := range ranges {
			next = append(next, r.Subtract(block)...)
		}
		ranges = next
	}
	return ranges
}

// atClockTime places an "HH:MM" clock time onto the given calendar date in
// the date's location.
func atClockTime(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}
