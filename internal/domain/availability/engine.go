// Package availability computes free appointment start times for a single
// calendar day. All values are minutes since midnight of that day and every
// range is half-open: [Start, End).
package availability

import (
	"fmt"
	"sort"
	"time"
)

const (
	DefaultGranularity = 30
	MinutesPerDay      = 24 * 60
)

type Range struct {
	Start int
	End   int
}

func (r Range) Valid() bool {
	return r.Start < r.End
}

// Overlaps reports whether two half-open ranges intersect. Ranges that only
// touch (a.End == b.Start) do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && r.End > o.Start
}

func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

type Input struct {
	// Working ranges configured for the weekday.
	Windows []Range
	// Ranges taken by non-cancelled appointments.
	Occupied []Range

	Duration    int
	Granularity int

	// Candidates starting before this minute are dropped. Zero keeps all.
	NotBefore int
}

// Slots walks every window from its start in Granularity steps and keeps the
// candidates whose [c, c+Duration) stays inside the window and clears every
// occupied range. The result is ascending and free of duplicates.
func Slots(in Input) []int {
	if in.Duration <= 0 {
		return nil
	}

	step := in.Granularity
	if step <= 0 {
		step = DefaultGranularity
	}

	seen := make(map[int]struct{})
	out := make([]int, 0)

	for _, w := range in.Windows {
		if !w.Valid() {
			continue
		}

		for c := w.Start; c+in.Duration <= w.End; c += step {
			if c < in.NotBefore {
				continue
			}
			if overlapsAny(Range{Start: c, End: c + in.Duration}, in.Occupied) {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}

	sort.Ints(out)
	return out
}

// WithinWindows reports whether the candidate fits entirely inside one window.
func WithinWindows(candidate Range, windows []Range) bool {
	for _, w := range windows {
		if w.Valid() && w.Contains(candidate) {
			return true
		}
	}
	return false
}

func overlapsAny(candidate Range, occupied []Range) bool {
	for _, o := range occupied {
		if candidate.Overlaps(o) {
			return true
		}
	}
	return false
}

// ParseClock converts "HH:MM" into minutes since midnight. "24:00" is accepted
// as an end-of-day bound.
func ParseClock(hm string) (int, error) {
	if hm == "24:00" {
		return MinutesPerDay, nil
	}
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func FormatAll(minutes []int) []string {
	out := make([]string, 0, len(minutes))
	for _, m := range minutes {
		out = append(out, FormatClock(m))
	}
	return out
}

// MinuteOfDay returns the wall-clock minute of t on day, both read in day's
// location. It may be negative or exceed MinutesPerDay when t falls on
// another date. Wall-clock reading keeps DST days aligned with the
// configured working ranges.
func MinuteOfDay(day, t time.Time) int {
	loc := day.Location()
	local := t.In(loc)

	dayCivil := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	tCivil := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	days := int(tCivil.Sub(dayCivil) / (24 * time.Hour))

	return days*MinutesPerDay + local.Hour()*60 + local.Minute()
}

// HasOverlaps reports whether any two valid ranges intersect.
func HasOverlaps(ranges []Range) bool {
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			return true
		}
	}
	return false
}
