// Package interval provides minute-granularity time arithmetic for busy and
// free windows within a single calendar day. All intervals are half-open
// [start, end) and expressed as minutes from midnight.
package interval

import (
	"fmt"
	"sort"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// MinutesPerDay is the exclusive upper bound of a day window; a clock
	// value of "24:00" maps to it.
	MinutesPerDay = 24 * 60
)

// Interval is a half-open [Start, End) range of minutes within one day.
type Interval struct {
	Start int
	End   int
}

func (iv Interval) Length() int {
	return iv.End - iv.Start
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

func (iv Interval) Contains(minute int) bool {
	return minute >= iv.Start && minute < iv.End
}

// ParseClock converts an HH:MM string to minutes from midnight. The hour must
// be zero-padded; "24:00" is accepted as the exclusive end of day.
func ParseClock(s string) (int, error) {
	if s == "24:00" {
		return MinutesPerDay, nil
	}
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock time %q: must be HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as HH:MM, with the end-of-day
// bound rendered as "24:00".
func FormatClock(minutes int) string {
	if minutes >= MinutesPerDay {
		return "24:00"
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// DatesBetween returns every date from start to end inclusive, in ascending
// order. Both bounds are YYYY-MM-DD strings with start <= end.
func DatesBetween(start, end string) ([]string, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, fmt.Errorf("period start %s is after end %s", start, end)
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// Merge sorts intervals by start and coalesces overlapping and adjacent ones
// (next.Start <= current.End). The input slice is not modified; degenerate
// intervals with End <= Start are dropped.
func Merge(intervals []Interval) []Interval {
	cleaned := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.End > iv.Start {
			cleaned = append(cleaned, iv)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}

	sort.Slice(cleaned, func(i, j int) bool {
		if cleaned[i].Start != cleaned[j].Start {
			return cleaned[i].Start < cleaned[j].Start
		}
		return cleaned[i].End < cleaned[j].End
	})

	merged := []Interval{cleaned[0]}
	for _, iv := range cleaned[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Gaps returns the free intervals of window not covered by busy. busy must be
// the output of Merge; intervals outside the window are clamped away.
func Gaps(window Interval, busy []Interval) []Interval {
	var gaps []Interval
	cursor := window.Start

	for _, iv := range busy {
		if iv.End <= window.Start || iv.Start >= window.End {
			continue
		}
		start := iv.Start
		if start < window.Start {
			start = window.Start
		}
		if start > cursor {
			gaps = append(gaps, Interval{Start: cursor, End: start})
		}
		if iv.End > cursor {
			cursor = iv.End
		}
	}

	if cursor < window.End {
		gaps = append(gaps, Interval{Start: cursor, End: window.End})
	}
	return gaps
}
