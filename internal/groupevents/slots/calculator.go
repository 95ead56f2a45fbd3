// Package slots computes common free time slots for a set of participants
// from their aggregated busy intervals. The calculator is pure: identical
// inputs always produce identical, identically ordered output.
package slots

import (
	"fmt"

	"groupcal/pkg/interval"
	"groupcal/pkg/model"
)

// FindCommonFreeSlots returns every earliest-fit candidate slot of exactly
// durationMin minutes inside the day window, for each date of the period in
// ascending (date, start time) order.
//
// Busy intervals are grouped by date and merged across all participants: a
// minute is unavailable wherever any participant is busy. Each free gap of at
// least durationMin minutes yields one candidate [gap.start,
// gap.start+duration). A date with no busy intervals is a single gap spanning
// the whole window. An empty result means the period holds no qualifying gap.
//
// Adding busy time only ever removes feasible start minutes: every candidate
// returned under a busy set is still a free slot under any subset of it. The
// raw candidate count is not monotone, since a new block can split one gap
// into two qualifying gaps.
func FindCommonFreeSlots(period model.Period, busy []model.BusyInterval, durationMin int, window interval.Interval) ([]model.TimeSlot, error) {
	if durationMin <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", durationMin)
	}
	if window.Length() <= 0 || window.Start < 0 || window.End > interval.MinutesPerDay {
		return nil, fmt.Errorf("invalid day window [%d, %d)", window.Start, window.End)
	}

	dates, err := interval.DatesBetween(period.Start, period.End)
	if err != nil {
		return nil, err
	}

	busyByDate, err := groupBusyByDate(busy)
	if err != nil {
		return nil, err
	}

	var candidates []model.TimeSlot
	for _, date := range dates {
		merged := interval.Merge(busyByDate[date])
		for _, gap := range interval.Gaps(window, merged) {
			if gap.Length() < durationMin {
				continue
			}
			candidates = append(candidates, model.TimeSlot{
				Date:      date,
				StartTime: interval.FormatClock(gap.Start),
				EndTime:   interval.FormatClock(gap.Start + durationMin),
			})
		}
	}
	return candidates, nil
}

func groupBusyByDate(busy []model.BusyInterval) (map[string][]interval.Interval, error) {
	byDate := make(map[string][]interval.Interval, len(busy))
	for _, b := range busy {
		if _, err := interval.ParseDate(b.Date); err != nil {
			return nil, fmt.Errorf("busy interval has %w", err)
		}
		start, err := interval.ParseClock(b.StartTime)
		if err != nil {
			return nil, fmt.Errorf("busy interval on %s has %w", b.Date, err)
		}
		end, err := interval.ParseClock(b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("busy interval on %s has %w", b.Date, err)
		}
		if end <= start {
			return nil, fmt.Errorf("busy interval on %s ends at or before its start (%s >= %s)", b.Date, b.StartTime, b.EndTime)
		}
		byDate[b.Date] = append(byDate[b.Date], interval.Interval{Start: start, End: end})
	}
	return byDate, nil
}
