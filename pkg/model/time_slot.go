package model

// BusyInterval is a half-open time range [start_time, end_time) on a single
// calendar date during which some participant is unavailable. Intervals never
// span midnight; dates are YYYY-MM-DD, clock times HH:MM with "24:00" allowed
// as an exclusive end.
type BusyInterval struct {
	Date      string `json:"date" bson:"date"`
	StartTime string `json:"start_time" bson:"start_time"`
	EndTime   string `json:"end_time" bson:"end_time"`
}

// TimeSlot is a recommended free window. Its length always equals the
// requested meeting duration; it is never persisted directly and becomes part
// of a GroupEvent only through the booking commit.
type TimeSlot struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Period is an inclusive date range used as the recommendation search space.
type Period struct {
	Start string `json:"start" validate:"required,event_date"`
	End   string `json:"end" validate:"required,event_date"`
}
