package interval

import (
	"reflect"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:30", want: 570},
		{name: "end of day", input: "24:00", want: MinutesPerDay},
		{name: "last minute", input: "23:59", want: 1439},
		{name: "missing leading zero", input: "9:30", wantErr: true},
		{name: "missing minute digit", input: "09:5", wantErr: true},
		{name: "no separator", input: "0930", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseClock(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatClock_RoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 1, 60, 570, 1439, MinutesPerDay} {
		formatted := FormatClock(minutes)
		parsed, err := ParseClock(formatted)
		if err != nil {
			t.Fatalf("ParseClock(%q) failed: %v", formatted, err)
		}
		if parsed != minutes {
			t.Errorf("round trip of %d gave %d via %q", minutes, parsed, formatted)
		}
	}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{name: "disjoint", a: Interval{Start: 60, End: 120}, b: Interval{Start: 180, End: 240}, want: false},
		{name: "touching bounds", a: Interval{Start: 60, End: 120}, b: Interval{Start: 120, End: 180}, want: false},
		{name: "partial overlap", a: Interval{Start: 60, End: 150}, b: Interval{Start: 120, End: 180}, want: true},
		{name: "contained", a: Interval{Start: 0, End: MinutesPerDay}, b: Interval{Start: 540, End: 600}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestInterval_Contains(t *testing.T) {
	iv := Interval{Start: 540, End: 600}

	if !iv.Contains(540) {
		t.Error("start minute should be contained")
	}
	if iv.Contains(600) {
		t.Error("end minute should be excluded")
	}
	if iv.Contains(539) {
		t.Error("minute before start should be excluded")
	}
}

func TestDatesBetween(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    []string
		wantErr bool
	}{
		{
			name:  "single day",
			start: "2026-03-10",
			end:   "2026-03-10",
			want:  []string{"2026-03-10"},
		},
		{
			name:  "crosses month boundary",
			start: "2026-03-30",
			end:   "2026-04-02",
			want:  []string{"2026-03-30", "2026-03-31", "2026-04-01", "2026-04-02"},
		},
		{
			name:    "start after end",
			start:   "2026-03-11",
			end:     "2026-03-10",
			wantErr: true,
		},
		{
			name:    "malformed date",
			start:   "03/10/2026",
			end:     "2026-03-10",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DatesBetween(tt.start, tt.end)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DatesBetween() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		input []Interval
		want  []Interval
	}{
		{
			name:  "empty input",
			input: nil,
			want:  nil,
		},
		{
			name:  "disjoint intervals stay separate",
			input: []Interval{{Start: 600, End: 660}, {Start: 720, End: 780}},
			want:  []Interval{{Start: 600, End: 660}, {Start: 720, End: 780}},
		},
		{
			name:  "adjacent intervals coalesce",
			input: []Interval{{Start: 540, End: 600}, {Start: 600, End: 660}},
			want:  []Interval{{Start: 540, End: 660}},
		},
		{
			name:  "overlapping intervals coalesce",
			input: []Interval{{Start: 540, End: 630}, {Start: 600, End: 660}},
			want:  []Interval{{Start: 540, End: 660}},
		},
		{
			name:  "unsorted input",
			input: []Interval{{Start: 720, End: 780}, {Start: 540, End: 600}},
			want:  []Interval{{Start: 540, End: 600}, {Start: 720, End: 780}},
		},
		{
			name:  "contained interval absorbed",
			input: []Interval{{Start: 540, End: 720}, {Start: 570, End: 600}},
			want:  []Interval{{Start: 540, End: 720}},
		},
		{
			name:  "degenerate intervals dropped",
			input: []Interval{{Start: 600, End: 600}, {Start: 540, End: 570}},
			want:  []Interval{{Start: 540, End: 570}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGaps(t *testing.T) {
	fullDay := Interval{Start: 0, End: MinutesPerDay}

	tests := []struct {
		name   string
		window Interval
		busy   []Interval
		want   []Interval
	}{
		{
			name:   "no busy intervals yields whole window",
			window: fullDay,
			busy:   nil,
			want:   []Interval{fullDay},
		},
		{
			name:   "gap before, between and after",
			window: fullDay,
			busy:   []Interval{{Start: 540, End: 600}, {Start: 720, End: 780}},
			want: []Interval{
				{Start: 0, End: 540},
				{Start: 600, End: 720},
				{Start: 780, End: MinutesPerDay},
			},
		},
		{
			name:   "busy covering whole window leaves nothing",
			window: fullDay,
			busy:   []Interval{{Start: 0, End: MinutesPerDay}},
			want:   nil,
		},
		{
			name:   "busy outside window ignored",
			window: Interval{Start: 540, End: 1020},
			busy:   []Interval{{Start: 0, End: 480}, {Start: 1080, End: 1140}},
			want:   []Interval{{Start: 540, End: 1020}},
		},
		{
			name:   "busy straddling window start is clamped",
			window: Interval{Start: 540, End: 1020},
			busy:   []Interval{{Start: 480, End: 600}},
			want:   []Interval{{Start: 600, End: 1020}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Gaps(tt.window, tt.busy)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Gaps() = %v, want %v", got, tt.want)
			}
		})
	}
}
