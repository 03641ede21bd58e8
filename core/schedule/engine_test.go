package schedule

import (
	"testing"
	"time"
)

var tz = time.UTC

func mkTime(hour, min int) time.Time {
	return time.Date(2021, time.March, 15, hour, min, 0, 0, tz)
}

func mkSession(id string, start time.Time, end *time.Time) Session {
	return Session{ID: id, RoomID: "r1", StartTime: start, EndTime: end}
}

func timePtr(t time.Time) *time.Time { return &t }

func Test_Interval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{
			name: "disjoint",
			a:    Interval{mkTime(9, 0), mkTime(10, 0)},
			b:    Interval{mkTime(11, 0), mkTime(12, 0)},
		},
		{
			name: "back-to-back do not overlap",
			a:    Interval{mkTime(9, 0), mkTime(10, 30)},
			b:    Interval{mkTime(10, 30), mkTime(11, 30)},
		},
		{
			name: "partial overlap",
			a:    Interval{mkTime(9, 0), mkTime(10, 30)},
			b:    Interval{mkTime(10, 0), mkTime(11, 0)},
			want: true,
		},
		{
			name: "identical intervals",
			a:    Interval{mkTime(9, 0), mkTime(10, 30)},
			b:    Interval{mkTime(9, 0), mkTime(10, 30)},
			want: true,
		},
		{
			name: "containment",
			a:    Interval{mkTime(9, 0), mkTime(12, 0)},
			b:    Interval{mkTime(10, 0), mkTime(11, 0)},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// symmetry
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Session_EffectiveEnd(t *testing.T) {
	explicit := mkSession("s1", mkTime(9, 0), timePtr(mkTime(11, 0)))
	if got := explicit.EffectiveEnd(); !got.Equal(mkTime(11, 0)) {
		t.Errorf("EffectiveEnd() = %v, want %v", got, mkTime(11, 0))
	}

	open := mkSession("s2", mkTime(9, 0), nil)
	if got := open.EffectiveEnd(); !got.Equal(mkTime(10, 30)) {
		t.Errorf("EffectiveEnd() = %v, want %v (start + %v)", got, mkTime(10, 30), DefaultSessionDuration)
	}
}

func Test_Session_OccupiedAt(t *testing.T) {
	s := mkSession("s1", mkTime(9, 0), nil) // effective end 10:30

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "before start", now: mkTime(8, 59)},
		{name: "at start", now: mkTime(9, 0), want: true},
		{name: "mid-session", now: mkTime(9, 45), want: true},
		{name: "at effective end", now: mkTime(10, 30), want: true}, // closed end
		{name: "after effective end", now: mkTime(10, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.OccupiedAt(tt.now); got != tt.want {
				t.Errorf("OccupiedAt(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}

	// Boundary asymmetry: at the exact effective end the room still reads as
	// occupied, yet a new booking starting right then does not conflict.
	next := NewInterval(mkTime(10, 30), nil)
	if res := CheckAvailability(next, []Session{s}); !res.Available {
		t.Error("CheckAvailability() at effective end = unavailable, want available")
	}
	if !s.OccupiedAt(mkTime(10, 30)) {
		t.Error("OccupiedAt() at effective end = false, want true")
	}
}

func Test_CheckAvailability(t *testing.T) {
	// the room's day: 09:00-10:30 explicit, 13:00 open-ended (effective 14:30)
	day := []Session{
		mkSession("s1", mkTime(9, 0), timePtr(mkTime(10, 30))),
		mkSession("s2", mkTime(13, 0), nil),
	}

	tests := []struct {
		name          string
		start         time.Time
		end           *time.Time
		sessions      []Session
		excludeIDs    []string
		wantAvailable bool
		wantConflicts []string
	}{
		{
			name:          "empty day",
			start:         mkTime(9, 0),
			wantAvailable: true,
		},
		{
			name:          "overlap with explicit end",
			start:         mkTime(10, 0),
			end:           timePtr(mkTime(11, 0)),
			sessions:      day,
			wantConflicts: []string{"s1"},
		},
		{
			name:          "back-to-back is available",
			start:         mkTime(10, 30),
			end:           timePtr(mkTime(11, 30)),
			sessions:      day,
			wantAvailable: true,
		},
		{
			name:          "default duration counts against the open-ended session",
			start:         mkTime(13, 45),
			end:           timePtr(mkTime(14, 0)),
			sessions:      day,
			wantConflicts: []string{"s2"},
		},
		{
			name:          "open-ended proposal uses default duration",
			start:         mkTime(12, 0), // effective 13:30, hits s2
			sessions:      day,
			wantConflicts: []string{"s2"},
		},
		{
			name:          "all conflicts collected",
			start:         mkTime(9, 30),
			end:           timePtr(mkTime(14, 0)),
			sessions:      day,
			wantConflicts: []string{"s1", "s2"},
		},
		{
			name:          "excluded session is skipped",
			start:         mkTime(9, 0),
			end:           timePtr(mkTime(10, 30)),
			sessions:      day,
			excludeIDs:    []string{"s1"},
			wantAvailable: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposed := NewInterval(tt.start, tt.end)
			res := CheckAvailability(proposed, tt.sessions, tt.excludeIDs...)

			if res.Available != tt.wantAvailable {
				t.Errorf("Available = %v, want %v", res.Available, tt.wantAvailable)
			}
			if !res.Requested.Start.Equal(proposed.Start) || !res.Requested.End.Equal(proposed.End) {
				t.Errorf("Requested = %+v, want %+v", res.Requested, proposed)
			}
			if len(res.Conflicts) != len(tt.wantConflicts) {
				t.Fatalf("len(Conflicts) = %d, want %d", len(res.Conflicts), len(tt.wantConflicts))
			}
			for i, id := range tt.wantConflicts {
				if res.Conflicts[i].ID != id {
					t.Errorf("Conflicts[%d].ID = %s, want %s", i, res.Conflicts[i].ID, id)
				}
			}
		})
	}
}

func Test_CheckAvailability_pure(t *testing.T) {
	sessions := []Session{
		mkSession("s1", mkTime(9, 0), timePtr(mkTime(10, 30))),
		mkSession("s2", mkTime(13, 0), nil),
	}
	proposed := NewInterval(mkTime(10, 0), timePtr(mkTime(11, 0)))

	first := CheckAvailability(proposed, sessions)
	second := CheckAvailability(proposed, sessions)

	if first.Available != second.Available || len(first.Conflicts) != len(second.Conflicts) {
		t.Error("CheckAvailability() is not idempotent")
	}
	if !sessions[0].StartTime.Equal(mkTime(9, 0)) || sessions[1].EndTime != nil {
		t.Error("CheckAvailability() mutated its inputs")
	}
}

func Test_OccupiedAt_anyMatch(t *testing.T) {
	sessions := []Session{
		mkSession("s1", mkTime(9, 0), timePtr(mkTime(10, 0))),
		mkSession("s2", mkTime(14, 0), nil),
	}
	if !OccupiedAt(sessions, mkTime(9, 30)) {
		t.Error("OccupiedAt() = false during first session, want true")
	}
	if !OccupiedAt(sessions, mkTime(15, 0)) {
		t.Error("OccupiedAt() = false during open-ended session, want true")
	}
	if OccupiedAt(sessions, mkTime(12, 0)) {
		t.Error("OccupiedAt() = true between sessions, want false")
	}
	if OccupiedAt(nil, mkTime(12, 0)) {
		t.Error("OccupiedAt() = true with no sessions, want false")
	}
}

func Test_DayWindow(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Lubumbashi")
	if err != nil {
		t.Fatal(err)
	}
	in := time.Date(2021, time.March, 15, 14, 23, 5, 123, loc)

	start, end := DayWindow(in)

	wantStart := time.Date(2021, time.March, 15, 0, 0, 0, 0, loc)
	wantEnd := time.Date(2021, time.March, 15, 23, 59, 59, int(999*time.Millisecond), loc)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
	if start.Location() != loc || end.Location() != loc {
		t.Error("DayWindow() did not preserve the input location")
	}
}
