package schedule

import "time"

// DefaultSessionDuration is the assumed length of a session without an explicit
// end time. It is the single source of the fallback; every interval computation
// goes through EffectiveEnd or NewInterval rather than re-deriving it.
const DefaultSessionDuration = 90 * time.Minute

// Interval is a candidate or effective booking window.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval builds an interval from a start and an optional explicit end,
// applying the default duration when the end is absent.
func NewInterval(start time.Time, end *time.Time) Interval {
	if end != nil {
		return Interval{Start: start, End: *end}
	}
	return Interval{Start: start, End: start.Add(DefaultSessionDuration)}
}

// Overlaps reports whether two half-open [start, end) intervals intersect.
// Back-to-back intervals (one ending exactly when the other starts) do NOT overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// EffectiveEnd returns the session's explicit end, or StartTime + DefaultSessionDuration.
func (s Session) EffectiveEnd() time.Time {
	if s.EndTime != nil {
		return *s.EndTime
	}
	return s.StartTime.Add(DefaultSessionDuration)
}

// Interval returns the session's effective occupied window.
func (s Session) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EffectiveEnd()}
}

// OccupiedAt reports whether the session occupies the room at `now`.
// The test is closed on BOTH ends: a room is still occupied at the exact
// effective end instant, even though Overlaps would let a new booking start
// right then. The asymmetry is deliberate; do not align the two.
func (s Session) OccupiedAt(now time.Time) bool {
	return !now.Before(s.StartTime) && !now.After(s.EffectiveEnd())
}

// AvailabilityResult is the outcome of a conflict check for a proposed interval.
type AvailabilityResult struct {
	Available bool
	Requested Interval
	Conflicts []Session
}

// CheckAvailability scans the supplied sessions for overlaps with the proposed
// interval and collects ALL conflicting sessions; callers need the full set for
// diagnostics. Sessions whose ID is in excludeIDs are skipped so that a session
// being moved is never reported as conflicting with itself.
// Pure: no mutation of inputs, deterministic, order-independent.
func CheckAvailability(proposed Interval, sessions []Session, excludeIDs ...string) AvailabilityResult {
	var conflicts []Session
	for _, s := range sessions {
		if excluded(s.ID, excludeIDs) {
			continue
		}
		if s.Interval().Overlaps(proposed) {
			conflicts = append(conflicts, s)
		}
	}
	return AvailabilityResult{
		Available: len(conflicts) == 0,
		Requested: proposed,
		Conflicts: conflicts,
	}
}

// OccupiedAt reports whether any of the sessions occupies its room at `now`.
func OccupiedAt(sessions []Session, now time.Time) bool {
	for _, s := range sessions {
		if s.OccupiedAt(now) {
			return true
		}
	}
	return false
}

// DayWindow returns the inclusive [00:00:00.000, 23:59:59.999] window of t's
// calendar day in t's location.
func DayWindow(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}

func excluded(id string, excludeIDs []string) bool {
	for _, exclID := range excludeIDs {
		if id == exclID {
			return true
		}
	}
	return false
}
