package domain

import (
	"sort"
	"time"
)

// StreakFamily names an independently tracked streak. Logins and study
// sessions share the same record shape but never mix days.
type StreakFamily string

const (
	StreakFamilyLogin StreakFamily = "login"
	StreakFamilyStudy StreakFamily = "study"
)

// StreakAnchor controls how the current streak is interpreted.
type StreakAnchor int

const (
	// AnchorToday requires the trailing run to include today or yesterday
	// relative to the evaluation instant; a stale run yields current = 0.
	AnchorToday StreakAnchor = iota
	// AnchorNone treats the trailing run as current regardless of how long
	// ago it ended. Used for historical/retrospective evaluation.
	AnchorNone
)

// StreakSummary is the result of a streak computation.
type StreakSummary struct {
	Current int
	Longest int
}

// StreakRecord is the persisted streak state for one (user, family) pair.
// Invariant: Longest >= Current at all times.
type StreakRecord struct {
	ID               string
	UserID           string
	Family           StreakFamily
	CurrentStreak    int
	LongestStreak    int
	LastActivityDate time.Time
}

// ComputeStreak turns a set of activity timestamps into current/longest
// consecutive-day streaks. Timestamps are deduplicated to UTC calendar days
// first, so repeated activity on one day never changes the result.
//
// Longest is the longest run of day-consecutive entries anywhere in the
// history. Current is the length of the trailing run; with AnchorToday it is
// zero unless that run reaches today or yesterday relative to now.
//
// The function is pure: no I/O, deterministic for a given (times, now) pair.
func ComputeStreak(times []time.Time, now time.Time, anchor StreakAnchor) StreakSummary {
	days := uniqueDaysUTC(times)
	if len(days) == 0 {
		return StreakSummary{}
	}

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	// run now holds the length of the trailing run.
	current := run
	if anchor == AnchorToday {
		today := dayUTC(now)
		last := days[len(days)-1]
		if today.Sub(last) > 24*time.Hour {
			current = 0
		}
	}

	return StreakSummary{Current: current, Longest: longest}
}

// dayUTC truncates a timestamp to UTC midnight.
func dayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// uniqueDaysUTC deduplicates timestamps to calendar days and sorts ascending.
func uniqueDaysUTC(times []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(times))
	days := make([]time.Time, 0, len(times))
	for _, t := range times {
		d := dayUTC(t)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// StreakLevel maps a current streak to the display tier and next milestone.
// Thresholds follow the tracker surface: bronze below 7, silver below 14,
// gold below 30, platinum from 30 on.
func StreakLevel(current int) (level string, nextMilestone int) {
	switch {
	case current >= 30:
		return "platinum", 50
	case current >= 14:
		return "gold", 30
	case current >= 7:
		return "silver", 14
	case current >= 3:
		return "bronze", 7
	default:
		return "bronze", 3
	}
}
