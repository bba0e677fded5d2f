package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", s, err)
	}
	return d
}

func TestComputeStreak_Empty(t *testing.T) {
	now := time.Now().UTC()
	assert.Equal(t, StreakSummary{}, ComputeStreak(nil, now, AnchorToday))
	assert.Equal(t, StreakSummary{}, ComputeStreak([]time.Time{}, now, AnchorNone))
}

func TestComputeStreak_SingleDay(t *testing.T) {
	now := day(t, "2025-03-10").Add(15 * time.Hour)
	got := ComputeStreak([]time.Time{day(t, "2025-03-10").Add(9 * time.Hour)}, now, AnchorToday)
	assert.Equal(t, StreakSummary{Current: 1, Longest: 1}, got)
}

func TestComputeStreak_SameDayDuplicatesCountOnce(t *testing.T) {
	base := day(t, "2025-03-10")
	now := base.Add(20 * time.Hour)
	times := []time.Time{
		base.Add(8 * time.Hour),
		base.Add(9 * time.Hour),
		base.Add(23*time.Hour + 59*time.Minute),
	}
	got := ComputeStreak(times, now, AnchorToday)
	assert.Equal(t, StreakSummary{Current: 1, Longest: 1}, got)
}

func TestComputeStreak_ConsecutiveRun(t *testing.T) {
	now := day(t, "2025-03-14").Add(12 * time.Hour)
	times := []time.Time{
		day(t, "2025-03-10"),
		day(t, "2025-03-11"),
		day(t, "2025-03-12"),
		day(t, "2025-03-13"),
		day(t, "2025-03-14"),
	}
	got := ComputeStreak(times, now, AnchorToday)
	assert.Equal(t, StreakSummary{Current: 5, Longest: 5}, got)
}

func TestComputeStreak_GapResetsRun(t *testing.T) {
	now := day(t, "2025-03-20").Add(time.Hour)
	times := []time.Time{
		day(t, "2025-03-10"),
		day(t, "2025-03-11"),
		day(t, "2025-03-12"),
		// gap
		day(t, "2025-03-19"),
		day(t, "2025-03-20"),
	}
	got := ComputeStreak(times, now, AnchorToday)
	assert.Equal(t, 2, got.Current)
	assert.Equal(t, 3, got.Longest)
}

func TestComputeStreak_StaleRunYieldsZeroCurrent(t *testing.T) {
	now := day(t, "2025-03-20")
	times := []time.Time{
		day(t, "2025-03-01"),
		day(t, "2025-03-02"),
		day(t, "2025-03-03"),
	}
	anchored := ComputeStreak(times, now, AnchorToday)
	assert.Equal(t, 0, anchored.Current)
	assert.Equal(t, 3, anchored.Longest)

	unanchored := ComputeStreak(times, now, AnchorNone)
	assert.Equal(t, 3, unanchored.Current)
	assert.Equal(t, 3, unanchored.Longest)
}

func TestComputeStreak_YesterdayStillCurrent(t *testing.T) {
	now := day(t, "2025-03-13").Add(6 * time.Hour)
	times := []time.Time{
		day(t, "2025-03-10"),
		day(t, "2025-03-11"),
		day(t, "2025-03-12"), // yesterday relative to now
	}
	got := ComputeStreak(times, now, AnchorToday)
	assert.Equal(t, 3, got.Current)
}

func TestComputeStreak_UnsortedInput(t *testing.T) {
	now := day(t, "2025-03-12").Add(time.Hour)
	times := []time.Time{
		day(t, "2025-03-12"),
		day(t, "2025-03-10"),
		day(t, "2025-03-11"),
	}
	got := ComputeStreak(times, now, AnchorToday)
	assert.Equal(t, StreakSummary{Current: 3, Longest: 3}, got)
}

// Property-style checks over randomized date sets.
func TestComputeStreak_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := day(t, "2025-01-01")

	for i := 0; i < 200; i++ {
		n := rng.Intn(40)
		times := make([]time.Time, 0, n)
		for j := 0; j < n; j++ {
			offset := time.Duration(rng.Intn(60*24)) * time.Hour
			times = append(times, base.Add(offset))
		}
		now := base.Add(time.Duration(rng.Intn(70*24)) * time.Hour)

		got := ComputeStreak(times, now, AnchorToday)

		// longest >= current, always.
		assert.GreaterOrEqual(t, got.Longest, got.Current)
		assert.GreaterOrEqual(t, got.Current, 0)

		// Duplicating an existing timestamp never changes the result.
		if n > 0 {
			dup := append(append([]time.Time{}, times...), times[rng.Intn(n)])
			assert.Equal(t, got, ComputeStreak(dup, now, AnchorToday))
		}

		// AnchorNone current equals longest of the trailing run; it can only
		// be >= the anchored current.
		unanchored := ComputeStreak(times, now, AnchorNone)
		assert.GreaterOrEqual(t, unanchored.Current, got.Current)
		assert.Equal(t, got.Longest, unanchored.Longest)
	}
}

func TestComputeStreak_GapFreeSequenceProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	start := day(t, "2025-02-01")

	for i := 0; i < 50; i++ {
		n := 1 + rng.Intn(30)
		times := make([]time.Time, 0, n)
		for j := 0; j < n; j++ {
			times = append(times, start.AddDate(0, 0, j).Add(time.Duration(rng.Intn(24))*time.Hour))
		}
		now := times[len(times)-1]

		got := ComputeStreak(times, now, AnchorToday)
		assert.Equal(t, n, got.Current, "gap-free sequence of %d days", n)
		assert.Equal(t, n, got.Longest)
	}
}

func TestStreakLevel(t *testing.T) {
	cases := []struct {
		current   int
		level     string
		milestone int
	}{
		{0, "bronze", 3},
		{2, "bronze", 3},
		{3, "bronze", 7},
		{7, "silver", 14},
		{14, "gold", 30},
		{30, "platinum", 50},
		{45, "platinum", 50},
	}
	for _, c := range cases {
		level, milestone := StreakLevel(c.current)
		assert.Equal(t, c.level, level, "current=%d", c.current)
		assert.Equal(t, c.milestone, milestone, "current=%d", c.current)
	}
}
