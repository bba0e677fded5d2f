package domain

// LeaderboardEntry is derived on read from users.total_points; it is never
// persisted. Synthetic marks a fabricated points value: either a generated
// filler entry, or a real user whose zero total was replaced with a display
// value. Synthetic points are presentation only and never written back to the
// points ledger.
type LeaderboardEntry struct {
	UserID    string
	Username  string
	Points    int
	Rank      int
	Synthetic bool
}

// LeaderboardPage is one requested rank window. Degraded is set when the
// backing query failed or returned nothing and the whole page was generated,
// so callers can distinguish the documented fallback from real data.
type LeaderboardPage struct {
	Scope    string
	Start    int
	End      int
	Entries  []LeaderboardEntry
	Degraded bool
}

// SyntheticRankGenerator fabricates deterministic leaderboard entries so the
// leaderboard surface never renders empty. Implementations must produce
// points that are monotonically non-increasing in rank. The seam exists so
// contexts where fabricated data is unacceptable can disable it.
type SyntheticRankGenerator interface {
	// Entry fabricates the entry for one rank.
	Entry(rank int) LeaderboardEntry
}
