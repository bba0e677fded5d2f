package adapter

import (
	"fmt"
	"hash/fnv"

	"study-track/internal/domain"
)

// SyntheticRankGenerator produces deterministic filler leaderboard entries
// for ranks no real user occupies. Points decrease strictly with rank: the
// per-rank noise is hashed from the rank itself and stays below the
// decrement, so two calls for the same rank always agree and a lower rank
// never shows fewer points than a higher one.
type SyntheticRankGenerator struct {
	basePoints int
	decrement  int
	noise      int
}

// NewSyntheticRankGenerator creates a generator. Noise is capped below the
// decrement to preserve monotonicity.
func NewSyntheticRankGenerator(basePoints, decrement, noise int) domain.SyntheticRankGenerator {
	if decrement < 1 {
		decrement = 1
	}
	if noise >= decrement {
		noise = decrement - 1
	}
	if noise < 0 {
		noise = 0
	}
	return &SyntheticRankGenerator{
		basePoints: basePoints,
		decrement:  decrement,
		noise:      noise,
	}
}

// Entry returns the synthetic entry for a 1-based rank.
func (g *SyntheticRankGenerator) Entry(rank int) domain.LeaderboardEntry {
	points := g.basePoints - rank*g.decrement + g.noiseFor(rank)
	if points < 0 {
		points = 0
	}
	return domain.LeaderboardEntry{
		Username:  fmt.Sprintf("Learner %d", rank),
		Points:    points,
		Rank:      rank,
		Synthetic: true,
	}
}

func (g *SyntheticRankGenerator) noiseFor(rank int) int {
	if g.noise == 0 {
		return 0
	}
	h := fnv.New32a()
	fmt.Fprintf(h, "rank:%d", rank)
	return int(h.Sum32() % uint32(g.noise+1))
}
