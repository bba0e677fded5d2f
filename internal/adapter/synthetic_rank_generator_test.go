package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntheticRankGenerator_Deterministic(t *testing.T) {
	gen := NewSyntheticRankGenerator(1000, 50, 20)

	first := gen.Entry(7)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, gen.Entry(7))
	}
	assert.True(t, first.Synthetic)
	assert.Equal(t, 7, first.Rank)
	assert.NotEmpty(t, first.Username)
}

func TestSyntheticRankGenerator_MonotoneDecreasing(t *testing.T) {
	gen := NewSyntheticRankGenerator(1000, 50, 20)

	prev := gen.Entry(1).Points
	for rank := 2; rank <= 40; rank++ {
		points := gen.Entry(rank).Points
		assert.Less(t, points, prev, "rank %d must have fewer points than rank %d", rank, rank-1)
		prev = points
	}
}

func TestSyntheticRankGenerator_PointsNeverNegative(t *testing.T) {
	gen := NewSyntheticRankGenerator(100, 50, 20)

	for rank := 1; rank <= 10; rank++ {
		assert.GreaterOrEqual(t, gen.Entry(rank).Points, 0)
	}
}

func TestSyntheticRankGenerator_NoiseCappedBelowDecrement(t *testing.T) {
	// Noise larger than the decrement would break monotonicity; the
	// constructor caps it.
	gen := NewSyntheticRankGenerator(1000, 10, 500)

	prev := gen.Entry(1).Points
	for rank := 2; rank <= 30; rank++ {
		points := gen.Entry(rank).Points
		assert.Less(t, points, prev)
		prev = points
	}
}
