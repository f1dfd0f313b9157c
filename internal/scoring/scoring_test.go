package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mintworks/impression/internal/configs"
	"github.com/mintworks/impression/internal/models"
)

func referenceCalculator() *Calculator {
	return NewCalculator(configs.ScoringConfig{AgeRate: 1.0, ActivityRate: 10, AssetRate: 10})
}

func TestCompute_Deterministic(t *testing.T) {
	c := referenceCalculator()
	in := Input{
		PlatformAgeDays: 1,
		SocialAgeDays:   400,
		ActivityPoints:  6,
		IdentityID:      0,
		AssetUsdValue:   0,
	}

	total, breakdown := c.Compute(in)
	assert.Equal(t, 460, total) // round(400*1 + 0 + 6*10 + 0)
	assert.Equal(t, models.ScoreBreakdown{
		SocialAge:           400,
		SocialIdentityBonus: 0,
		ActivityPoints:      60,
		AssetPoints:         0,
	}, breakdown)

	for i := 0; i < 100; i++ {
		again, _ := c.Compute(in)
		assert.Equal(t, total, again)
	}
}

func TestCompute_AllComponents(t *testing.T) {
	c := referenceCalculator()

	total, breakdown := c.Compute(Input{
		SocialAgeDays:  100,
		ActivityPoints: 4,
		IdentityID:     4_500,
		AssetUsdValue:  12.5,
	})

	assert.Equal(t, models.ScoreBreakdown{
		SocialAge:           100,
		SocialIdentityBonus: 3000,
		ActivityPoints:      40,
		AssetPoints:         125,
	}, breakdown)
	assert.Equal(t, 3265, total)
}

func TestCompute_RoundingOrder(t *testing.T) {
	// Two half-point components: the displayed breakdown rounds each up but
	// the authoritative total rounds the unrounded sum. The off-by-one
	// between the two is deliberate legacy behavior.
	c := NewCalculator(configs.ScoringConfig{AgeRate: 0.5, ActivityRate: 10, AssetRate: 10})

	total, breakdown := c.Compute(Input{
		SocialAgeDays: 1,    // 0.5 unrounded
		AssetUsdValue: 0.05, // 0.5 unrounded
	})

	assert.Equal(t, 1, total, "round(0.5+0.5)")
	assert.Equal(t, 1, breakdown.SocialAge)
	assert.Equal(t, 1, breakdown.AssetPoints)

	displayedSum := breakdown.SocialAge + breakdown.SocialIdentityBonus +
		breakdown.ActivityPoints + breakdown.AssetPoints
	assert.Equal(t, 2, displayedSum, "displayed sum drifts off the total by one")
}

func TestIdentityBonus_StepFunction(t *testing.T) {
	tests := []struct {
		id   int64
		want int
	}{
		{id: -1, want: 0},
		{id: 0, want: 0},
		{id: 1, want: 3000},
		{id: 5_000, want: 3000},
		{id: 5_001, want: 2000},
		{id: 20_000, want: 2000},
		{id: 20_001, want: 1000},
		{id: 100_000, want: 1000},
		{id: 100_001, want: 500},
		{id: 500_000, want: 500},
		{id: 500_001, want: 250},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IdentityBonus(tt.id), "id=%d", tt.id)
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		total int
		want  models.Tier
	}{
		{total: -50, want: models.TierBronze},
		{total: 0, want: models.TierBronze},
		{total: 1000, want: models.TierBronze},
		{total: 1001, want: models.TierSilver},
		{total: 3000, want: models.TierSilver},
		{total: 3001, want: models.TierGold},
		{total: 5000, want: models.TierGold},
		{total: 5001, want: models.TierPlatinum},
		{total: 1_000_000, want: models.TierPlatinum},
	}

	for _, tt := range tests {
		got := Classify(tt.total)
		assert.Equal(t, tt.want, got, "total=%d", tt.total)
		assert.NotEqual(t, models.TierNone, got, "classifier never returns NONE")
	}
}
