// Package scoring combines account, activity and asset signals into a single
// reproducible point total.
package scoring

import (
	"math"

	"github.com/mintworks/impression/internal/configs"
	"github.com/mintworks/impression/internal/models"
)

// Reference rates.
const (
	DefaultAgeRate      = 1.0
	DefaultActivityRate = 10.0
	DefaultAssetRate    = 10.0
)

// Input carries every scoring signal for one user session.
type Input struct {
	PlatformAgeDays int     `json:"platform_age_days"`
	SocialAgeDays   int     `json:"social_age_days"`
	ActivityPoints  int     `json:"activity_points"`
	IdentityID      int64   `json:"identity_id"`
	AssetUsdValue   float64 `json:"asset_usd_value"`
}

type Calculator struct {
	ageRate      float64
	activityRate float64
	assetRate    float64
}

func NewCalculator(cfg configs.ScoringConfig) *Calculator {
	c := &Calculator{
		ageRate:      cfg.AgeRate,
		activityRate: cfg.ActivityRate,
		assetRate:    cfg.AssetRate,
	}
	if c.ageRate == 0 {
		c.ageRate = DefaultAgeRate
	}
	if c.activityRate == 0 {
		c.activityRate = DefaultActivityRate
	}
	if c.assetRate == 0 {
		c.assetRate = DefaultAssetRate
	}
	return c
}

// Compute is pure: identical inputs always produce identical output.
//
// The authoritative total is the round of the unrounded component sum. Each
// breakdown component is rounded independently for display afterwards, so the
// displayed component sum can drift off the total by one. That mirrors the
// historical behavior and is pinned by tests; fix both together or not at all.
func (c *Calculator) Compute(in Input) (int, models.ScoreBreakdown) {
	socialAge := float64(in.SocialAgeDays) * c.ageRate
	identityBonus := float64(IdentityBonus(in.IdentityID))
	activityScore := float64(in.ActivityPoints) * c.activityRate
	assetScore := in.AssetUsdValue * c.assetRate

	total := int(math.Round(socialAge + identityBonus + activityScore + assetScore))

	breakdown := models.ScoreBreakdown{
		SocialAge:           int(math.Round(socialAge)),
		SocialIdentityBonus: int(math.Round(identityBonus)),
		ActivityPoints:      int(math.Round(activityScore)),
		AssetPoints:         int(math.Round(assetScore)),
	}
	return total, breakdown
}

// IdentityBonus rewards early-registered platform identities. Bands are
// inclusive of their upper bound, first match wins.
func IdentityBonus(identityID int64) int {
	switch {
	case identityID <= 0:
		return 0
	case identityID <= 5_000:
		return 3000
	case identityID <= 20_000:
		return 2000
	case identityID <= 100_000:
		return 1000
	case identityID <= 500_000:
		return 500
	default:
		return 250
	}
}
