package scoring

import "github.com/mintworks/impression/internal/models"

// Tier thresholds, ascending and non-overlapping.
const (
	silverFloor   = 1001
	goldFloor     = 3001
	platinumFloor = 5001
)

// Classify maps a point total to its tier. BRONZE is the floor for any total,
// negative included; NONE is a pre-classification placeholder and is never
// returned from here.
func Classify(total int) models.Tier {
	switch {
	case total >= platinumFloor:
		return models.TierPlatinum
	case total >= goldFloor:
		return models.TierGold
	case total >= silverFloor:
		return models.TierSilver
	default:
		return models.TierBronze
	}
}
