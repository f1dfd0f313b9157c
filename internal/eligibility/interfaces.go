package eligibility

import "github.com/mintworks/impression/internal/models"

// Decision 领取资格判定结果
// Derived on demand from its inputs, never persisted on its own.
type Decision struct {
	IsEligible bool        `json:"is_eligible"`
	Tier       models.Tier `json:"tier"`
	Reason     string      `json:"reason"`
}

// SupplyLedger tracks remaining claim capacity per tier. It is the single
// mutable shared resource in the core: decremented exactly once per
// successful claim, clamped at zero, never restocked.
type SupplyLedger interface {
	// Remaining returns the claim capacity left for a tier.
	Remaining(tier models.Tier) int

	// Decrement consumes one unit of supply, clamping at zero. It performs
	// no idempotency check; the caller owns the once-per-claim guarantee.
	Decrement(tier models.Tier)

	// TryClaim atomically checks and consumes one unit of supply. Use this
	// when concurrent claimants may race on the last unit.
	TryClaim(tier models.Tier) bool

	// Snapshot copies the current per-tier counts for persistence.
	Snapshot() map[models.Tier]int
}

// Checker combines tier, asset value and supply state into one decision.
type Checker interface {
	Check(tier models.Tier, assetUsdValue float64) Decision
}
