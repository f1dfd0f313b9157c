package eligibility

import (
	"fmt"

	"github.com/mintworks/impression/internal/models"
)

const DefaultMinAssetUsd = 2.5

// Gate implements Checker against a minimum-asset rule and a supply ledger.
// Ledger exhaustion is a "not eligible" decision, not an error.
type Gate struct {
	minAssetUsd float64
	ledger      SupplyLedger
}

func NewGate(minAssetUsd float64, ledger SupplyLedger) *Gate {
	if minAssetUsd <= 0 {
		minAssetUsd = DefaultMinAssetUsd
	}
	return &Gate{
		minAssetUsd: minAssetUsd,
		ledger:      ledger,
	}
}

// Check implements Checker.
func (g *Gate) Check(tier models.Tier, assetUsdValue float64) Decision {
	decision := Decision{Tier: tier}

	if tier == models.TierNone || tier == "" {
		decision.Reason = "no tier classified yet"
		return decision
	}
	if assetUsdValue < g.minAssetUsd {
		decision.Reason = fmt.Sprintf("asset value %.2f below threshold %.2f", assetUsdValue, g.minAssetUsd)
		return decision
	}
	if g.ledger.Remaining(tier) <= 0 {
		decision.Reason = fmt.Sprintf("supply exhausted for tier %s", tier)
		return decision
	}

	decision.IsEligible = true
	decision.Reason = "eligible"
	return decision
}
