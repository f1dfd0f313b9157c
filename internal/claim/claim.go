// Package claim coordinates the one-shot claim flow: gate check, opaque
// submission, then ledger decrement only after confirmed success.
package claim

import (
	"context"
	"fmt"

	"github.com/mintworks/impression/internal/eligibility"
	"github.com/mintworks/impression/internal/models"
)

// Submitter 负责提交领取交易
// The transaction itself is an external collaborator; this core only decides
// whether to call it.
type Submitter interface {
	SubmitClaim(ctx context.Context, tier models.Tier, callerAddress string) (txRef string, err error)
}

// Snapshotter persists ledger state after a successful claim.
type Snapshotter interface {
	SaveSupplySnapshot(ctx context.Context, snapshot map[models.Tier]int) error
}

type Logger interface {
	Error(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

// Result of one claim attempt.
type Result struct {
	Decision eligibility.Decision `json:"decision"`
	Claimed  bool                 `json:"claimed"`
	TxRef    string               `json:"tx_ref,omitempty"`
}

type Coordinator struct {
	gate      eligibility.Checker
	ledger    eligibility.SupplyLedger
	submitter Submitter
	store     Snapshotter // nil disables persistence
	logger    Logger
}

func NewCoordinator(gate eligibility.Checker, ledger eligibility.SupplyLedger, submitter Submitter, store Snapshotter, logger Logger) *Coordinator {
	return &Coordinator{
		gate:      gate,
		ledger:    ledger,
		submitter: submitter,
		store:     store,
		logger:    logger,
	}
}

// Claim runs one claim attempt. An ineligible decision is a normal result. A
// failed submission is returned to the caller with the ledger untouched, so
// failed claims never waste supply. The ledger is consumed atomically only
// after the success signal.
func (c *Coordinator) Claim(ctx context.Context, tier models.Tier, assetUsdValue float64, callerAddress string) (*Result, error) {
	result := &Result{Decision: c.gate.Check(tier, assetUsdValue)}
	if !result.Decision.IsEligible {
		c.logger.Info("claim refused", "tier", tier, "reason", result.Decision.Reason)
		return result, nil
	}

	txRef, err := c.submitter.SubmitClaim(ctx, tier, callerAddress)
	if err != nil {
		return result, fmt.Errorf("claim submission failed: %w", err)
	}

	result.Claimed = true
	result.TxRef = txRef

	if !c.ledger.TryClaim(tier) {
		// A concurrent claimant took the last unit between check and
		// success. The downstream mint already happened; surface it.
		c.logger.Warn("supply exhausted after successful submission", "tier", tier, "tx_ref", txRef)
	}

	if c.store != nil {
		if err := c.store.SaveSupplySnapshot(ctx, c.ledger.Snapshot()); err != nil {
			c.logger.Error("failed to persist supply snapshot", "error", err)
		}
	}

	c.logger.Info("claim complete", "tier", tier, "tx_ref", txRef)
	return result, nil
}
