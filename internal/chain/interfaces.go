package chain

import (
	"context"
	"errors"

	"github.com/mintworks/impression/internal/models"
)

// ErrInvalidAddress is returned before any network call when an address does
// not look like a chain address.
var ErrInvalidAddress = errors.New("invalid chain address")

// Resolution is the outcome of one balance resolution. A zero holding with
// Exhausted set means every retry failed, which scores the same as a real
// zero balance but must stay distinguishable for diagnostics.
type Resolution struct {
	Holding   models.TokenHolding `json:"holding"`
	Endpoint  string              `json:"endpoint"`
	Attempts  int                 `json:"attempts"`
	Exhausted bool                `json:"exhausted"`
}

// BalanceResolver 负责解析链上代币余额
type BalanceResolver interface {
	// ResolveBalance reads owner's balance of the given token contract.
	// Malformed addresses fail fast with ErrInvalidAddress; network and
	// endpoint failures are absorbed into an exhausted zero resolution.
	ResolveBalance(ctx context.Context, ownerAddress, tokenContractAddress string, maxRetries int) (*Resolution, error)
}
