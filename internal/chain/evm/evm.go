package evm

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mintworks/impression/internal/chain"
	"github.com/mintworks/impression/internal/models"
	"github.com/mintworks/impression/internal/utils/request"
)

const (
	// ERC-20 function selectors.
	selectorBalanceOf = "0x70a08231"
	selectorDecimals  = "0x313ce567"

	DefaultDecimals     = 18
	DefaultRetryBackoff = 300 * time.Millisecond
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

type Logger interface {
	Error(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
}

// Resolver reads ERC-20 balances over JSON-RPC with sticky endpoint rotation:
// the cursor only advances on failure, so a healthy endpoint keeps serving
// all subsequent calls. The cursor is process-lifetime state; a benign race
// between concurrent calls at worst picks a sub-optimal endpoint.
type Resolver struct {
	endpoints  []string
	cursor     atomic.Uint64
	backoff    time.Duration
	httpClient *resty.Client
	logger     Logger
}

func NewResolver(endpoints []string, backoff time.Duration, logger Logger) *Resolver {
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}
	return &Resolver{
		endpoints:  endpoints,
		backoff:    backoff,
		httpClient: request.Request,
		logger:     logger,
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result string `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ResolveBalance implements chain.BalanceResolver.
func (r *Resolver) ResolveBalance(ctx context.Context, ownerAddress, tokenContractAddress string, maxRetries int) (*chain.Resolution, error) {
	if !addressPattern.MatchString(ownerAddress) || !addressPattern.MatchString(tokenContractAddress) {
		return nil, fmt.Errorf("%w: owner=%q token=%q", chain.ErrInvalidAddress, ownerAddress, tokenContractAddress)
	}
	if maxRetries <= 0 {
		maxRetries = 1
	}

	res := &chain.Resolution{
		Holding: models.TokenHolding{
			OwnerAddress:    ownerAddress,
			ContractAddress: tokenContractAddress,
			RawBalance:      "0",
			Decimals:        DefaultDecimals,
		},
	}

	n := uint64(len(r.endpoints))
	if n == 0 {
		res.Exhausted = true
		return res, nil
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		endpoint := r.endpoints[r.cursor.Load()%n]
		res.Attempts = attempt + 1

		raw, decimals, err := r.readBalance(ctx, endpoint, ownerAddress, tokenContractAddress)
		if err == nil {
			res.Endpoint = endpoint
			res.Holding.RawBalance = raw.String()
			res.Holding.Decimals = decimals
			res.Holding.NormalizedValue = Normalize(raw, decimals)
			return res, nil
		}

		r.logger.Error("balance read failed, rotating endpoint", "endpoint", endpoint, "attempt", attempt+1, "error", err)
		r.cursor.Add(1)

		if attempt+1 < maxRetries {
			select {
			case <-ctx.Done():
				res.Exhausted = true
				return res, nil
			case <-time.After(r.backoff):
			}
		}
	}

	// A missing balance must never block scoring.
	res.Exhausted = true
	return res, nil
}

// readBalance performs the balanceOf and decimals reads against one endpoint.
// An unreadable decimals value falls back to 18 without failing the attempt.
func (r *Resolver) readBalance(ctx context.Context, endpoint, owner, token string) (*big.Int, int, error) {
	balanceData := selectorBalanceOf + strings.Repeat("0", 24) + strings.ToLower(strings.TrimPrefix(owner, "0x"))

	raw, _, err := r.ethCall(ctx, endpoint, token, balanceData)
	if err != nil {
		return nil, 0, err
	}

	decimals := DefaultDecimals
	if d, present, err := r.ethCall(ctx, endpoint, token, selectorDecimals); err == nil && present && d.IsInt64() && d.Int64() >= 0 && d.Int64() <= 77 {
		decimals = int(d.Int64())
	}

	return raw, decimals, nil
}

// ethCall issues a read-only call and parses the 32-byte result word. An
// empty "0x" result means absent contract state: zero value, present false.
func (r *Resolver) ethCall(ctx context.Context, endpoint, to, data string) (*big.Int, bool, error) {
	body := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "eth_call",
		Params: []interface{}{
			map[string]string{"to": to, "data": data},
			"latest",
		},
	}

	resp, err := r.httpClient.R().SetContext(ctx).SetBody(body).Post(endpoint)
	if err != nil {
		return nil, false, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, false, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(resp.Body(), &rpcResp); err != nil {
		return nil, false, fmt.Errorf("failed to decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, false, fmt.Errorf("rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	hexResult := strings.TrimPrefix(rpcResp.Result, "0x")
	if hexResult == "" {
		return big.NewInt(0), false, nil
	}

	value, ok := new(big.Int).SetString(hexResult, 16)
	if !ok {
		return nil, false, fmt.Errorf("malformed result: %q", rpcResp.Result)
	}
	return value, true, nil
}

// Normalize converts a raw smallest-unit balance to a decimal quantity.
func Normalize(raw *big.Int, decimals int) float64 {
	if raw == nil || raw.Sign() <= 0 {
		return 0
	}
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value, _ := new(big.Float).Quo(new(big.Float).SetInt(raw), divisor).Float64()
	return value
}
