package claim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/mintworks/impression/internal/models"
	"github.com/mintworks/impression/internal/utils/request"
)

// RelayerSubmitter submits claim transactions through an HTTP relayer. The
// relayer owns signing and broadcast; this side only sees success or failure.
type RelayerSubmitter struct {
	relayerURL string
	httpClient *resty.Client
}

func NewRelayerSubmitter(relayerURL string) *RelayerSubmitter {
	return &RelayerSubmitter{
		relayerURL: relayerURL,
		httpClient: request.Request,
	}
}

// SubmitClaim implements Submitter.
func (r *RelayerSubmitter) SubmitClaim(ctx context.Context, tier models.Tier, callerAddress string) (string, error) {
	body := map[string]string{
		"tier":    string(tier),
		"address": callerAddress,
	}

	resp, err := r.httpClient.R().SetContext(ctx).SetBody(body).Post(r.relayerURL)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result struct {
		TxRef string `json:"tx_ref"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.TxRef == "" {
		return "", fmt.Errorf("relayer returned no transaction reference")
	}

	return result.TxRef, nil
}
