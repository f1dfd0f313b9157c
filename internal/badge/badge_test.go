package badge

import (
	"context"
	"fmt"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintworks/impression/internal/models"
)

type noopLogger struct{}

func (noopLogger) Error(msg string, fields ...interface{}) {}
func (noopLogger) Info(msg string, fields ...interface{})  {}

type stubCreator struct {
	resp openai.ImageResponse
	err  error
}

func (s *stubCreator) CreateImage(ctx context.Context, req openai.ImageRequest) (openai.ImageResponse, error) {
	return s.resp, s.err
}

func TestGenerate(t *testing.T) {
	g := NewOpenAIGenerator("key", "", noopLogger{})
	g.client = &stubCreator{resp: openai.ImageResponse{
		Data: []openai.ImageResponseDataInner{{B64JSON: "aW1hZ2U="}},
	}}

	artifact, err := g.Generate(context.Background(), models.TierGold)
	require.NoError(t, err)

	assert.False(t, artifact.Fallback)
	assert.Equal(t, "openai", artifact.CreatedBy)
	assert.Equal(t, "aW1hZ2U=", artifact.B64Data)
}

func TestGenerate_DegradesOnError(t *testing.T) {
	tests := []struct {
		name string
		stub *stubCreator
	}{
		{name: "api error", stub: &stubCreator{err: fmt.Errorf("rate limited")}},
		{name: "policy refusal with empty data", stub: &stubCreator{resp: openai.ImageResponse{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewOpenAIGenerator("key", "", noopLogger{})
			g.client = tt.stub

			artifact, err := g.Generate(context.Background(), models.TierSilver)
			require.NoError(t, err, "art generation must never block")

			assert.True(t, artifact.Fallback)
			assert.Equal(t, models.TierSilver, artifact.Tier)
			assert.NotEmpty(t, artifact.B64Data)
		})
	}
}

func TestFallback_Deterministic(t *testing.T) {
	a := Fallback(models.TierPlatinum)
	b := Fallback(models.TierPlatinum)
	assert.Equal(t, a, b)

	other := Fallback(models.TierBronze)
	assert.NotEqual(t, a.B64Data, other.B64Data, "artifacts differ per tier")
}
