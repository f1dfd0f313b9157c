// Package badge produces tier badge art through an AI image collaborator,
// degrading to a deterministic local artifact whenever the collaborator
// fails or refuses. Art never blocks a claim.
package badge

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/mintworks/impression/internal/models"
)

// Generator 负责生成徽章图像
type Generator interface {
	Generate(ctx context.Context, tier models.Tier) (*models.BadgeArtifact, error)
}

// imageCreator is the slice of the OpenAI client this package uses.
type imageCreator interface {
	CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error)
}

type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

type OpenAIGenerator struct {
	client imageCreator
	model  string
	logger Logger
}

func NewOpenAIGenerator(apiKey, model string, logger Logger) *OpenAIGenerator {
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

// Generate implements Generator. The returned error is always nil: every
// failure path degrades to the fallback artifact.
func (g *OpenAIGenerator) Generate(ctx context.Context, tier models.Tier) (*models.BadgeArtifact, error) {
	prompt := fmt.Sprintf(
		"A collectible campaign badge for the %s reward tier: a polished metallic emblem in %s tones, flat vector style, plain dark background, no text.",
		strings.ToLower(string(tier)), tierColorName(tier))

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil || len(resp.Data) == 0 {
		g.logger.Error("badge generation failed, using fallback artifact", "tier", tier, "error", err)
		return Fallback(tier), nil
	}

	g.logger.Info("badge generated", "tier", tier)
	return &models.BadgeArtifact{
		Tier:      tier,
		URL:       resp.Data[0].URL,
		B64Data:   resp.Data[0].B64JSON,
		CreatedBy: "openai",
	}, nil
}

// Fallback is the deterministic local artifact: a flat SVG medallion in the
// tier's color. Same input, same bytes.
func Fallback(tier models.Tier) *models.BadgeArtifact {
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="256" height="256"><circle cx="128" cy="128" r="112" fill="%s"/><circle cx="128" cy="128" r="88" fill="none" stroke="#1a1a1a" stroke-width="6"/><text x="128" y="140" font-family="monospace" font-size="28" text-anchor="middle" fill="#1a1a1a">%s</text></svg>`,
		tierColorHex(tier), tier)

	return &models.BadgeArtifact{
		Tier:      tier,
		B64Data:   base64.StdEncoding.EncodeToString([]byte(svg)),
		Fallback:  true,
		CreatedBy: "fallback",
	}
}

func tierColorHex(tier models.Tier) string {
	switch tier {
	case models.TierPlatinum:
		return "#e5e4e2"
	case models.TierGold:
		return "#ffd700"
	case models.TierSilver:
		return "#c0c0c0"
	default:
		return "#cd7f32"
	}
}

func tierColorName(tier models.Tier) string {
	switch tier {
	case models.TierPlatinum:
		return "platinum white"
	case models.TierGold:
		return "gold"
	case models.TierSilver:
		return "silver"
	default:
		return "bronze"
	}
}
