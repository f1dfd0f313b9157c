package synth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintworks/impression/internal/configs"
	"github.com/mintworks/impression/internal/models"
	"github.com/mintworks/impression/internal/social"
)

var testProfile = configs.HeuristicsProfile{AgeDivisor: 1000, PostThreshold: 5, HighBonus: 60, LowBonus: 30}

func testWindow() models.ActivityWindow {
	return models.ActivityWindow{
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestScan_Plausibility(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	window := testWindow()

	// Several seeds, same invariants.
	for seed := int64(1); seed <= 20; seed++ {
		s := NewScannerWithSeed(testProfile, seed)
		s.now = func() time.Time { return now }

		scan, err := s.Scan(context.Background(), "alice", window)
		require.NoError(t, err)

		assert.True(t, scan.Synthetic)
		assert.GreaterOrEqual(t, scan.IdentityAgeDays, 365, "seed %d", seed)
		assert.LessOrEqual(t, scan.IdentityAgeDays, 5*365+2, "seed %d", seed)
		assert.GreaterOrEqual(t, scan.IdentityID, int64(1_000_000))

		for _, p := range scan.Posts {
			assert.True(t, window.Contains(p.CreatedAt), "seed %d: post outside window", seed)
			assert.Equal(t, "alice", p.OriginHandle)
		}

		// Capping rule holds regardless of what was synthesized.
		wantPoints := 0
		for _, count := range scan.DailyBreakdown {
			if count > social.DailyPostCap {
				count = social.DailyPostCap
			}
			wantPoints += count
		}
		assert.Equal(t, wantPoints, scan.ActivityPoints, "seed %d", seed)
	}
}

func TestScan_Deterministic(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	a := NewScannerWithSeed(testProfile, 7)
	a.now = func() time.Time { return now }
	b := NewScannerWithSeed(testProfile, 7)
	b.now = func() time.Time { return now }

	scanA, err := a.Scan(context.Background(), "alice", testWindow())
	require.NoError(t, err)
	scanB, err := b.Scan(context.Background(), "alice", testWindow())
	require.NoError(t, err)

	assert.Equal(t, scanA, scanB)
}

func TestScan_EmptyHandle(t *testing.T) {
	s := NewScannerWithSeed(testProfile, 1)

	_, err := s.Scan(context.Background(), "", testWindow())
	assert.ErrorIs(t, err, social.ErrEmptyHandle)
}
