// Package synth is the credential-free activity scanner. It synthesizes a
// plausible identity and post set so the scoring pipeline stays exercised,
// running the exact same windowing and capping as the live scan.
package synth

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/mintworks/impression/internal/configs"
	"github.com/mintworks/impression/internal/models"
	"github.com/mintworks/impression/internal/social"
)

const (
	minIdentityAgeYears = 1
	maxIdentityAgeYears = 5
	maxPostCount        = 12
)

type Scanner struct {
	profile configs.HeuristicsProfile
	rng     *rand.Rand
	now     func() time.Time
}

func NewScanner(profile configs.HeuristicsProfile) *Scanner {
	return NewScannerWithSeed(profile, time.Now().UnixNano())
}

// NewScannerWithSeed pins the random stream, for tests.
func NewScannerWithSeed(profile configs.HeuristicsProfile, seed int64) *Scanner {
	return &Scanner{
		profile: profile,
		rng:     rand.New(rand.NewSource(seed)),
		now:     time.Now,
	}
}

// Scan implements social.Scanner.
func (s *Scanner) Scan(ctx context.Context, handle string, window models.ActivityWindow) (*models.ActivityScan, error) {
	if handle == "" {
		return nil, social.ErrEmptyHandle
	}

	now := s.now()

	// Registration uniformly within the last 1-5 years.
	minAge := time.Duration(minIdentityAgeYears) * 365 * 24 * time.Hour
	spread := time.Duration(maxIdentityAgeYears-minIdentityAgeYears) * 365 * 24 * time.Hour
	registeredAt := now.Add(-minAge - time.Duration(s.rng.Int63n(int64(spread))))

	// Synthesized identities are never early registrants.
	identityID := 1_000_000 + s.rng.Int63n(9_000_000)

	span := window.End.Sub(window.Start)
	postCount := s.rng.Intn(maxPostCount + 1)
	posts := make([]models.ActivityRecord, 0, postCount)
	for i := 0; i < postCount; i++ {
		createdAt := window.Start.Add(time.Duration(s.rng.Int63n(int64(span) + 1)))
		posts = append(posts, models.ActivityRecord{
			PostID:       fmt.Sprintf("synth-%s-%d", handle, i),
			Text:         fmt.Sprintf("synthesized campaign post %d", i),
			CreatedAt:    createdAt,
			OriginHandle: handle,
		})
	}

	return social.BuildScan(handle, identityID, registeredAt, posts, window, s.profile, true, now), nil
}
