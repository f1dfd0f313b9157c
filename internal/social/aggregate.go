package social

import (
	"math"
	"sort"
	"time"

	"github.com/mintworks/impression/internal/configs"
	"github.com/mintworks/impression/internal/models"
)

// DailyPostCap is the hard per-day ceiling on counted posts, so one burst day
// cannot dominate the activity score.
const DailyPostCap = 5

const dayKeyFormat = "2006-01-02"

// BuildScan runs the shared aggregation over a post set. Live and synthetic
// scans both go through here, which keeps the two modes behaviorally
// indistinguishable downstream.
func BuildScan(
	handle string,
	identityID int64,
	registeredAt time.Time,
	posts []models.ActivityRecord,
	window models.ActivityWindow,
	profile configs.HeuristicsProfile,
	synthetic bool,
	now time.Time,
) *models.ActivityScan {
	inWindow := make([]models.ActivityRecord, 0, len(posts))
	for _, p := range posts {
		if window.Contains(p.CreatedAt) {
			inWindow = append(inWindow, p)
		}
	}

	sort.Slice(inWindow, func(i, j int) bool {
		return inWindow[i].CreatedAt.After(inWindow[j].CreatedAt)
	})

	breakdown := BuildDailyBreakdown(inWindow)
	ageDays := IdentityAgeDays(registeredAt, now)

	return &models.ActivityScan{
		Handle:          handle,
		IdentityID:      identityID,
		IdentityAgeDays: ageDays,
		Posts:           inWindow,
		DailyBreakdown:  breakdown,
		ActivityPoints:  ActivityPoints(breakdown),
		TrustScore:      TrustScore(ageDays, len(inWindow), profile),
		Synthetic:       synthetic,
	}
}

// BuildDailyBreakdown groups posts by calendar day. The day key comes from
// the post's own timestamp as recorded upstream, with no local time zone
// conversion.
func BuildDailyBreakdown(posts []models.ActivityRecord) map[string]int {
	breakdown := make(map[string]int, len(posts))
	for _, p := range posts {
		breakdown[p.CreatedAt.Format(dayKeyFormat)]++
	}
	return breakdown
}

// ActivityPoints sums per-day counts with the daily cap applied.
func ActivityPoints(breakdown map[string]int) int {
	points := 0
	for _, count := range breakdown {
		if count > DailyPostCap {
			count = DailyPostCap
		}
		points += count
	}
	return points
}

// TrustScore is the campaign trust heuristic: up to 40 points for identity
// age plus a post-volume bonus, constants per profile.
func TrustScore(identityAgeDays, postCount int, profile configs.HeuristicsProfile) int {
	ageFactor := float64(identityAgeDays) / profile.AgeDivisor
	if ageFactor > 1 {
		ageFactor = 1
	}

	bonus := profile.LowBonus
	if postCount > profile.PostThreshold {
		bonus = profile.HighBonus
	}

	return int(math.Round(ageFactor*40 + float64(bonus)))
}

// IdentityAgeDays is the whole-day distance from registration to now,
// rounded up.
func IdentityAgeDays(registeredAt, now time.Time) int {
	age := now.Sub(registeredAt)
	if age < 0 {
		age = -age
	}
	return int(math.Ceil(age.Hours() / 24))
}
