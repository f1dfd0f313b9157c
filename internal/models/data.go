package models

import "time"

// TokenHolding 代币持仓信息
type TokenHolding struct {
	OwnerAddress    string  `json:"owner_address"`
	ContractAddress string  `json:"contract_address"`
	RawBalance      string  `json:"raw_balance"` // integer in smallest unit, decimal string
	Decimals        int     `json:"decimals"`
	NormalizedValue float64 `json:"normalized_value"`
}

// ActivityWindow bounds which posts count toward a campaign, inclusive on both ends.
type ActivityWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w ActivityWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ActivityRecord 单条社交动态
type ActivityRecord struct {
	PostID       string    `json:"post_id"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
	OriginHandle string    `json:"origin_handle"`
}

// ActivityScan is the result of one scan invocation. Re-scanning replaces a
// previous scan entirely, it never merges.
type ActivityScan struct {
	Handle          string           `json:"handle"`
	IdentityID      int64            `json:"identity_id"`
	IdentityAgeDays int              `json:"identity_age_days"`
	Posts           []ActivityRecord `json:"posts"` // newest first
	DailyBreakdown  map[string]int   `json:"daily_breakdown"`
	ActivityPoints  int              `json:"activity_points"`
	TrustScore      int              `json:"trust_score"`
	Synthetic       bool             `json:"synthetic"`
}

// ScoreBreakdown 积分明细
// Each component is rounded independently for display; the authoritative total
// is the round of the unrounded sum, so the displayed component sum may drift
// off the total by one.
type ScoreBreakdown struct {
	SocialAge           int `json:"social_age"`
	SocialIdentityBonus int `json:"social_identity_bonus"`
	ActivityPoints      int `json:"activity_points"`
	AssetPoints         int `json:"asset_points"`
}

// Tier 奖励等级
type Tier string

const (
	TierPlatinum Tier = "PLATINUM"
	TierGold     Tier = "GOLD"
	TierSilver   Tier = "SILVER"
	TierBronze   Tier = "BRONZE"
	TierNone     Tier = "NONE" // pre-classification placeholder only
)

// UserStats 用户最新一次计算结果
type UserStats struct {
	Address   string         `json:"address"`
	Handle    string         `json:"handle"`
	Total     int            `json:"total"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Tier      Tier           `json:"tier"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BadgeArtifact 徽章图像产物
type BadgeArtifact struct {
	Tier      Tier   `json:"tier"`
	URL       string `json:"url,omitempty"`
	B64Data   string `json:"b64_data,omitempty"`
	Fallback  bool   `json:"fallback"`
	CreatedBy string `json:"created_by"`
}
