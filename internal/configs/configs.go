package configs

import (
	"time"
)

type Config struct {
	// 链读取配置
	Chain ChainConfig `json:"chain" yaml:"chain"`

	// 市场数据配置
	Market MarketConfig `json:"market" yaml:"market"`

	// 社交扫描配置
	Social SocialConfig `json:"social" yaml:"social"`

	// 积分计算参数
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`

	// 领取资格参数
	Eligibility EligibilityConfig `json:"eligibility" yaml:"eligibility"`

	// 领取提交配置
	Claim ClaimConfig `json:"claim" yaml:"claim"`

	Database Database `json:"database" yaml:"database"`

	// AI 徽章生成配置
	BadgeConfig BadgeConfig `json:"badge_config" yaml:"badge_config"`

	Proxy string `json:"proxy" yaml:"proxy"`
}

type ChainConfig struct {
	Endpoints    []string `json:"endpoints" yaml:"endpoints"`           // 有序RPC端点列表
	MaxRetries   int      `json:"max_retries" yaml:"max_retries"`       // 余额读取最大重试次数
	RetryBackoff string   `json:"retry_backoff" yaml:"retry_backoff"`   // 重试间隔, eg: 300ms
	TokenAddress string   `json:"token_address" yaml:"token_address"`   // 活动代币合约地址
}

type MarketConfig struct {
	TargetChainID string `json:"target_chain_id" yaml:"target_chain_id"` // dexscreener链标识, eg: ethereum
	CexSymbol     string `json:"cex_symbol" yaml:"cex_symbol"`           // 可选的CEX交易对, eg: TOKENUSDT
	Timeout       string `json:"timeout" yaml:"timeout"`                 // 单次请求超时
}

type SocialConfig struct {
	BearerToken string    `json:"bearer_token" yaml:"bearer_token"` // 平台API凭证, 为空时走合成模式
	WindowStart time.Time `json:"window_start" yaml:"window_start"`
	WindowEnd   time.Time `json:"window_end" yaml:"window_end"`

	// Live and synthetic scans intentionally carry different heuristics
	// constants. Keep both profiles explicit; do not unify.
	LiveProfile      HeuristicsProfile `json:"live_profile" yaml:"live_profile"`
	SyntheticProfile HeuristicsProfile `json:"synthetic_profile" yaml:"synthetic_profile"`
}

// HeuristicsProfile 信任分计算参数
type HeuristicsProfile struct {
	AgeDivisor    float64 `json:"age_divisor" yaml:"age_divisor"`
	PostThreshold int     `json:"post_threshold" yaml:"post_threshold"`
	HighBonus     int     `json:"high_bonus" yaml:"high_bonus"`
	LowBonus      int     `json:"low_bonus" yaml:"low_bonus"`
}

type ScoringConfig struct {
	AgeRate      float64 `json:"age_rate" yaml:"age_rate"`           // 每天账龄积分
	ActivityRate float64 `json:"activity_rate" yaml:"activity_rate"` // 每活跃单位积分
	AssetRate    float64 `json:"asset_rate" yaml:"asset_rate"`       // 每美元资产积分
}

type EligibilityConfig struct {
	MinAssetUsd float64        `json:"min_asset_usd" yaml:"min_asset_usd"` // 最低资产门槛
	TierSupply  map[string]int `json:"tier_supply" yaml:"tier_supply"`     // 各等级剩余额度
}

type ClaimConfig struct {
	RelayerURL string `json:"relayer_url" yaml:"relayer_url"` // 领取交易中继地址
}

type Database struct {
	ConnStr string `json:"conn_str" yaml:"conn_str"` // 数据库连接字符串
}

type BadgeConfig struct {
	APIKey    string `json:"api_key" yaml:"api_key"`       // AI服务API密钥
	ModelType string `json:"model_type" yaml:"model_type"` // 图像模型类型
}

// Default fills reference values for anything the config file left unset.
func (c *Config) Default() {
	if c.Chain.MaxRetries == 0 {
		c.Chain.MaxRetries = 3
	}
	if c.Chain.RetryBackoff == "" {
		c.Chain.RetryBackoff = "300ms"
	}
	if c.Market.TargetChainID == "" {
		c.Market.TargetChainID = "ethereum"
	}
	if c.Market.Timeout == "" {
		c.Market.Timeout = "10s"
	}
	if c.Social.WindowStart.IsZero() || c.Social.WindowEnd.IsZero() {
		now := time.Now().UTC()
		c.Social.WindowEnd = now
		c.Social.WindowStart = now.AddDate(0, 0, -30)
	}
	if c.Social.LiveProfile == (HeuristicsProfile{}) {
		c.Social.LiveProfile = HeuristicsProfile{AgeDivisor: 1500, PostThreshold: 3, HighBonus: 60, LowBonus: 20}
	}
	if c.Social.SyntheticProfile == (HeuristicsProfile{}) {
		c.Social.SyntheticProfile = HeuristicsProfile{AgeDivisor: 1000, PostThreshold: 5, HighBonus: 60, LowBonus: 30}
	}
	if c.Scoring.AgeRate == 0 {
		c.Scoring.AgeRate = 1.0
	}
	if c.Scoring.ActivityRate == 0 {
		c.Scoring.ActivityRate = 10
	}
	if c.Scoring.AssetRate == 0 {
		c.Scoring.AssetRate = 10
	}
	if c.Eligibility.MinAssetUsd == 0 {
		c.Eligibility.MinAssetUsd = 2.5
	}
}
