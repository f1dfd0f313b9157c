package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mintworks/impression/internal/badge"
	"github.com/mintworks/impression/internal/chain"
	"github.com/mintworks/impression/internal/chain/evm"
	"github.com/mintworks/impression/internal/claim"
	"github.com/mintworks/impression/internal/configs"
	"github.com/mintworks/impression/internal/eligibility"
	"github.com/mintworks/impression/internal/market"
	binanceMarket "github.com/mintworks/impression/internal/market/binance"
	"github.com/mintworks/impression/internal/market/dexscreener"
	"github.com/mintworks/impression/internal/models"
	"github.com/mintworks/impression/internal/scoring"
	"github.com/mintworks/impression/internal/social"
	"github.com/mintworks/impression/internal/social/synth"
	"github.com/mintworks/impression/internal/social/twitter"
	"github.com/mintworks/impression/internal/storage"
)

type ImpressionSystem struct {
	config          *configs.Config
	balanceResolver chain.BalanceResolver
	priceResolver   market.PriceResolver
	scanner         social.Scanner
	calculator      *scoring.Calculator
	ledger          eligibility.SupplyLedger
	coordinator     *claim.Coordinator
	badgeGenerator  badge.Generator
	store           storage.Storage
}

func NewImpressionSystem(
	config *configs.Config,
	balanceResolver chain.BalanceResolver,
	priceResolver market.PriceResolver,
	scanner social.Scanner,
	calculator *scoring.Calculator,
	ledger eligibility.SupplyLedger,
	coordinator *claim.Coordinator,
	badgeGenerator badge.Generator,
	store storage.Storage,
) *ImpressionSystem {
	return &ImpressionSystem{
		config:          config,
		balanceResolver: balanceResolver,
		priceResolver:   priceResolver,
		scanner:         scanner,
		calculator:      calculator,
		ledger:          ledger,
		coordinator:     coordinator,
		badgeGenerator:  badgeGenerator,
		store:           store,
	}
}

// Run 运行一次用户会话: 扫描、计分、分级、领取
func (s *ImpressionSystem) Run(ctx context.Context, address, handle string, doClaim bool) error {
	window := models.ActivityWindow{
		Start: s.config.Social.WindowStart,
		End:   s.config.Social.WindowEnd,
	}

	// 1. 扫描社交活动
	scan, err := s.scanner.Scan(ctx, handle, window)
	if err != nil {
		return err
	}
	log.Debug("activity scan complete", "posts", len(scan.Posts), "activity_points", scan.ActivityPoints, "synthetic", scan.Synthetic)

	// 2. 解析链上余额
	resolution, err := s.balanceResolver.ResolveBalance(ctx, address, s.config.Chain.TokenAddress, s.config.Chain.MaxRetries)
	if err != nil {
		return err
	}
	if resolution.Exhausted {
		log.Warn("balance resolution exhausted all retries, scoring with zero", "attempts", resolution.Attempts)
	}

	// 3. 解析价格并计算资产价值
	price := s.priceResolver.ResolvePriceUsd(ctx, s.config.Chain.TokenAddress)
	assetUsd := resolution.Holding.NormalizedValue * price
	log.Debug("asset value", "balance", resolution.Holding.NormalizedValue, "price", price, "asset_usd", assetUsd)

	// 4. 计算积分并分级
	total, breakdown := s.calculator.Compute(scoring.Input{
		SocialAgeDays:  scan.IdentityAgeDays,
		ActivityPoints: scan.ActivityPoints,
		IdentityID:     scan.IdentityID,
		AssetUsdValue:  assetUsd,
	})
	tier := scoring.Classify(total)
	log.Info("score computed", "total", total, "tier", tier, "breakdown", breakdown)

	// 5. 保存最新结果
	if s.store != nil {
		stats := &models.UserStats{
			Address:   address,
			Handle:    handle,
			Total:     total,
			Breakdown: breakdown,
			Tier:      tier,
			UpdatedAt: time.Now(),
		}
		if err := s.store.SaveUserStats(ctx, stats); err != nil {
			log.Error("failed to save user stats", "err", err)
		}
	}

	if !doClaim {
		return nil
	}

	// 6. 领取
	result, err := s.coordinator.Claim(ctx, tier, assetUsd, address)
	if err != nil {
		return err
	}
	if !result.Claimed {
		log.Info("not claimed", "reason", result.Decision.Reason)
		return nil
	}

	log.Info("claimed", "tier", tier, "tx_ref", result.TxRef, "remaining_supply", s.ledger.Remaining(tier))

	// 7. 生成徽章图像 (失败时自动降级, 不影响领取)
	artifact, err := s.badgeGenerator.Generate(ctx, tier)
	if err != nil {
		return err
	}
	log.Info("badge artifact ready", "created_by", artifact.CreatedBy, "fallback", artifact.Fallback)

	return nil
}

var (
	flagconf    string
	flagAddress string
	flagHandle  string
	flagClaim   bool

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
)

func init() {
	flag.StringVar(&flagconf, "conf", "../configs/config.json", "config path, eg: -conf config.json")
	flag.StringVar(&flagAddress, "address", "", "wallet address to score")
	flag.StringVar(&flagHandle, "handle", "", "social handle to scan")
	flag.BoolVar(&flagClaim, "claim", false, "attempt a claim after scoring")
}

func main() {
	flag.Parse()

	// .env 优先加载, 密钥不进配置文件
	_ = godotenv.Load()

	config := &configs.Config{}
	configFile, err := os.ReadFile(flagconf)
	if err != nil {
		log.Error("Error reading config file", "err", err)
		return
	}

	if err := json.Unmarshal(configFile, config); err != nil {
		log.Error("Error parsing config file", "err", err)
		return
	}
	config.Default()

	if token := os.Getenv("TWITTER_BEARER_TOKEN"); token != "" {
		config.Social.BearerToken = token
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.BadgeConfig.APIKey = key
	}
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		config.Database.ConnStr = connStr
	}

	log.Debug("Loaded config", "config", config)

	if config.Proxy != "" {
		_ = os.Setenv("HTTP_PROXY", config.Proxy)
		_ = os.Setenv("HTTPS_PROXY", config.Proxy)
		log.Debug("set proxy ok", "proxy", config.Proxy)
	}

	backoff, err := time.ParseDuration(config.Chain.RetryBackoff)
	if err != nil {
		backoff = evm.DefaultRetryBackoff
	}
	balanceResolver := evm.NewResolver(config.Chain.Endpoints, backoff, log)

	log.Debug("init balance resolver", "endpoints", len(config.Chain.Endpoints))

	marketTimeout, err := time.ParseDuration(config.Market.Timeout)
	if err != nil {
		marketTimeout = dexscreener.DefaultTimeout
	}
	priceResolver := market.NewMultiSourceResolver([]market.PriceSource{
		dexscreener.NewSource(config.Market.TargetChainID, marketTimeout),
		binanceMarket.NewSource(config.Market.CexSymbol),
	}, log)

	log.Debug("init price resolver")

	var liveScanner social.Scanner
	if config.Social.BearerToken != "" {
		liveScanner = twitter.NewScanner(config.Social.BearerToken, config.Social.LiveProfile)
	}
	scanner := social.NewFailoverScanner(liveScanner, synth.NewScanner(config.Social.SyntheticProfile), log)

	log.Debug("init scanner", "live", liveScanner != nil)

	calculator := scoring.NewCalculator(config.Scoring)

	ledger := eligibility.NewMemoryLedger(config.Eligibility.TierSupply)

	var store storage.Storage
	if config.Database.ConnStr != "" {
		pg, err := storage.NewPostgresStorage(config.Database.ConnStr)
		if err != nil {
			log.Error("Error creating storage", "err", err)
			return
		}
		store = pg

		// 从快照恢复剩余额度
		if snapshot, err := pg.LoadSupplySnapshot(context.Background()); err != nil {
			log.Error("failed to load supply snapshot", "err", err)
		} else if len(snapshot) > 0 {
			ledger.Restore(snapshot)
			log.Debug("restored supply ledger from snapshot", "tiers", len(snapshot))
		}
	}

	gate := eligibility.NewGate(config.Eligibility.MinAssetUsd, ledger)

	var snapshotter claim.Snapshotter
	if store != nil {
		snapshotter = store
	}
	coordinator := claim.NewCoordinator(gate, ledger, claim.NewRelayerSubmitter(config.Claim.RelayerURL), snapshotter, log)

	log.Debug("init claim coordinator")

	badgeGenerator := badge.NewOpenAIGenerator(config.BadgeConfig.APIKey, config.BadgeConfig.ModelType, log)

	log.Debug("init badge generator")

	system := NewImpressionSystem(
		config,
		balanceResolver,
		priceResolver,
		scanner,
		calculator,
		ledger,
		coordinator,
		badgeGenerator,
		store,
	)

	ctx := context.Background()
	if err := system.Run(ctx, flagAddress, flagHandle, flagClaim); err != nil {
		log.Error("System error", "err", err)
	}
}
