package storage

import (
	"context"

	"github.com/mintworks/impression/internal/models"
)

// Storage 处理核心状态的持久化
// The persisted shapes are the latest UserStats per address and the current
// supply ledger snapshot; everything else is recomputed on demand.
type Storage interface {
	// SaveUserStats stores the latest computed stats for an address.
	SaveUserStats(ctx context.Context, stats *models.UserStats) error

	// GetUserStats retrieves the latest stats for an address.
	GetUserStats(ctx context.Context, address string) (*models.UserStats, error)

	// SaveSupplySnapshot stores the per-tier remaining counts.
	SaveSupplySnapshot(ctx context.Context, snapshot map[models.Tier]int) error

	// LoadSupplySnapshot retrieves the stored per-tier remaining counts.
	LoadSupplySnapshot(ctx context.Context) (map[models.Tier]int, error)
}
