package social

import (
	"context"
	"errors"

	"github.com/mintworks/impression/internal/models"
)

// ErrEmptyHandle is returned before any network call for a blank handle.
var ErrEmptyHandle = errors.New("empty social handle")

// Scanner 负责扫描活动窗口内的社交动态
type Scanner interface {
	// Scan resolves the handle and aggregates its posts within the window.
	// A re-scan replaces earlier results, it never merges.
	Scan(ctx context.Context, handle string, window models.ActivityWindow) (*models.ActivityScan, error)
}
