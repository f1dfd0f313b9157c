package social

import (
	"context"

	"github.com/mintworks/impression/internal/models"
)

type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

// FailoverScanner degrades from the live scanner to the synthetic one, either
// when no live scanner is configured or when a live scan fails. Downstream
// consumers see the same shape either way.
type FailoverScanner struct {
	live   Scanner // nil when no credentials are configured
	synth  Scanner
	logger Logger
}

func NewFailoverScanner(live, synth Scanner, logger Logger) *FailoverScanner {
	return &FailoverScanner{
		live:   live,
		synth:  synth,
		logger: logger,
	}
}

// Scan implements Scanner.
func (f *FailoverScanner) Scan(ctx context.Context, handle string, window models.ActivityWindow) (*models.ActivityScan, error) {
	if handle == "" {
		return nil, ErrEmptyHandle
	}

	if f.live != nil {
		scan, err := f.live.Scan(ctx, handle, window)
		if err == nil {
			f.logger.Info("live scan complete", "handle", handle, "posts", len(scan.Posts))
			return scan, nil
		}
		f.logger.Error("live scan failed, falling back to synthetic", "handle", handle, "error", err)
	}

	return f.synth.Scan(ctx, handle, window)
}
