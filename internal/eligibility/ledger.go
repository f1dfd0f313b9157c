package eligibility

import (
	"sync"

	"github.com/mintworks/impression/internal/models"
)

// MemoryLedger is a mutex-serialized in-process SupplyLedger. Serializing
// check-and-decrement behind one lock makes TryClaim a single atomic step
// within the process; cross-process authority lives with whoever hydrates
// and persists snapshots.
type MemoryLedger struct {
	mu     sync.Mutex
	counts map[models.Tier]int
}

// NewMemoryLedger seeds the ledger from configured per-tier supply. Unknown
// tier names are ignored.
func NewMemoryLedger(supply map[string]int) *MemoryLedger {
	counts := make(map[models.Tier]int, len(supply))
	for name, count := range supply {
		if count < 0 {
			count = 0
		}
		counts[models.Tier(name)] = count
	}
	return &MemoryLedger{counts: counts}
}

// Remaining implements SupplyLedger.
func (l *MemoryLedger) Remaining(tier models.Tier) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[tier]
}

// Decrement implements SupplyLedger.
func (l *MemoryLedger) Decrement(tier models.Tier) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts[tier] > 0 {
		l.counts[tier]--
	}
}

// TryClaim implements SupplyLedger.
func (l *MemoryLedger) TryClaim(tier models.Tier) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts[tier] <= 0 {
		return false
	}
	l.counts[tier]--
	return true
}

// Snapshot implements SupplyLedger.
func (l *MemoryLedger) Snapshot() map[models.Tier]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	snapshot := make(map[models.Tier]int, len(l.counts))
	for tier, count := range l.counts {
		snapshot[tier] = count
	}
	return snapshot
}

// Restore replaces the ledger contents with a persisted snapshot.
func (l *MemoryLedger) Restore(snapshot map[models.Tier]int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts = make(map[models.Tier]int, len(snapshot))
	for tier, count := range snapshot {
		if count < 0 {
			count = 0
		}
		l.counts[tier] = count
	}
}
