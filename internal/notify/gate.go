package notify

import (
	"sync"

	"github.com/couchcryptid/disaster-alerts-service/internal/domain"
)

// Gate tracks which event keys have already triggered a notification. The set
// is scoped to the process lifetime and grows monotonically: a restart resets
// it, so events already stored re-trigger on the next cycle that observes
// them. Safe for concurrent use.
type Gate struct {
	mu   sync.Mutex
	seen map[domain.EventKey]struct{}
}

// NewGate creates an empty gate.
func NewGate() *Gate {
	return &Gate{seen: make(map[domain.EventKey]struct{})}
}

// FirstSeen atomically checks and marks the key. It returns true on the first
// call for a given key and false on every subsequent call.
func (g *Gate) FirstSeen(key domain.EventKey) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.seen[key]; ok {
		return false
	}
	g.seen[key] = struct{}{}
	return true
}
