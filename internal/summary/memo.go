package summary

import "sync"

// Memoizer caches the last derivation keyed on payload pointer identity:
// the same payload object yields the same derived result without
// recomputation, a new payload replaces the cached pair. Safe for
// concurrent use.
type Memoizer struct {
	mu      sync.Mutex
	last    *BulkPayload
	derived *Consolidated
}

// NewMemoizer returns an empty Memoizer.
func NewMemoizer() *Memoizer {
	return &Memoizer{}
}

// Derive returns the consolidated shapes for p, recomputing only when p is
// a different payload object than the previous call's.
func (m *Memoizer) Derive(p *BulkPayload) *Consolidated {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p != nil && p == m.last {
		return m.derived
	}

	m.last = p
	m.derived = Derive(p)
	return m.derived
}
