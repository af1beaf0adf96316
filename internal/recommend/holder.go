package recommend

import "sync"

// Holder is the swappable reference to the current engine. A catalog reload
// builds a new engine off to the side and swaps it in; readers always see a
// complete engine, never a partial build.
type Holder struct {
	mu     sync.RWMutex
	engine *Engine
}

// NewHolder creates a holder around an initial engine.
func NewHolder(e *Engine) *Holder {
	return &Holder{engine: e}
}

// Get returns the current engine.
func (h *Holder) Get() *Engine {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.engine
}

// Swap replaces the current engine.
func (h *Holder) Swap(e *Engine) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine = e
}
