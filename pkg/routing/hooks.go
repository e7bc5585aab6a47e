package routing

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// BeforeMatchFunc runs before any built-in stage. It receives the outcome
// produced by earlier hooks and returns a replacement; return current to
// pass it through unchanged.
type BeforeMatchFunc func(ctx context.Context, current Outcome, req *Request, r *Router) (Outcome, error)

type hook struct {
	fn       BeforeMatchFunc
	priority int
	seq      int
}

// Hooks is an ordered chain of before-match interceptors. Lower priorities
// run first; ties run in registration order.
type Hooks struct {
	chain []hook
	seq   int
	mu    sync.RWMutex
}

// NewHooks returns an empty chain.
func NewHooks() *Hooks {
	return &Hooks{}
}

// BeforeMatch adds fn to the chain.
func (h *Hooks) BeforeMatch(priority int, fn BeforeMatchFunc) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	h.chain = append(h.chain, hook{fn: fn, priority: priority, seq: h.seq})
	slices.SortStableFunc(h.chain, func(a, b hook) int {
		return cmp.Or(cmp.Compare(a.priority, b.priority), cmp.Compare(a.seq, b.seq))
	})
}

// Reset removes every hook.
func (h *Hooks) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.chain = nil
}

// Len returns the number of registered hooks.
func (h *Hooks) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.chain)
}

func (h *Hooks) run(ctx context.Context, req *Request, r *Router) (Outcome, error) {
	h.mu.RLock()
	chain := h.chain
	h.mu.RUnlock()

	out := Declined()
	for _, hk := range chain {
		next, err := hk.fn(ctx, out, req, r)
		if err != nil {
			return Declined(), err
		}
		out = next
	}
	return out, nil
}
