package view

import "sync"

// State names what the content region currently shows.
type State string

const (
	StateLoading State = "loading"
	StateContent State = "content"
	StateError   State = "error"
)

// Region is the single mutable content slot all views render into.
// Every write carries the render token of the navigation that produced
// it; a write whose token is older than the last applied one is
// discarded, so a slow fetch can never overwrite a newer view.
type Region struct {
	mu    sync.Mutex
	token uint64
	state State
	html  string
}

// NewRegion creates an empty region.
func NewRegion() *Region {
	return &Region{state: StateContent}
}

func (r *Region) apply(token uint64, state State, html string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token < r.token {
		return false
	}
	r.token = token
	r.state = state
	r.html = html
	return true
}

// SetLoading replaces the region with a loading indicator.
func (r *Region) SetLoading(token uint64, html string) bool {
	return r.apply(token, StateLoading, html)
}

// SetContent replaces the region with rendered content.
func (r *Region) SetContent(token uint64, html string) bool {
	return r.apply(token, StateContent, html)
}

// SetError replaces the region with an error or empty state.
func (r *Region) SetError(token uint64, html string) bool {
	return r.apply(token, StateError, html)
}

// Snapshot returns the current state and markup.
func (r *Region) Snapshot() (State, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.html
}

// Token returns the token of the last applied write.
func (r *Region) Token() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token
}
