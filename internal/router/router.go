// Package router implements the fragment router driving all view
// navigation. Routes are kept in registration order and the first
// structural match wins, so overlapping patterns like /input and
// /input/:date are disambiguated by how the shell registers them.
package router

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
)

// Params maps :name placeholders to their captured segment values.
type Params map[string]string

// Nav describes one resolved navigation. Token increases monotonically
// per navigation; view renders carry it so stale completions can be
// discarded.
type Nav struct {
	Path    string
	Token   uint64
	Params  Params
	Matches []string // raw submatches for regexp routes, nil otherwise
}

// Handler handles one navigation. Dispatch is synchronous but a handler
// is free to keep working asynchronously; the router does not wait.
type Handler func(ctx context.Context, nav Nav)

type route struct {
	re      *regexp.Regexp
	keys    []string // placeholder names, nil for regexp routes
	generic bool
	handler Handler
}

// Router resolves fragment paths against registered patterns.
type Router struct {
	mu       sync.RWMutex
	routes   []route
	notFound Handler
	token    atomic.Uint64
}

// New creates an empty router.
func New() *Router {
	return &Router{}
}

var placeholderRe = regexp.MustCompile(`:(\w+)`)

// Register adds a literal pattern. Each :name segment captures one or
// more characters up to the next slash. Duplicate patterns are not
// rejected; earlier registrations shadow later ones.
func (r *Router) Register(pattern string, handler Handler) {
	var keys []string
	var sb strings.Builder
	sb.WriteString("^")
	last := 0
	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(pattern, -1) {
		sb.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		sb.WriteString(`([^/]+)`)
		keys = append(keys, pattern[loc[2]:loc[3]])
		last = loc[1]
	}
	sb.WriteString(regexp.QuoteMeta(pattern[last:]))
	sb.WriteString("$")

	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route{re: regexp.MustCompile(sb.String()), keys: keys, handler: handler})
}

// RegisterMatch adds a generic regexp route. The handler receives the
// raw submatches in Nav.Matches.
func (r *Router) RegisterMatch(re *regexp.Regexp, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route{re: re, generic: true, handler: handler})
}

// NotFound sets the fallback handler for unmatched fragments.
func (r *Router) NotFound(handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound = handler
}

// Navigate resolves path against the registered routes and dispatches
// exactly one handler. An empty path defaults to "/". The allocated
// render token is returned.
func (r *Router) Navigate(ctx context.Context, path string) uint64 {
	if path == "" {
		path = "/"
	}
	token := r.token.Add(1)
	nav := Nav{Path: path, Token: token}

	r.mu.RLock()
	routes := r.routes
	notFound := r.notFound
	r.mu.RUnlock()

	for _, rt := range routes {
		m := rt.re.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		if rt.generic {
			nav.Matches = m
		} else if len(rt.keys) > 0 {
			nav.Params = make(Params, len(rt.keys))
			for i, key := range rt.keys {
				nav.Params[key] = m[i+1]
			}
		}
		rt.handler(ctx, nav)
		return token
	}

	if notFound != nil {
		notFound(ctx, nav)
	}
	return token
}

// Token returns the most recently allocated render token.
func (r *Router) Token() uint64 { return r.token.Load() }

// IsActive reports whether a nav link with the given target should be
// highlighted for the current fragment: any non-empty target that
// prefixes the fragment is active.
func IsActive(fragment, target string) bool {
	if fragment == "" {
		fragment = "/"
	}
	return target != "" && strings.HasPrefix(fragment, target)
}
