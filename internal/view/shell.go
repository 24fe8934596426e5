// Package view holds the screen components of the tracker UI. A Shell
// owns the fragment router, the single content region every screen
// renders into, and the per-screen state that survives between renders.
package view

import (
	"context"
	"sync"
	"time"

	"github.com/ymatsuda/trackboard/internal/api"
	"github.com/ymatsuda/trackboard/internal/dates"
	"github.com/ymatsuda/trackboard/internal/notify"
	"github.com/ymatsuda/trackboard/internal/router"
)

// Shell wires the screens together. One Shell serves one UI session.
type Shell struct {
	api    *api.Client
	notes  notify.Notifier
	region *Region
	router *router.Router
	now    func() time.Time

	mu       sync.Mutex
	fragment string
	forms    map[string]*Form
	uploads  map[string]*Upload
	archive  archiveFilters
}

// NewShell builds a shell and registers every screen. Registration
// order matters: /input must come before /input/:date so the literal
// form wins for today's entry.
func NewShell(client *api.Client, notes notify.Notifier) *Shell {
	s := &Shell{
		api:     client,
		notes:   notes,
		region:  NewRegion(),
		router:  router.New(),
		now:     time.Now,
		forms:   make(map[string]*Form),
		uploads: make(map[string]*Upload),
		archive: archiveFilters{priority: "all", category: "all"},
	}
	s.router.Register("/", s.showHome)
	s.router.Register("/input", s.showInputToday)
	s.router.Register("/input/:date", s.showInput)
	s.router.Register("/analysis/:date", s.showAnalysis)
	s.router.Register("/history", s.showHistory)
	s.router.Register("/weekly", s.showWeeklyCurrent)
	s.router.Register("/weekly/:weekId", s.showWeekly)
	s.router.Register("/suggestions", s.showSuggestions)
	s.router.NotFound(s.showNotFound)
	return s
}

// Navigate resolves a fragment and renders the matching screen into the
// region. It returns the render token of this navigation.
func (s *Shell) Navigate(ctx context.Context, fragment string) uint64 {
	s.mu.Lock()
	s.fragment = fragment
	s.mu.Unlock()
	return s.router.Navigate(ctx, fragment)
}

// Region exposes the content slot for the page renderer.
func (s *Shell) Region() *Region { return s.region }

// Fragment returns the last navigated fragment.
func (s *Shell) Fragment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fragment
}

// NavActive reports whether a nav link target should be highlighted for
// the current fragment.
func (s *Shell) NavActive(target string) bool {
	return router.IsActive(s.Fragment(), target)
}

func (s *Shell) today() string {
	return dates.DayKey(s.now())
}

// fail renders the generic error screen and raises an error toast.
func (s *Shell) fail(token uint64, err error) {
	s.region.SetError(token, render("error_state", err.Error()))
	s.notes.Notify(notify.LevelError, err.Error())
}

func (s *Shell) showNotFound(ctx context.Context, nav router.Nav) {
	s.region.SetError(nav.Token, render("notfound", nil))
}
