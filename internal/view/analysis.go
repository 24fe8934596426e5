package view

import (
	"context"

	"github.com/ymatsuda/trackboard/internal/api"
	"github.com/ymatsuda/trackboard/internal/notify"
	"github.com/ymatsuda/trackboard/internal/router"
)

type analysisData struct {
	A *api.Analysis
}

type analysisEmptyData struct {
	Date     string
	Message  string
	NotFound bool
}

// showAnalysis renders one day's analysis. A day that exists but was
// never analyzed gets the call-to-action screen, not the error screen.
func (s *Shell) showAnalysis(ctx context.Context, nav router.Nav) {
	date := nav.Params["date"]
	s.region.SetLoading(nav.Token, render("loading", "Loading analysis..."))

	a, err := s.api.GetAnalysis(ctx, date)
	if err != nil {
		if api.IsNotFound(err) {
			s.region.SetError(nav.Token, render("analysis_empty", analysisEmptyData{Date: date, NotFound: true}))
			return
		}
		s.region.SetError(nav.Token, render("analysis_empty", analysisEmptyData{Date: date, Message: err.Error()}))
		s.notes.Notify(notify.LevelError, err.Error())
		return
	}

	s.region.SetContent(nav.Token, render("analysis", analysisData{A: a}))
}

// GenerateAnalysis asks the backend to (re)analyze a day and reports
// the outcome as toasts.
func (s *Shell) GenerateAnalysis(ctx context.Context, date string) {
	s.notes.Notify(notify.LevelInfo, "Analyzing your day. This can take a moment...")
	if _, err := s.api.GenerateAnalysis(ctx, date); err != nil {
		s.notes.Notify(notify.LevelError, err.Error())
		return
	}

	// The suggestion archive now has one more analysis to pull from.
	s.mu.Lock()
	s.archive.loaded = false
	s.archive.days = 0
	s.archive.items = nil
	s.mu.Unlock()

	s.notes.Notify(notify.LevelSuccess, "Analysis ready.")
}
