package view

import (
	"context"

	"github.com/ymatsuda/trackboard/internal/api"
	"github.com/ymatsuda/trackboard/internal/dates"
	"github.com/ymatsuda/trackboard/internal/notify"
	"github.com/ymatsuda/trackboard/internal/router"
)

type weeklyData struct {
	WeekID     string
	PrevID     string
	NextID     string
	TrendIcon  string
	TrendLabel string
	R          *api.WeeklyReport
}

type weeklyEmptyData struct {
	WeekID string
	PrevID string
	NextID string
}

func (s *Shell) showWeeklyCurrent(ctx context.Context, nav router.Nav) {
	s.renderWeekly(ctx, nav, dates.WeekIDAt(s.now()))
}

func (s *Shell) showWeekly(ctx context.Context, nav router.Nav) {
	s.renderWeekly(ctx, nav, nav.Params["weekId"])
}

// renderWeekly shows one week's report. Week navigation stays available
// even when the week has no report yet.
func (s *Shell) renderWeekly(ctx context.Context, nav router.Nav, weekID string) {
	if _, _, err := dates.ParseWeekID(weekID); err != nil {
		s.region.SetError(nav.Token, render("error_state", err.Error()))
		return
	}
	prevID, _ := dates.PrevWeekID(weekID)
	nextID, _ := dates.NextWeekID(weekID)

	s.region.SetLoading(nav.Token, render("loading", "Loading weekly report..."))

	r, err := s.api.GetWeekly(ctx, weekID)
	if err != nil {
		if api.IsNotFound(err) {
			s.region.SetContent(nav.Token, render("weekly_empty", weeklyEmptyData{WeekID: weekID, PrevID: prevID, NextID: nextID}))
			return
		}
		s.fail(nav.Token, err)
		return
	}

	icon, label := trendDisplay(r.WeeklySummary.ScoreTrend)
	s.region.SetContent(nav.Token, render("weekly", weeklyData{
		WeekID:     weekID,
		PrevID:     prevID,
		NextID:     nextID,
		TrendIcon:  icon,
		TrendLabel: label,
		R:          r,
	}))
}

func trendDisplay(trend string) (icon, label string) {
	switch trend {
	case "improving":
		return "📈", "Trending up"
	case "declining":
		return "📉", "Trending down"
	default:
		return "➡️", "Holding steady"
	}
}

// GenerateWeekly asks the backend to (re)build a week's report and
// reports the outcome as toasts.
func (s *Shell) GenerateWeekly(ctx context.Context, weekID string) {
	if _, _, err := dates.ParseWeekID(weekID); err != nil {
		s.notes.Notify(notify.LevelError, err.Error())
		return
	}
	s.notes.Notify(notify.LevelInfo, "Generating the weekly report. This can take a moment...")
	if _, err := s.api.GenerateWeekly(ctx, weekID); err != nil {
		s.notes.Notify(notify.LevelError, err.Error())
		return
	}
	s.notes.Notify(notify.LevelSuccess, "Weekly report ready.")
}
