package view

import (
	"context"
	"log"
	"sync"

	"github.com/ymatsuda/trackboard/internal/api"
	"github.com/ymatsuda/trackboard/internal/router"
)

type homeData struct {
	Date        string
	HasRecord   bool
	HasAnalysis bool
	RawInput    string
	Analysis    *api.Analysis
}

// showHome is the dashboard for today. The record and analysis are
// fetched independently; a missing one just hides its card, it never
// fails the screen.
func (s *Shell) showHome(ctx context.Context, nav router.Nav) {
	s.region.SetLoading(nav.Token, render("loading", "Loading today..."))

	date := s.today()
	var (
		rec *api.Record
		an  *api.Analysis
		wg  sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		r, err := s.api.GetRecord(ctx, date)
		if err != nil {
			if !api.IsNotFound(err) {
				log.Printf("view: home record: %v", err)
			}
			return
		}
		rec = r
	}()
	go func() {
		defer wg.Done()
		a, err := s.api.GetAnalysis(ctx, date)
		if err != nil {
			if !api.IsNotFound(err) {
				log.Printf("view: home analysis: %v", err)
			}
			return
		}
		an = a
	}()
	wg.Wait()

	data := homeData{
		Date:        date,
		HasRecord:   rec != nil,
		HasAnalysis: an != nil,
		Analysis:    an,
	}
	if rec != nil {
		data.RawInput = rec.RawInput
	}
	s.region.SetContent(nav.Token, render("home", data))
}
