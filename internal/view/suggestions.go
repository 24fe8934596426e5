package view

import (
	"context"
	"sort"

	"github.com/ymatsuda/trackboard/internal/dates"
	"github.com/ymatsuda/trackboard/internal/router"
)

type archiveFilters struct {
	priority string
	category string

	// Filter changes recompute from memory without hitting the backend
	// again; the cache is dropped when a new analysis is generated.
	loaded bool
	days   int
	items  []suggestionItem
}

type suggestionItem struct {
	Date     string
	Priority string
	Category string
	Text     string
	Score    *int
}

type suggestionsData struct {
	Days            int
	Total           int
	High            int
	Medium          int
	Low             int
	Priority        string
	Category        string
	PriorityOptions []string
	Categories      []string
	Items           []suggestionItem
}

var priorityOptions = []string{"all", "high", "medium", "low"}

// priorityRank orders suggestion cards: high first, unknown values last.
func priorityRank(p string) int {
	switch p {
	case "high":
		return 0
	case "medium":
		return 1
	case "low":
		return 2
	default:
		return 3
	}
}

// showSuggestions renders the archive of every suggestion from the
// trailing three months of analyses. The summary counts always cover
// the full archive; the filters only narrow the card list.
func (s *Shell) showSuggestions(ctx context.Context, nav router.Nav) {
	s.mu.Lock()
	loaded := s.archive.loaded
	s.mu.Unlock()

	if !loaded {
		s.region.SetLoading(nav.Token, render("loading", "Loading suggestions..."))

		now := s.now()
		analyses, err := s.api.ListAnalyses(ctx, dates.WindowStart(now, 3), dates.DayKey(now))
		if err != nil {
			s.fail(nav.Token, err)
			return
		}

		var all []suggestionItem
		for _, a := range analyses {
			score := a.Summary.OverallScore
			for _, sug := range a.Analysis.ImprovementSuggestions {
				sc := score
				all = append(all, suggestionItem{
					Date:     a.Date,
					Priority: sug.Priority,
					Category: sug.Category,
					Text:     sug.Suggestion,
					Score:    &sc,
				})
			}
		}

		s.mu.Lock()
		s.archive.loaded = true
		s.archive.days = len(analyses)
		s.archive.items = all
		s.mu.Unlock()
	}

	s.mu.Lock()
	all := s.archive.items
	days := s.archive.days
	s.mu.Unlock()

	if days == 0 {
		s.region.SetContent(nav.Token, render("suggestions_empty", nil))
		return
	}

	catSet := make(map[string]bool)
	for _, item := range all {
		if item.Category != "" {
			catSet[item.Category] = true
		}
	}

	data := suggestionsData{
		Days:            days,
		Total:           len(all),
		PriorityOptions: priorityOptions,
	}
	for _, item := range all {
		switch item.Priority {
		case "high":
			data.High++
		case "medium":
			data.Medium++
		case "low":
			data.Low++
		}
	}
	for cat := range catSet {
		data.Categories = append(data.Categories, cat)
	}
	sort.Strings(data.Categories)

	s.mu.Lock()
	data.Priority = s.archive.priority
	data.Category = s.archive.category
	s.mu.Unlock()

	for _, item := range all {
		if data.Priority != "all" && item.Priority != data.Priority {
			continue
		}
		if data.Category != "all" && item.Category != data.Category {
			continue
		}
		data.Items = append(data.Items, item)
	}
	sort.SliceStable(data.Items, func(i, j int) bool {
		if data.Items[i].Date != data.Items[j].Date {
			return data.Items[i].Date > data.Items[j].Date
		}
		return priorityRank(data.Items[i].Priority) < priorityRank(data.Items[j].Priority)
	})

	s.region.SetContent(nav.Token, render("suggestions", data))
}

// FilterSuggestions stores the archive filters. Unknown values fall
// back to "all".
func (s *Shell) FilterSuggestions(priority, category string) {
	valid := false
	for _, p := range priorityOptions {
		if p == priority {
			valid = true
			break
		}
	}
	if !valid {
		priority = "all"
	}
	if category == "" {
		category = "all"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.archive.priority = priority
	s.archive.category = category
}
