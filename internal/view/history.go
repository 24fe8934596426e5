package view

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ymatsuda/trackboard/internal/api"
	"github.com/ymatsuda/trackboard/internal/dates"
	"github.com/ymatsuda/trackboard/internal/router"
)

const historyListCap = 30

type calendarCell struct {
	Day   int
	Date  string
	Score *int
	Class string
	Link  string
}

type calendarData struct {
	MonthLabel string
	Weekdays   []string
	Blanks     []int
	Cells      []calendarCell
}

type historyItem struct {
	Date          string
	Preview       string
	CompletionPct int
	Score         *int
	ScoreValue    int
}

type historyData struct {
	Calendar calendarData
	Items    []historyItem
}

// showHistory renders the trailing three months: a calendar for the
// current month plus the latest entries. Records and analyses are
// fetched in parallel; unlike home, either failing fails the screen.
func (s *Shell) showHistory(ctx context.Context, nav router.Nav) {
	s.region.SetLoading(nav.Token, render("loading", "Loading history..."))

	now := s.now()
	start := dates.WindowStart(now, 3)
	end := dates.DayKey(now)

	var (
		records  []api.Record
		analyses []api.Analysis
		recErr   error
		anErr    error
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		records, recErr = s.api.ListRecords(ctx, start, end)
	}()
	go func() {
		defer wg.Done()
		analyses, anErr = s.api.ListAnalyses(ctx, start, end)
	}()
	wg.Wait()
	if recErr != nil {
		s.fail(nav.Token, recErr)
		return
	}
	if anErr != nil {
		s.fail(nav.Token, anErr)
		return
	}

	if len(records) == 0 {
		s.region.SetContent(nav.Token, render("history_empty", nil))
		return
	}

	scores := make(map[string]int, len(analyses))
	for _, a := range analyses {
		scores[a.Date] = a.Summary.OverallScore
	}
	recorded := make(map[string]bool, len(records))
	for _, r := range records {
		recorded[r.Date] = true
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })
	items := make([]historyItem, 0, historyListCap)
	for _, r := range records {
		if len(items) == historyListCap {
			break
		}
		item := historyItem{
			Date:          r.Date,
			Preview:       r.RawInput,
			CompletionPct: int(r.Tasks.CompletionRate * 100),
		}
		if score, ok := scores[r.Date]; ok {
			sc := score
			item.Score = &sc
			item.ScoreValue = score
		}
		items = append(items, item)
	}

	s.region.SetContent(nav.Token, render("history", historyData{
		Calendar: buildCalendar(now, recorded, scores),
		Items:    items,
	}))
}

// buildCalendar lays out the current month Sunday-first. A day links to
// its analysis when one exists, otherwise to its entry form.
func buildCalendar(now time.Time, recorded map[string]bool, scores map[string]int) calendarData {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	today := dates.DayKey(now)

	cal := calendarData{
		MonthLabel: now.Format("January 2006"),
		Weekdays:   []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		Blanks:     make([]int, int(first.Weekday())),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", now.Year(), int(now.Month()), day)
		cell := calendarCell{Day: day, Date: date, Class: "cal-cell", Link: "/app/input/" + date}
		if score, ok := scores[date]; ok {
			sc := score
			cell.Score = &sc
			cell.Class += " score-" + Band(score) + "-bg"
			cell.Link = "/app/analysis/" + date
		} else if recorded[date] {
			cell.Class += " has-record-bg"
		}
		if date == today {
			cell.Class += " today"
		}
		cal.Cells = append(cal.Cells, cell)
	}
	return cal
}
