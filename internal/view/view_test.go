package view

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ymatsuda/trackboard/internal/api"
	"github.com/ymatsuda/trackboard/internal/notify"
)

type toastRecorder struct {
	mu     sync.Mutex
	toasts []notify.Toast
}

func (r *toastRecorder) Notify(level notify.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, notify.Toast{Level: level, Message: message})
}

func (r *toastRecorder) last() (notify.Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return notify.Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
}

// setupShell runs a fake backend and returns a shell pinned to a fixed
// clock. The handler may be nil for screens that never fetch.
func setupShell(t *testing.T, configure func(r chi.Router)) (*Shell, *toastRecorder) {
	t.Helper()
	r := chi.NewRouter()
	if configure != nil {
		configure(r)
	}
	r.NotFound(notFound)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	notes := &toastRecorder{}
	s := NewShell(api.NewClient(srv.URL, srv.Client()), notes)
	s.now = func() time.Time {
		return time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	}
	return s, notes
}

func contentOf(t *testing.T, s *Shell) string {
	t.Helper()
	_, html := s.region.Snapshot()
	return html
}

func sampleAnalysis(date string, score int) api.Analysis {
	return api.Analysis{
		ID:   "a-" + date,
		Date: date,
		Summary: api.AnalysisSummary{
			ProductiveHours:    5.5,
			WastedHours:        2.0,
			YoutubeHours:       1.5,
			TaskCompletionRate: 0.75,
			OverallScore:       score,
		},
		Analysis: api.AnalysisDetail{
			GoodPoints: []string{"morning deep work"},
			BadPoints:  []string{"late start after lunch"},
			ImprovementSuggestions: []api.ImprovementSuggestion{
				{Suggestion: "block YouTube until evening", Priority: "high", Category: "focus"},
			},
		},
	}
}

func TestHomeShowsScoreAndDetailsLink(t *testing.T) {
	s, _ := setupShell(t, func(r chi.Router) {
		r.Get("/records/2026-03-14", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, api.Record{ID: "r1", Date: "2026-03-14", RawInput: "8:00 起床"})
		})
		r.Get("/analysis/2026-03-14", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, sampleAnalysis("2026-03-14", 82))
		})
	})

	s.Navigate(context.Background(), "/")

	html := contentOf(t, s)
	if !strings.Contains(html, "82") || !strings.Contains(html, "good") {
		t.Errorf("expected the score card in the good band, got:\n%s", html)
	}
	if !strings.Contains(html, "/app/analysis/2026-03-14") {
		t.Error("expected a link to the analysis detail")
	}
	if strings.Contains(html, "Log your day") {
		t.Error("recorded day must not show the empty-log prompt")
	}
}

func TestHomeToleratesMissingData(t *testing.T) {
	s, notes := setupShell(t, nil)

	s.Navigate(context.Background(), "/")

	html := contentOf(t, s)
	if !strings.Contains(html, "Log your day") {
		t.Errorf("expected the log prompt for an empty day, got:\n%s", html)
	}
	if toast, ok := notes.last(); ok {
		t.Errorf("missing data must not toast, got %+v", toast)
	}
}

func TestRootAndInputAreDistinctScreens(t *testing.T) {
	s, _ := setupShell(t, nil)

	s.Navigate(context.Background(), "/input")
	if html := contentOf(t, s); !strings.Contains(html, "record-form") {
		t.Errorf("expected the input form, got:\n%s", html)
	}

	s.Navigate(context.Background(), "/nonsense")
	if html := contentOf(t, s); !strings.Contains(html, "Page not found") {
		t.Errorf("expected the not-found screen, got:\n%s", html)
	}
}

func TestInputParamRouteLoadsExistingRecord(t *testing.T) {
	s, _ := setupShell(t, func(r chi.Router) {
		r.Get("/records/2026-03-10", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, api.Record{
				ID:       "r1",
				Date:     "2026-03-10",
				RawInput: "9:00-12:00 proposal draft",
				Tasks:    api.Tasks{Planned: []string{"draft", "review"}, Completed: []string{"draft"}},
			})
		})
	})

	s.Navigate(context.Background(), "/input/2026-03-10")

	html := contentOf(t, s)
	if !strings.Contains(html, "proposal draft") {
		t.Error("expected the stored log in the textarea")
	}
	if !strings.Contains(html, "Update entry") {
		t.Error("an existing record must render in edit mode")
	}
	if !strings.Contains(html, "☑") || !strings.Contains(html, "☐") {
		t.Error("expected one completed and one open task")
	}
}

func TestSaveRejectsEmptyLogWithoutNetwork(t *testing.T) {
	var hits atomic.Int64
	s, notes := setupShell(t, func(r chi.Router) {
		r.Post("/records", func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			writeJSON(w, http.StatusOK, api.Record{Date: "2026-03-14"})
		})
	})

	s.SetRawInput("2026-03-14", "   \n ")
	s.SaveRecord(context.Background(), "2026-03-14")

	if hits.Load() != 0 {
		t.Error("an empty log must never reach the backend")
	}
	toast, ok := notes.last()
	if !ok || toast.Level != notify.LevelError {
		t.Errorf("expected an error toast, got %+v", toast)
	}
}

func TestSaveSendsEmptyListWhenAllTasksUnchecked(t *testing.T) {
	var (
		mu   sync.Mutex
		body map[string]json.RawMessage
	)
	s, notes := setupShell(t, func(r chi.Router) {
		r.Get("/records/2026-03-10", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, api.Record{
				ID:       "r1",
				Date:     "2026-03-10",
				RawInput: "9:00-12:00 proposal draft",
				Tasks:    api.Tasks{Planned: []string{"draft"}, Completed: []string{"draft"}},
			})
		})
		r.Put("/records/2026-03-10", func(w http.ResponseWriter, req *http.Request) {
			mu.Lock()
			json.NewDecoder(req.Body).Decode(&body)
			mu.Unlock()
			writeJSON(w, http.StatusOK, api.Record{
				ID:       "r1",
				Date:     "2026-03-10",
				RawInput: "9:00-12:00 proposal draft",
				Tasks:    api.Tasks{Planned: []string{"draft"}},
			})
		})
	})

	s.Navigate(context.Background(), "/input/2026-03-10")
	s.ToggleTask("2026-03-10", 0) // un-complete the only task
	if !s.SaveRecord(context.Background(), "2026-03-10") {
		toast, _ := notes.last()
		t.Fatalf("expected the save to succeed, last toast %+v", toast)
	}

	mu.Lock()
	defer mu.Unlock()
	raw, ok := body["tasks_completed"]
	if !ok {
		t.Fatalf("the update must always carry tasks_completed, got body %v", body)
	}
	var completed []string
	if err := json.Unmarshal(raw, &completed); err != nil {
		t.Fatalf("tasks_completed: %v", err)
	}
	if completed == nil || len(completed) != 0 {
		t.Errorf("un-checking every task must send an empty list, got %s", raw)
	}
}

func TestSaveCreatesThenSwitchesToEditMode(t *testing.T) {
	s, notes := setupShell(t, func(r chi.Router) {
		r.Post("/records", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Date         string   `json:"date"`
				RawInput     string   `json:"raw_input"`
				TasksPlanned []string `json:"tasks_planned"`
			}
			json.NewDecoder(req.Body).Decode(&body)
			writeJSON(w, http.StatusOK, api.Record{
				ID:       "r1",
				Date:     body.Date,
				RawInput: body.RawInput,
				Tasks:    api.Tasks{Planned: body.TasksPlanned},
			})
		})
	})

	s.SetRawInput("2026-03-14", "8:00 起床")
	s.AddTask("2026-03-14", "write report")
	s.SaveRecord(context.Background(), "2026-03-14")

	toast, ok := notes.last()
	if !ok || toast.Level != notify.LevelSuccess {
		t.Fatalf("expected a success toast, got %+v", toast)
	}

	s.Navigate(context.Background(), "/input")
	if html := contentOf(t, s); !strings.Contains(html, "Update entry") {
		t.Error("a saved form must re-render in edit mode")
	}
}

func TestTaskEditsAreLocalUntilSave(t *testing.T) {
	s, notes := setupShell(t, nil)

	s.AddTask("2026-03-14", "  ")
	if toast, ok := notes.last(); !ok || toast.Level != notify.LevelError {
		t.Errorf("blank task must toast an error, got %+v", toast)
	}

	s.AddTask("2026-03-14", "ship release")
	s.ToggleTask("2026-03-14", 0)
	s.ToggleTask("2026-03-14", 5) // out of range, ignored
	s.RemoveTask("2026-03-14", -1)

	s.Navigate(context.Background(), "/input")
	html := contentOf(t, s)
	if !strings.Contains(html, "ship release") || !strings.Contains(html, "☑") {
		t.Errorf("expected the toggled task, got:\n%s", html)
	}
}

func TestAnalysisMissingShowsPromptNotError(t *testing.T) {
	s, notes := setupShell(t, nil)

	s.Navigate(context.Background(), "/analysis/2026-03-01")

	html := contentOf(t, s)
	if !strings.Contains(html, "Analyze now") {
		t.Errorf("expected the analyze call to action, got:\n%s", html)
	}
	if toast, ok := notes.last(); ok {
		t.Errorf("a missing analysis must not toast, got %+v", toast)
	}
}

func TestAnalysisServerErrorToasts(t *testing.T) {
	s, notes := setupShell(t, func(r chi.Router) {
		r.Get("/analysis/2026-03-01", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "llm unavailable"})
		})
	})

	s.Navigate(context.Background(), "/analysis/2026-03-01")

	if html := contentOf(t, s); !strings.Contains(html, "llm unavailable") {
		t.Errorf("expected the backend detail on screen, got:\n%s", html)
	}
	toast, ok := notes.last()
	if !ok || toast.Level != notify.LevelError || toast.Message != "llm unavailable" {
		t.Errorf("expected an error toast with the backend detail, got %+v", toast)
	}
}

func TestHistoryCapsListAndColorsCalendar(t *testing.T) {
	var records []api.Record
	for day := 1; day <= 14; day++ {
		records = append(records, api.Record{
			Date:     time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			RawInput: "entry",
			Tasks:    api.Tasks{CompletionRate: 0.5},
		})
	}
	for day := 1; day <= 20; day++ {
		records = append(records, api.Record{
			Date:     time.Date(2026, time.February, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			RawInput: "entry",
		})
	}

	s, _ := setupShell(t, func(r chi.Router) {
		r.Get("/records", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, records)
		})
		r.Get("/analysis", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, []api.Analysis{
				sampleAnalysis("2026-03-10", 85),
				sampleAnalysis("2026-03-11", 20),
			})
		})
	})

	s.Navigate(context.Background(), "/history")

	html := contentOf(t, s)
	if !strings.Contains(html, "latest 30") {
		t.Errorf("expected the list capped at 30 of 34 records, got:\n%s", html)
	}
	if !strings.Contains(html, "score-good-bg") || !strings.Contains(html, "score-bad-bg") {
		t.Error("expected band colors on analyzed calendar days")
	}
	if !strings.Contains(html, "/app/analysis/2026-03-10") {
		t.Error("an analyzed day must link to its analysis")
	}
	if !strings.Contains(html, "/app/input/2026-03-05") {
		t.Error("an unanalyzed day must link to its entry form")
	}
	if !strings.Contains(html, "March 2026") {
		t.Error("expected the current month label")
	}
}

func TestHistoryEmptyState(t *testing.T) {
	s, _ := setupShell(t, func(r chi.Router) {
		r.Get("/records", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, []api.Record{})
		})
		r.Get("/analysis", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, []api.Analysis{})
		})
	})

	s.Navigate(context.Background(), "/history")

	if html := contentOf(t, s); !strings.Contains(html, "No entries yet") {
		t.Errorf("expected the empty history screen, got:\n%s", html)
	}
}

func TestHistoryFetchesRecordsAndAnalysesInParallel(t *testing.T) {
	// Both list handlers block until each has been entered, so the
	// navigation only completes when the fetches overlap in time.
	var inFlight sync.WaitGroup
	inFlight.Add(2)
	release := make(chan struct{})
	bail := make(chan struct{})
	go func() {
		inFlight.Wait()
		close(release)
	}()

	s, _ := setupShell(t, func(r chi.Router) {
		r.Get("/records", func(w http.ResponseWriter, _ *http.Request) {
			inFlight.Done()
			select {
			case <-release:
			case <-bail:
			}
			writeJSON(w, http.StatusOK, []api.Record{{Date: "2026-03-10", RawInput: "entry"}})
		})
		r.Get("/analysis", func(w http.ResponseWriter, _ *http.Request) {
			inFlight.Done()
			select {
			case <-release:
			case <-bail:
			}
			writeJSON(w, http.StatusOK, []api.Analysis{})
		})
	})

	done := make(chan struct{})
	go func() {
		s.Navigate(context.Background(), "/history")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		close(bail)
		t.Fatal("history fetches ran sequentially")
	}
	if html := contentOf(t, s); !strings.Contains(html, "2026-03-10") {
		t.Errorf("expected the fetched entry, got:\n%s", html)
	}
}

func TestWeeklyMissingReportKeepsNavigation(t *testing.T) {
	s, _ := setupShell(t, nil)

	// 2026-03-14 falls in ISO week 2026-W11.
	s.Navigate(context.Background(), "/weekly")

	html := contentOf(t, s)
	if !strings.Contains(html, "2026-W11") {
		t.Errorf("expected the current week id, got:\n%s", html)
	}
	if !strings.Contains(html, "/app/weekly/2026-W10") || !strings.Contains(html, "/app/weekly/2026-W12") {
		t.Error("expected prev/next week links on the empty state")
	}
	if !strings.Contains(html, "Generate weekly report") {
		t.Error("expected the generate call to action")
	}
}

func TestWeeklyYearBoundaryNavigation(t *testing.T) {
	s, _ := setupShell(t, nil)

	s.Navigate(context.Background(), "/weekly/2026-W01")

	html := contentOf(t, s)
	if !strings.Contains(html, "/app/weekly/2025-W52") {
		t.Errorf("expected the previous week to roll into 2025, got:\n%s", html)
	}
}

func TestWeeklyRejectsMalformedWeekID(t *testing.T) {
	var hits atomic.Int64
	s, _ := setupShell(t, func(r chi.Router) {
		r.Get("/weekly/{weekID}", func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			notFound(w, nil)
		})
	})

	s.Navigate(context.Background(), "/weekly/garbage")

	if hits.Load() != 0 {
		t.Error("a malformed week id must not reach the backend")
	}
	if state, _ := s.region.Snapshot(); state != StateError {
		t.Errorf("expected the error state, got %s", state)
	}
}

func TestSuggestionsCountsAndFilters(t *testing.T) {
	a1 := sampleAnalysis("2026-03-10", 80)
	a2 := sampleAnalysis("2026-03-12", 35)
	a2.Analysis.ImprovementSuggestions = []api.ImprovementSuggestion{
		{Suggestion: "go to bed before midnight", Priority: "medium", Category: "sleep"},
		{Suggestion: "prep tomorrow's plan", Priority: "low", Category: "planning"},
	}

	var hits atomic.Int64
	s, _ := setupShell(t, func(r chi.Router) {
		r.Get("/analysis", func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			writeJSON(w, http.StatusOK, []api.Analysis{a1, a2})
		})
	})

	s.Navigate(context.Background(), "/suggestions")
	html := contentOf(t, s)
	if !strings.Contains(html, "3 suggestions from 2 analyzed days") {
		t.Errorf("expected the archive summary, got:\n%s", html)
	}
	// Newest day first; its medium suggestion precedes its low one.
	bedIdx := strings.Index(html, "go to bed before midnight")
	planIdx := strings.Index(html, "prep tomorrow's plan")
	blockIdx := strings.Index(html, "block YouTube until evening")
	if bedIdx == -1 || planIdx == -1 || blockIdx == -1 {
		t.Fatalf("expected all three suggestions, got:\n%s", html)
	}
	if !(bedIdx < planIdx && planIdx < blockIdx) {
		t.Error("expected date-desc then priority ordering")
	}

	s.FilterSuggestions("high", "all")
	s.Navigate(context.Background(), "/suggestions")
	html = contentOf(t, s)
	if strings.Contains(html, "go to bed before midnight") {
		t.Error("the high filter must hide medium suggestions")
	}
	if !strings.Contains(html, "block YouTube until evening") {
		t.Error("the high filter must keep high suggestions")
	}
	if !strings.Contains(html, "3 suggestions from 2 analyzed days") {
		t.Error("summary counts must ignore the active filters")
	}

	s.FilterSuggestions("bogus", "")
	s.Navigate(context.Background(), "/suggestions")
	if html := contentOf(t, s); !strings.Contains(html, "go to bed before midnight") {
		t.Error("unknown filter values must fall back to all")
	}

	if hits.Load() != 1 {
		t.Errorf("filter changes must recompute from memory, backend hit %d times", hits.Load())
	}
}

func TestSuggestionsRefreshAfterNewAnalysis(t *testing.T) {
	a1 := sampleAnalysis("2026-03-10", 80)
	a2 := sampleAnalysis("2026-03-14", 65)
	a2.Analysis.ImprovementSuggestions = []api.ImprovementSuggestion{
		{Suggestion: "take a walk after lunch", Priority: "low", Category: "health"},
	}

	var (
		mu       sync.Mutex
		analyses = []api.Analysis{a1}
		hits     atomic.Int64
	)
	s, _ := setupShell(t, func(r chi.Router) {
		r.Get("/analysis", func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			mu.Lock()
			defer mu.Unlock()
			writeJSON(w, http.StatusOK, analyses)
		})
		r.Post("/analysis/2026-03-14/generate", func(w http.ResponseWriter, _ *http.Request) {
			mu.Lock()
			analyses = append(analyses, a2)
			mu.Unlock()
			writeJSON(w, http.StatusOK, a2)
		})
	})

	s.Navigate(context.Background(), "/suggestions")
	if html := contentOf(t, s); strings.Contains(html, "take a walk after lunch") {
		t.Fatal("the new suggestion must not exist yet")
	}

	s.GenerateAnalysis(context.Background(), "2026-03-14")

	s.Navigate(context.Background(), "/suggestions")
	html := contentOf(t, s)
	if !strings.Contains(html, "take a walk after lunch") {
		t.Errorf("a freshly generated analysis must show up in the archive, got:\n%s", html)
	}
	if hits.Load() != 2 {
		t.Errorf("expected a refetch after generating, backend hit %d times", hits.Load())
	}
}

func TestUploadRejectsBadImages(t *testing.T) {
	s, notes := setupShell(t, nil)

	s.PreviewScreenshot("2026-03-14", "notes.txt", "text/plain", []byte("hello"))
	if toast, _ := notes.last(); toast.Level != notify.LevelError {
		t.Error("a non-image must be rejected")
	}

	s.PreviewScreenshot("2026-03-14", "big.png", "image/png", make([]byte, maxScreenshotBytes+1))
	if toast, _ := notes.last(); !strings.Contains(toast.Message, "10MB") {
		t.Errorf("an oversized image must name the limit, got %q", toast.Message)
	}

	s.Navigate(context.Background(), "/input")
	if html := contentOf(t, s); !strings.Contains(html, "Choose image") {
		t.Error("rejected picks must leave the placeholder in place")
	}
}

func TestUploadPreviewExtractReset(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfakepixels")
	s, notes := setupShell(t, func(r chi.Router) {
		r.Post("/screenshots/{date}", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]api.ScreenTime{"screen_time": {
				Apps:                   []api.ScreenTimeApp{{Name: "YouTube", DurationMinutes: 95}},
				TotalScreenTimeMinutes: 180,
				ExtractionConfidence:   "high",
			}})
		})
	})

	s.PreviewScreenshot("2026-03-14", "shot.png", "image/png", png)
	s.Navigate(context.Background(), "/input")
	if html := contentOf(t, s); !strings.Contains(html, "data:image/png;base64,") {
		t.Errorf("expected the inline preview image, got:\n%s", html)
	}

	s.UploadScreenshot(context.Background(), "2026-03-14")
	if toast, _ := notes.last(); toast.Level != notify.LevelSuccess {
		t.Fatalf("expected a success toast, got %+v", toast)
	}
	s.Navigate(context.Background(), "/input")
	html := contentOf(t, s)
	if !strings.Contains(html, "YouTube") || !strings.Contains(html, "1h35m") || !strings.Contains(html, "3h0m") {
		t.Errorf("expected the usage breakdown, got:\n%s", html)
	}

	s.ResetScreenshot("2026-03-14")
	s.Navigate(context.Background(), "/input")
	if html := contentOf(t, s); !strings.Contains(html, "Choose image") {
		t.Error("reset must return to the placeholder")
	}
}

func TestStaleRenderNeverOverwritesNewer(t *testing.T) {
	r := NewRegion()
	if !r.SetLoading(1, "spinner") {
		t.Fatal("first write must apply")
	}
	if !r.SetContent(2, "new screen") {
		t.Fatal("newer write must apply")
	}
	if r.SetContent(1, "slow old screen") {
		t.Error("an older token must be discarded")
	}
	if _, html := r.Snapshot(); html != "new screen" {
		t.Errorf("expected the newer screen to survive, got %q", html)
	}
}
