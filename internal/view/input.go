package view

import (
	"context"
	"strings"

	"github.com/ymatsuda/trackboard/internal/api"
	"github.com/ymatsuda/trackboard/internal/notify"
	"github.com/ymatsuda/trackboard/internal/router"
)

// TaskItem is one task row in the input form.
type TaskItem struct {
	Text      string
	Completed bool
}

// Form is the input screen's working state for one date. It is the
// authoritative copy: task toggles and additions mutate it directly and
// are only sent to the backend on save.
type Form struct {
	Date     string
	RawInput string
	Tasks    []TaskItem
	EditMode bool
	loaded   bool
}

type inputData struct {
	Date     string
	RawInput string
	Tasks    []TaskItem
	EditMode bool
	Upload   *Upload
}

// formLocked returns the form for a date, creating it on first use.
// Caller holds s.mu.
func (s *Shell) formLocked(date string) *Form {
	f, ok := s.forms[date]
	if !ok {
		f = &Form{Date: date}
		s.forms[date] = f
	}
	return f
}

// seedForm replaces the form state with the backend's record.
func (s *Shell) seedForm(rec *api.Record) {
	completed := make(map[string]bool, len(rec.Tasks.Completed))
	for _, t := range rec.Tasks.Completed {
		completed[t] = true
	}
	tasks := make([]TaskItem, 0, len(rec.Tasks.Planned))
	for _, t := range rec.Tasks.Planned {
		tasks = append(tasks, TaskItem{Text: t, Completed: completed[t]})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[rec.Date] = &Form{
		Date:     rec.Date,
		RawInput: rec.RawInput,
		Tasks:    tasks,
		EditMode: true,
		loaded:   true,
	}
}

func (s *Shell) showInputToday(ctx context.Context, nav router.Nav) {
	s.renderInput(ctx, nav, s.today())
}

func (s *Shell) showInput(ctx context.Context, nav router.Nav) {
	s.renderInput(ctx, nav, nav.Params["date"])
}

// renderInput shows the entry form for a date. The first visit loads
// any existing record; later visits keep whatever the user has typed.
func (s *Shell) renderInput(ctx context.Context, nav router.Nav, date string) {
	s.mu.Lock()
	needsLoad := !s.formLocked(date).loaded
	s.mu.Unlock()

	if needsLoad {
		s.region.SetLoading(nav.Token, render("loading", "Loading entry..."))
		rec, err := s.api.GetRecord(ctx, date)
		switch {
		case err == nil:
			s.seedForm(rec)
		case api.IsNotFound(err):
			s.mu.Lock()
			s.formLocked(date).loaded = true
			s.mu.Unlock()
		default:
			s.fail(nav.Token, err)
			return
		}
	}

	s.mu.Lock()
	f := s.formLocked(date)
	data := inputData{
		Date:     f.Date,
		RawInput: f.RawInput,
		Tasks:    append([]TaskItem(nil), f.Tasks...),
		EditMode: f.EditMode,
		Upload:   s.uploadLocked(date).snapshot(),
	}
	s.mu.Unlock()

	s.region.SetContent(nav.Token, render("input", data))
}

// SetRawInput stores the textarea contents for a date.
func (s *Shell) SetRawInput(date, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formLocked(date).RawInput = text
}

// AddTask appends a task to the form. Blank text is rejected with a
// toast and nothing is added.
func (s *Shell) AddTask(date, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.notes.Notify(notify.LevelError, "Task text can't be empty.")
		return
	}
	s.mu.Lock()
	f := s.formLocked(date)
	f.Tasks = append(f.Tasks, TaskItem{Text: text})
	s.mu.Unlock()
}

// ToggleTask flips a task's completed flag. Out-of-range indices are
// ignored.
func (s *Shell) ToggleTask(date string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.formLocked(date)
	if index < 0 || index >= len(f.Tasks) {
		return
	}
	f.Tasks[index].Completed = !f.Tasks[index].Completed
}

// RemoveTask deletes a task row. Out-of-range indices are ignored.
func (s *Shell) RemoveTask(date string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.formLocked(date)
	if index < 0 || index >= len(f.Tasks) {
		return
	}
	f.Tasks = append(f.Tasks[:index], f.Tasks[index+1:]...)
}

// SaveRecord persists the form and reports whether it succeeded. An
// empty log is rejected locally and never reaches the backend. A new
// entry is created; an existing one is updated in place.
func (s *Shell) SaveRecord(ctx context.Context, date string) bool {
	s.mu.Lock()
	f := s.formLocked(date)
	raw := f.RawInput
	edit := f.EditMode
	planned := []string{}
	completed := []string{}
	for _, t := range f.Tasks {
		planned = append(planned, t.Text)
		if t.Completed {
			completed = append(completed, t.Text)
		}
	}
	s.mu.Unlock()

	if strings.TrimSpace(raw) == "" {
		s.notes.Notify(notify.LevelError, "Write something about your day first.")
		return false
	}

	var (
		rec *api.Record
		err error
	)
	if edit {
		rec, err = s.api.UpdateRecord(ctx, date, api.RecordUpdate{RawInput: raw, TasksCompleted: completed})
	} else {
		rec, err = s.api.CreateRecord(ctx, date, raw, planned)
		if err == nil && len(completed) > 0 {
			rec, err = s.api.UpdateRecord(ctx, date, api.RecordUpdate{RawInput: raw, TasksCompleted: completed})
		}
	}
	if err != nil {
		s.notes.Notify(notify.LevelError, err.Error())
		return false
	}

	s.seedForm(rec)
	if edit {
		s.notes.Notify(notify.LevelSuccess, "Entry updated.")
	} else {
		s.notes.Notify(notify.LevelSuccess, "Entry saved.")
	}
	return true
}
