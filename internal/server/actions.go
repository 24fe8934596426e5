package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ymatsuda/trackboard/internal/notify"
)

// registerActions mounts the form endpoints. Every action mutates the
// session's shell, then redirects back into the screen that shows the
// result; the redirected GET re-renders it.
func (s *Server) registerActions(r chi.Router) {
	r.Post("/app/records/{date}", s.actionSaveRecord)
	r.Post("/app/records/{date}/tasks", s.actionAddTask)
	r.Post("/app/records/{date}/tasks/toggle", s.actionToggleTask)
	r.Post("/app/records/{date}/tasks/remove", s.actionRemoveTask)
	r.Post("/app/analysis/{date}/generate", s.actionGenerateAnalysis)
	r.Post("/app/weekly/{weekID}/generate", s.actionGenerateWeekly)
	r.Post("/app/suggestions/filter", s.actionFilterSuggestions)
	r.Post("/app/screenshots/{date}/preview", s.actionPreviewScreenshot)
	r.Post("/app/screenshots/{date}", s.actionUploadScreenshot)
	r.Post("/app/screenshots/{date}/reset", s.actionResetScreenshot)
}

func seeOther(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (s *Server) actionSaveRecord(w http.ResponseWriter, r *http.Request) {
	sh := s.session(w, r).shell
	date := chi.URLParam(r, "date")
	sh.SetRawInput(date, r.PostFormValue("raw_input"))
	if sh.SaveRecord(r.Context(), date) {
		seeOther(w, r, "/app/")
		return
	}
	seeOther(w, r, "/app/input/"+date)
}

func (s *Server) actionAddTask(w http.ResponseWriter, r *http.Request) {
	sh := s.session(w, r).shell
	date := chi.URLParam(r, "date")
	sh.AddTask(date, r.PostFormValue("text"))
	seeOther(w, r, "/app/input/"+date)
}

func (s *Server) actionToggleTask(w http.ResponseWriter, r *http.Request) {
	sh := s.session(w, r).shell
	date := chi.URLParam(r, "date")
	if index, err := strconv.Atoi(r.PostFormValue("index")); err == nil {
		sh.ToggleTask(date, index)
	}
	seeOther(w, r, "/app/input/"+date)
}

func (s *Server) actionRemoveTask(w http.ResponseWriter, r *http.Request) {
	sh := s.session(w, r).shell
	date := chi.URLParam(r, "date")
	if index, err := strconv.Atoi(r.PostFormValue("index")); err == nil {
		sh.RemoveTask(date, index)
	}
	seeOther(w, r, "/app/input/"+date)
}

func (s *Server) actionGenerateAnalysis(w http.ResponseWriter, r *http.Request) {
	sh := s.session(w, r).shell
	date := chi.URLParam(r, "date")
	sh.GenerateAnalysis(r.Context(), date)
	seeOther(w, r, "/app/analysis/"+date)
}

func (s *Server) actionGenerateWeekly(w http.ResponseWriter, r *http.Request) {
	sh := s.session(w, r).shell
	weekID := chi.URLParam(r, "weekID")
	sh.GenerateWeekly(r.Context(), weekID)
	seeOther(w, r, "/app/weekly/"+weekID)
}

func (s *Server) actionFilterSuggestions(w http.ResponseWriter, r *http.Request) {
	sh := s.session(w, r).shell
	sh.FilterSuggestions(r.PostFormValue("priority"), r.PostFormValue("category"))
	seeOther(w, r, "/app/suggestions")
}

func (s *Server) actionPreviewScreenshot(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	date := chi.URLParam(r, "date")

	file, header, err := r.FormFile("file")
	if err != nil {
		sess.notes.Notify(notify.LevelError, "Pick an image first.")
		seeOther(w, r, "/app/input/"+date)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		sess.notes.Notify(notify.LevelError, "Reading the image failed: "+err.Error())
		seeOther(w, r, "/app/input/"+date)
		return
	}

	sess.shell.PreviewScreenshot(date, header.Filename, header.Header.Get("Content-Type"), data)
	seeOther(w, r, "/app/input/"+date)
}

func (s *Server) actionUploadScreenshot(w http.ResponseWriter, r *http.Request) {
	sh := s.session(w, r).shell
	date := chi.URLParam(r, "date")
	sh.UploadScreenshot(r.Context(), date)
	seeOther(w, r, "/app/input/"+date)
}

func (s *Server) actionResetScreenshot(w http.ResponseWriter, r *http.Request) {
	sh := s.session(w, r).shell
	date := chi.URLParam(r, "date")
	sh.ResetScreenshot(date)
	seeOther(w, r, "/app/input/"+date)
}
