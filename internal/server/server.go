// Package server is the HTTP surface of the tracker UI: the layout
// page, fragment navigation, form action endpoints, the toast
// websocket and static assets.
package server

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/ymatsuda/trackboard/internal/notify"
	"github.com/ymatsuda/trackboard/internal/view"
)

//go:embed index.html
var indexHTML string

var pageTemplate = template.Must(template.New("page").Parse(indexHTML))

const sessionCookie = "trackboard_session"

// Config holds server configuration.
type Config struct {
	Port      int
	StaticDir string // directory with css/js/icons
	AllowAll  bool   // allow all CORS origins (dev mode)
}

// session is one browser session's state: its view shell plus the toast
// center its websocket drains. Both are per-session so neither form
// state nor toasts leak between sessions.
type session struct {
	shell *view.Shell
	notes *notify.Center
}

// Server serves the tracker UI. Each browser session gets its own view
// shell so in-progress form state never leaks between sessions.
type Server struct {
	cfg        Config
	newSession func() (*view.Shell, *notify.Center)
	router     chi.Router
	httpServer *http.Server

	mu       sync.Mutex
	sessions map[string]*session
}

// New creates a server. newSession builds a fresh shell and toast
// center per session.
func New(cfg Config, newSession func() (*view.Shell, *notify.Center)) *Server {
	s := &Server{
		cfg:        cfg,
		newSession: newSession,
		sessions:   make(map[string]*session),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// The shell page itself is served at the root so the offline warm
	// of "/" caches something useful.
	r.Get("/", s.handleNavigate)
	r.Get("/index.html", s.handleNavigate)
	r.Get("/app", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/app/", http.StatusFound)
	})
	r.Get("/app/*", s.handleNavigate)

	s.registerActions(r)
	notify.RegisterRoutes(r, s.centerFor)

	if s.cfg.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.cfg.StaticDir))
		r.Get("/css/*", fs.ServeHTTP)
		r.Get("/js/*", fs.ServeHTTP)
		r.Get("/icons/*", fs.ServeHTTP)
		r.Get("/manifest.json", fs.ServeHTTP)
	}

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// session returns the request's session, creating it on first contact.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		sess, ok := s.sessions[cookie.Value]
		s.mu.Unlock()
		if ok {
			return sess
		}
	}

	id := uuid.NewString()
	sh, notes := s.newSession()
	sess := &session{shell: sh, notes: notes}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// centerFor picks the toast center for a websocket request. The page
// always loads before its socket connects, so the cookie is normally
// set; a connection without a known session gets an isolated center
// rather than someone else's toasts.
func (s *Server) centerFor(r *http.Request) *notify.Center {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		sess, ok := s.sessions[cookie.Value]
		s.mu.Unlock()
		if ok {
			return sess.notes
		}
	}
	return notify.NewCenter()
}

type navLink struct {
	Href   string
	Icon   string
	Label  string
	Active bool
}

type pageData struct {
	State    view.State
	Content  template.HTML
	NavLinks []navLink
}

// handleNavigate resolves the fragment after /app and renders the full
// page around the resulting screen.
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	sh := s.session(w, r).shell
	fragment := "/" + chi.URLParam(r, "*")
	sh.Navigate(r.Context(), fragment)
	s.renderPage(w, sh)
}

func (s *Server) renderPage(w http.ResponseWriter, sh *view.Shell) {
	state, html := sh.Region().Snapshot()
	data := pageData{
		State:   state,
		Content: template.HTML(html),
		NavLinks: []navLink{
			{Href: "/app/", Icon: "🏠", Label: "Home", Active: sh.Fragment() == "/"},
			{Href: "/app/input", Icon: "✏️", Label: "Log", Active: sh.NavActive("/input")},
			{Href: "/app/history", Icon: "📅", Label: "History", Active: sh.NavActive("/history")},
			{Href: "/app/weekly", Icon: "📊", Label: "Weekly", Active: sh.NavActive("/weekly")},
			{Href: "/app/suggestions", Icon: "💡", Label: "Tips", Active: sh.NavActive("/suggestions")},
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("server: rendering page: %v", err)
	}
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("trackboard listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
