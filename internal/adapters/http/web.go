package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"ticclub/internal/adapters/http/middleware"
	regStore "ticclub/internal/adapters/storage/registration"
	"ticclub/internal/application/orchestrators"
	"ticclub/internal/domain/admin"
	"ticclub/internal/domain/registration"
	"ticclub/internal/domain/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Deps holds everything the handlers need. It replaces process-wide globals.
type Deps struct {
	Store       regStore.Store
	Credentials admin.Credentials
	Dispatcher  orchestrators.RegistrationDispatcher
	Notifier    orchestrators.RegistrationDispatcher // optional
	Location    *time.Location
	Catalog     []string
	// FormIntro is pre-rendered HTML shown above the form.
	FormIntro template.HTML
	Now       func() time.Time
	// SecureCookies marks the session and CSRF cookies Secure.
	SecureCookies bool
}

// Options configures the middleware chain around the routes.
type Options struct {
	CSRFKey        []byte
	TrustedOrigins []string
	// RateLimit is requests per second per IP.
	RateLimit   int
	SlowRequest time.Duration
}

// Server renders the registration app.
type Server struct {
	deps     Deps
	sessions *middleware.SessionStore
	pages    map[view.Panel]*template.Template
}

// NewServer parses the embedded templates and returns a server ready to route.
// PRE: deps.Store and deps.Dispatcher are non-nil
// POST: Every panel has a parsed template
func NewServer(deps Deps) (*Server, error) {
	if deps.Store == nil || deps.Dispatcher == nil {
		return nil, fmt.Errorf("web: store and dispatcher are required")
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if len(deps.Catalog) == 0 {
		deps.Catalog = registration.DefaultPositions
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	pages := make(map[view.Panel]*template.Template)
	for _, p := range []view.Panel{view.PanelForm, view.PanelSuccess, view.PanelAdminLogin, view.PanelAdmin} {
		tpl, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+string(p)+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", p, err)
		}
		pages[p] = tpl
	}

	return &Server{
		deps:     deps,
		sessions: middleware.NewSessionStore(),
		pages:    pages,
	}, nil
}

// Sessions exposes the admin session store.
func (s *Server) Sessions() *middleware.SessionStore {
	return s.sessions
}

// Routes registers the handlers on a fresh mux without any middleware.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /admin/login", s.handleAdminLogin)
	mux.HandleFunc("POST /admin/logout", s.handleAdminLogout)
	mux.Handle("GET /admin/export.csv", middleware.RequireAdmin(http.HandlerFunc(s.handleExportCSV)))
	mux.HandleFunc("GET /healthz", handleHealthz)
	return mux
}

// NewMux wires the HTTP handlers and the middleware chain.
// PRE: opts.CSRFKey is 32 bytes
func NewMux(deps Deps, opts Options) (http.Handler, error) {
	srv, err := NewServer(deps)
	if err != nil {
		return nil, err
	}
	return srv.Handler(opts), nil
}

// Handler wraps Routes in the middleware chain.
func (s *Server) Handler(opts Options) http.Handler {
	rate := opts.RateLimit
	if rate <= 0 {
		rate = 10
	}
	limiter := middleware.NewRateLimiter(rate, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(s.Routes(),
		middleware.SecurityHeaders,
		middleware.CSRF(opts.CSRFKey, s.deps.SecureCookies, opts.TrustedOrigins),
		middleware.Auth(s.sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(opts.SlowRequest),
	)
}
