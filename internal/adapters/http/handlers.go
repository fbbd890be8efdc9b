package web

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"ticclub/internal/adapters/http/middleware"
	"ticclub/internal/application/orchestrators"
	"ticclub/internal/application/projections"
	"ticclub/internal/domain/admin"
	"ticclub/internal/domain/registration"
	"ticclub/internal/domain/view"
)

// maxFormBytes bounds a posted form.
const maxFormBytes = 64 << 10

// NoticeEmpty is the admin notice shown after exporting an empty list.
const NoticeEmpty = "empty"

// formView is the render state of the registration form.
type formView struct {
	Intro         template.HTML
	Name          string
	Email         string
	Phone         string
	Department    string
	Motivation    string
	Options       []registration.Option
	Max           int
	Error         string
	PositionError string
}

// pageData is passed to every panel template.
type pageData struct {
	Panel      string
	CSRFField  template.HTML
	Form       formView
	LoginEmail string
	LoginError string
	AdminEmail string
	Table      projections.RegistrationTable
	Alert      string
}

func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// render executes the panel template into a buffer so a failure never leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	panel := view.Panel(data.Panel)
	tpl, ok := s.pages[panel]
	if !ok {
		internalError(w, errors.New("no template for panel "+data.Panel))
		return
	}
	data.CSRFField = csrf.TemplateField(r)

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) emptyForm() formView {
	return formView{
		Intro:   s.deps.FormIntro,
		Options: registration.NewSelector(s.deps.Catalog, registration.MaxPositions).Options(),
		Max:     registration.MaxPositions,
	}
}

// handleIndex handles GET /.
// Exactly one panel is rendered, picked by view.Resolve.
// PRE: Auth middleware has loaded the session, if any
// POST: The admin panel is rendered only for an authenticated session
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sess := middleware.SessionFromContext(r.Context())
	panel := view.Resolve(view.State{
		AdminRequested: q.Get("admin") == "true",
		Requested:      view.ParseRequested(q.Get("view")),
		Authenticated:  sess.Authenticated,
	})

	data := pageData{Panel: string(panel)}
	switch panel {
	case view.PanelForm:
		data.Form = s.emptyForm()
	case view.PanelAdmin:
		table, err := projections.QueryRegistrationTable(r.Context(), projections.GetRegistrationTableDeps{
			Store:    s.deps.Store,
			Location: s.deps.Location,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		data.Table = table
		data.AdminEmail = sess.Email
		if q.Get("notice") == NoticeEmpty {
			data.Alert = registration.UserMessage(registration.ErrNoRegistrations)
		}
	}
	s.render(w, r, http.StatusOK, data)
}

// handleRegister handles POST /register.
// PRE: form carries name, email, phone, department, motivation and repeated positions
// POST: On success redirects to the success panel; on a validation error re-renders the form with 422
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	input := orchestrators.SubmitRegistrationInput{
		Name:       r.PostFormValue("name"),
		Email:      r.PostFormValue("email"),
		Phone:      r.PostFormValue("phone"),
		Department: r.PostFormValue("department"),
		Motivation: r.PostFormValue("motivation"),
		Positions:  r.PostForm["positions"],
	}
	_, err := orchestrators.ExecuteSubmitRegistration(r.Context(), input, orchestrators.SubmitRegistrationDeps{
		Store:      s.deps.Store,
		Dispatcher: s.deps.Dispatcher,
		Notifier:   s.deps.Notifier,
		Catalog:    s.deps.Catalog,
		Now:        s.deps.Now,
	})
	if err == nil {
		http.Redirect(w, r, "/?view="+string(view.PanelSuccess), http.StatusSeeOther)
		return
	}
	if !registration.IsUserError(err) {
		internalError(w, err)
		return
	}

	slog.Info("registration_rejected", "reason", err.Error())
	form := formView{
		Intro:      s.deps.FormIntro,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Department: input.Department,
		Motivation: input.Motivation,
		Options:    registration.SelectorFrom(s.deps.Catalog, registration.MaxPositions, input.Positions).Options(),
		Max:        registration.MaxPositions,
	}
	if registration.IsPositionError(err) {
		form.PositionError = registration.UserMessage(err)
	} else {
		form.Error = registration.UserMessage(err)
	}
	s.render(w, r, http.StatusUnprocessableEntity, pageData{Panel: string(view.PanelForm), Form: form})
}

// handleAdminLogin handles POST /admin/login.
// PRE: form carries email and password
// POST: On success a session cookie is set and the admin panel is shown
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	sess, err := orchestrators.ExecuteAdminLogin(r.Context(), orchestrators.AdminLoginInput{
		Email:    email,
		Password: r.PostFormValue("password"),
	}, orchestrators.AdminLoginDeps{
		Credentials: s.deps.Credentials,
		Now:         s.deps.Now,
	})
	if err != nil {
		if !errors.Is(err, admin.ErrInvalidCredentials) {
			internalError(w, err)
			return
		}
		s.render(w, r, http.StatusUnauthorized, pageData{
			Panel:      string(view.PanelAdminLogin),
			LoginEmail: email,
			LoginError: "Invalid email or password",
		})
		return
	}

	token, err := s.sessions.Create(sess)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token, s.deps.SecureCookies)
	http.Redirect(w, r, "/?view="+string(view.PanelAdmin), http.StatusSeeOther)
}

// handleAdminLogout handles POST /admin/logout.
// POST: The session is gone and the client is back on the form
func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w, s.deps.SecureCookies)
	slog.Info("auth_event", "event", "logout", "email", middleware.SessionFromContext(r.Context()).Email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleExportCSV handles GET /admin/export.csv.
// PRE: authenticated admin session
// POST: Streams the CSV as an attachment, or redirects with an empty notice when there is nothing to export
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	result, err := orchestrators.ExecuteExportRegistrations(r.Context(), orchestrators.ExportRegistrationsDeps{
		Store:    s.deps.Store,
		Location: s.deps.Location,
		Now:      s.deps.Now,
	})
	if errors.Is(err, registration.ErrNoRegistrations) {
		http.Redirect(w, r, "/?view="+string(view.PanelAdmin)+"&notice="+NoticeEmpty, http.StatusSeeOther)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(result.Content)
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

