package handlers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"cocktail-cellar-go/internal/app"
	"cocktail-cellar-go/internal/db"
)

type Server struct {
	App *app.App
}

type ViewData struct {
	Title       string
	Path        string
	User        *db.User
	IsBartender bool
	Flashes     []app.Flash
	Page        any
	Content     template.HTML
	Now         time.Time
}

func (s *Server) renderLayout(w http.ResponseWriter, r *http.Request, title, pageTemplate string, page any) {
	u := s.App.CurrentUser(r)
	data := ViewData{
		Title:   title,
		Path:    r.URL.Path,
		User:    u,
		Flashes: s.App.PopFlashes(w, r),
		Page:    page,
		Now:     time.Now(),
	}
	if u != nil {
		data.IsBartender = s.App.IsBartender(u.Role)
	}

	var buf bytes.Buffer
	if err := s.App.Templates().ExecuteTemplate(&buf, pageTemplate, data); err != nil {
		s.App.Log().Error("render page", "template", pageTemplate, "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	data.Content = template.HTML(buf.String())
	_ = s.App.Templates().ExecuteTemplate(w, "layout.html", data)
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.App.Store().Ping(); err != nil {
		http.Error(w, "db not ok", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

/* ---------------- Login / Logout ---------------- */

func (s *Server) LoginGet(w http.ResponseWriter, r *http.Request) {
	if s.App.CurrentUser(r) != nil {
		s.redirect(w, r, "/")
		return
	}
	s.renderLayout(w, r, "Login", "login.html", map[string]any{})
}

func (s *Server) LoginPost(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	username := strings.TrimSpace(r.FormValue("username"))
	pw := r.FormValue("password")

	u, err := s.App.Store().Q.GetUserByUsername(username)
	if err != nil || u == nil || !u.IsActive || !app.CheckPassword(u.PasswordHash, pw) {
		s.App.AddFlash(w, r, app.FlashError, "Invalid credentials.")
		s.redirect(w, r, "/login")
		return
	}

	_ = s.App.SetSessionUser(w, r, u.ID)
	s.App.AddFlash(w, r, app.FlashSuccess, "Welcome back, "+u.Username+"!")
	s.redirect(w, r, "/")
}

func (s *Server) LogoutPost(w http.ResponseWriter, r *http.Request) {
	_ = s.App.ClearSession(w, r)
	s.App.AddFlash(w, r, app.FlashInfo, "Logged out.")
	s.redirect(w, r, "/login")
}

/* ---------------- Registration ---------------- */

func (s *Server) RegisterGet(w http.ResponseWriter, r *http.Request) {
	if s.App.CurrentUser(r) != nil {
		s.redirect(w, r, "/")
		return
	}
	s.renderLayout(w, r, "Register", "register.html", map[string]any{})
}

// RegisterPost runs the registration checks in order, each short-circuiting
// with its own message. The profile row is provisioned by the app's
// user-created hook, not here.
func (s *Server) RegisterPost(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	username := strings.TrimSpace(r.FormValue("username"))
	email := app.NormalizeEmail(r.FormValue("email"))
	password := r.FormValue("password")
	password2 := r.FormValue("password2")

	if msg := validateRegistration(username, email, password, password2); msg != "" {
		s.App.AddFlash(w, r, app.FlashError, msg)
		s.redirect(w, r, "/register")
		return
	}

	u, err := s.App.Store().Q.GetUserByUsername(username)
	if err != nil {
		s.App.Log().Error("registration lookup", "err", err)
		s.App.AddFlash(w, r, app.FlashError, "Could not register. Try again.")
		s.redirect(w, r, "/register")
		return
	}
	if u != nil {
		s.App.AddFlash(w, r, app.FlashError, "Username "+username+" already taken!")
		s.redirect(w, r, "/register")
		return
	}
	u, err = s.App.Store().Q.GetUserByEmail(email)
	if err != nil {
		s.App.Log().Error("registration lookup", "err", err)
		s.App.AddFlash(w, r, app.FlashError, "Could not register. Try again.")
		s.redirect(w, r, "/register")
		return
	}
	if u != nil {
		s.App.AddFlash(w, r, app.FlashError, "Email "+email+" already taken!")
		s.redirect(w, r, "/register")
		return
	}

	hash, err := app.HashPassword(password)
	if err != nil {
		s.App.AddFlash(w, r, app.FlashError, "Password has to be 8 symbols or more!")
		s.redirect(w, r, "/register")
		return
	}

	id, err := s.App.Store().Q.CreateUser(db.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         app.RoleUser,
		IsActive:     true,
	})
	if err != nil {
		s.App.AddFlash(w, r, app.FlashError, "Could not register (username or email may be taken).")
		s.redirect(w, r, "/register")
		return
	}
	if err := s.App.FireUserCreated(id); err != nil {
		s.App.Log().Error("user-created hook failed", "user_id", id, "err", err)
	}

	s.App.AddFlash(w, r, app.FlashInfo, "User "+username+" registered!")
	s.redirect(w, r, "/login")
}

// validateRegistration returns the first failing check's message, or "".
func validateRegistration(username, email, password, password2 string) string {
	if len(strings.TrimSpace(password)) < 8 {
		return "Password has to be 8 symbols or more!"
	}
	if password != password2 {
		return "Passwords don't match!"
	}
	if username == "" {
		return "Username is required."
	}
	if email == "" {
		return "Email is required."
	}
	return ""
}
