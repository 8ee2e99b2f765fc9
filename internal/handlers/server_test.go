package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"cocktail-cellar-go/internal/app"
	"cocktail-cellar-go/internal/db"

	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	a, err := app.New(app.Config{
		DataDir:        t.TempDir(),
		DBPath:         ":memory:",
		TemplateDir:    "../../views/templates",
		SessionHashKey: key,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return &Server{App: a}
}

func testRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(s.App.MiddlewareLoadCurrentUser)
	r.Post("/register/", s.RegisterPost)
	r.Get("/cocktails/customize/{id}/", s.CocktailCustomizeGet)
	r.Post("/cocktails/customize/{id}/", s.CocktailCustomizePost)
	r.Post("/favorites/add/{id}/", s.FavoriteAddPost)
	return r
}

func newBartender(t *testing.T, s *Server, username string) (userID, profileID int64) {
	t.Helper()
	q := s.App.Store().Q
	uid, err := q.CreateUser(db.CreateUserParams{
		Username: username, Email: username + "@example.com",
		PasswordHash: "x", Role: app.RoleBartender, IsActive: true,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	pid, err := q.CreateProfile(uid)
	if err != nil {
		t.Fatalf("create profile %s: %v", username, err)
	}
	return uid, pid
}

func sessionCookies(t *testing.T, a *app.App, userID int64) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := a.SetSessionUser(rec, httptest.NewRequest("POST", "/login", nil), userID); err != nil {
		t.Fatalf("session: %v", err)
	}
	return rec.Result().Cookies()
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func poppedFlashes(t *testing.T, a *app.App, rec *httptest.ResponseRecorder) []app.Flash {
	t.Helper()
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return a.PopFlashes(httptest.NewRecorder(), r)
}

func flashContaining(flashes []app.Flash, substr string) bool {
	for _, f := range flashes {
		if strings.Contains(f.Message, substr) {
			return true
		}
	}
	return false
}

func countRows(t *testing.T, s *Server, query string, args ...any) int {
	t.Helper()
	var n int
	if err := s.App.Store().DB.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

// anyCategory picks a seeded category id.
func anyCategory(t *testing.T, s *Server) int64 {
	t.Helper()
	var id int64
	if err := s.App.Store().DB.QueryRow(`SELECT id FROM cocktail_categories ORDER BY id LIMIT 1`).Scan(&id); err != nil {
		t.Fatalf("category: %v", err)
	}
	return id
}
