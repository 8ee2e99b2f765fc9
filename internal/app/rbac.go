package app

import (
	"net/http"
)

const (
	RoleAdmin     = "ADMIN"
	RoleBartender = "BARTENDER"
	RoleUser      = "USER"
)

func (a *App) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.CurrentUser(r) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAnyRole gates a subtree on role membership. A logged-in account with
// the wrong role is sent back to the catalog with a flash message, not a 403.
func (a *App) RequireAnyRole(roles ...string) func(http.Handler) http.Handler {
	set := map[string]bool{}
	for _, r := range roles {
		set[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := a.CurrentUser(r)
			if u == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !set[u.Role] {
				a.AddFlash(w, r, FlashError, "You need a bartender account for that.")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *App) IsBartender(role string) bool {
	return role == RoleBartender || role == RoleAdmin
}
