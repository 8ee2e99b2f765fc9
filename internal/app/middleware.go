package app

import (
	"context"
	"net/http"

	"cocktail-cellar-go/internal/db"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

func (a *App) MiddlewareLoadCurrentUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := a.GetSessionUserID(r)
		if ok {
			u, err := a.store.Q.GetUserByID(userID)
			if err == nil && u != nil && u.IsActive {
				ctx := context.WithValue(r.Context(), ctxKeyUser, u)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) CurrentUser(r *http.Request) *db.User {
	u, _ := r.Context().Value(ctxKeyUser).(*db.User)
	return u
}

// CurrentProfile loads the acting account's profile row, or nil.
func (a *App) CurrentProfile(r *http.Request) *db.Profile {
	u := a.CurrentUser(r)
	if u == nil {
		return nil
	}
	p, err := a.store.Q.GetProfileByUserID(u.ID)
	if err != nil {
		a.log.Error("load profile", "user_id", u.ID, "err", err)
		return nil
	}
	return p
}
