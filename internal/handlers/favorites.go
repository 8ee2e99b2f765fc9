package handlers

import (
	"net/http"

	"cocktail-cellar-go/internal/app"
	"cocktail-cellar-go/internal/db"

	"github.com/go-chi/chi/v5"
)

type FavoritesPage struct {
	Cocktails []db.Cocktail
}

func (s *Server) FavoritesGet(w http.ResponseWriter, r *http.Request) {
	p := s.App.CurrentProfile(r)
	if p == nil {
		s.redirect(w, r, "/login")
		return
	}

	page := FavoritesPage{}
	if fl, err := s.App.Store().Q.GetFavoriteList(p.ID); err == nil && fl != nil {
		page.Cocktails, _ = s.App.Store().Q.ListFavoriteCocktails(fl.ID)
	}
	s.renderLayout(w, r, "My Favorites", "favorites.html", page)
}

// FavoriteAddPost lazily provisions the favorite list, then guards both the
// "published cocktail" rule and the duplicate add.
func (s *Server) FavoriteAddPost(w http.ResponseWriter, r *http.Request) {
	p := s.App.CurrentProfile(r)
	if p == nil {
		s.redirect(w, r, "/login")
		return
	}

	id, ok := parseInt64(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	c, err := s.App.Store().Q.GetCocktailByID(id)
	if err != nil || c == nil {
		http.NotFound(w, r)
		return
	}

	// Only classics and published customs (appearing in at least one
	// bartender list) can be favorited.
	if !c.IsClassic {
		refs, err := s.App.Store().Q.CocktailListRefCount(c.ID)
		if err != nil || refs == 0 {
			s.App.AddFlash(w, r, app.FlashError, "This cocktail is not published and cannot be favorited.")
			s.redirect(w, r, "/cocktails/"+itoa(c.ID)+"/")
			return
		}
	}

	fl, err := s.App.Store().Q.GetOrCreateFavoriteList(p.ID)
	if err != nil {
		s.App.AddFlash(w, r, app.FlashError, "Could not update favorites.")
		s.redirect(w, r, "/cocktails/"+itoa(c.ID)+"/")
		return
	}

	if already, err := s.App.Store().Q.IsFavorite(fl.ID, c.ID); err == nil && already {
		s.App.AddFlash(w, r, app.FlashWarning, c.Name+" is already in your favorites.")
		s.redirect(w, r, "/cocktails/"+itoa(c.ID)+"/")
		return
	}

	if err := s.App.Store().Q.AddFavorite(fl.ID, c.ID); err != nil {
		s.App.AddFlash(w, r, app.FlashError, "Could not update favorites.")
	} else {
		s.App.AddFlash(w, r, app.FlashSuccess, c.Name+" added to favorites.")
	}
	s.redirect(w, r, "/cocktails/"+itoa(c.ID)+"/")
}

// FavoriteRemovePost deletes the membership if present; removing an absent
// favorite is not an error.
func (s *Server) FavoriteRemovePost(w http.ResponseWriter, r *http.Request) {
	p := s.App.CurrentProfile(r)
	if p == nil {
		s.redirect(w, r, "/login")
		return
	}

	id, ok := parseInt64(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	if fl, err := s.App.Store().Q.GetFavoriteList(p.ID); err == nil && fl != nil {
		_ = s.App.Store().Q.RemoveFavorite(fl.ID, id)
	}
	s.redirect(w, r, "/favorites/")
}
