package handlers

import (
	"net/http"
	"strings"

	"cocktail-cellar-go/internal/app"
	"cocktail-cellar-go/internal/db"

	"github.com/go-chi/chi/v5"
)

type BartenderListsPage struct {
	Own    []ListEntry
	Public []db.BartenderList
}

type ListEntry struct {
	List      db.BartenderList
	Cocktails []db.Cocktail
}

type AddCocktailPage struct {
	List       db.BartenderList
	Candidates []db.Cocktail
}

type RemoveCocktailPage struct {
	List     db.BartenderList
	Cocktail db.Cocktail
}

// BartenderListsGet shows the acting bartender's own lists plus everyone's
// public ones.
func (s *Server) BartenderListsGet(w http.ResponseWriter, r *http.Request) {
	p := s.App.CurrentProfile(r)
	if p == nil {
		s.redirect(w, r, "/login")
		return
	}

	own, err := s.App.Store().Q.ListBartenderListsForProfile(p.ID)
	if err != nil {
		s.App.Log().Error("own lists", "err", err)
	}

	page := BartenderListsPage{}
	for _, l := range own {
		cocks, _ := s.App.Store().Q.ListBartenderListCocktails(l.ID)
		page.Own = append(page.Own, ListEntry{List: l, Cocktails: cocks})
	}

	public, _ := s.App.Store().Q.ListPublicBartenderLists()
	for _, l := range public {
		if l.ProfileID != p.ID {
			page.Public = append(page.Public, l)
		}
	}

	s.renderLayout(w, r, "My Lists", "bartender_lists.html", page)
}

func (s *Server) ListCreateGet(w http.ResponseWriter, r *http.Request) {
	s.renderLayout(w, r, "New List", "list_form.html", map[string]any{})
}

func (s *Server) ListCreatePost(w http.ResponseWriter, r *http.Request) {
	p := s.App.CurrentProfile(r)
	if p == nil {
		s.redirect(w, r, "/login")
		return
	}

	_ = r.ParseForm()
	name := strings.TrimSpace(r.FormValue("name"))
	isPublic := r.FormValue("is_public") == "on" || r.FormValue("is_public") == "1"

	if name == "" {
		s.App.AddFlash(w, r, app.FlashError, "List name is required.")
		s.redirect(w, r, "/bartender/lists/create/")
		return
	}

	if _, err := s.App.Store().Q.CreateBartenderList(p.ID, name, isPublic); err != nil {
		s.App.AddFlash(w, r, app.FlashError, "Could not create list.")
		s.redirect(w, r, "/bartender/lists/create/")
		return
	}
	s.App.AddFlash(w, r, app.FlashSuccess, "List \""+name+"\" created.")
	s.redirect(w, r, "/bartender/lists/")
}

// ownedList resolves {id} to a list owned by the acting profile; a foreign or
// missing list is a 404 (ownership lives in the lookup filter).
func (s *Server) ownedList(w http.ResponseWriter, r *http.Request) (*db.Profile, *db.BartenderList, bool) {
	p := s.App.CurrentProfile(r)
	if p == nil {
		s.redirect(w, r, "/login")
		return nil, nil, false
	}
	id, ok := parseInt64(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return nil, nil, false
	}
	l, err := s.App.Store().Q.GetOwnedBartenderList(id, p.ID)
	if err != nil || l == nil {
		http.NotFound(w, r)
		return nil, nil, false
	}
	return p, l, true
}

// ListAddCocktailGet renders the add form; the candidate set is exactly the
// classic cocktails.
func (s *Server) ListAddCocktailGet(w http.ResponseWriter, r *http.Request) {
	_, l, ok := s.ownedList(w, r)
	if !ok {
		return
	}
	candidates, _ := s.App.Store().Q.ListClassicCocktails(0, 0)
	s.renderLayout(w, r, "Add Cocktail", "list_add_cocktail.html", AddCocktailPage{List: *l, Candidates: candidates})
}

func (s *Server) ListAddCocktailPost(w http.ResponseWriter, r *http.Request) {
	_, l, ok := s.ownedList(w, r)
	if !ok {
		return
	}

	_ = r.ParseForm()
	cid, ok := parseInt64(r.FormValue("cocktail_id"))
	if !ok {
		s.App.AddFlash(w, r, app.FlashError, "Pick a cocktail to add.")
		s.redirect(w, r, "/bartender/lists/"+chi.URLParam(r, "id")+"/add-cocktail/")
		return
	}

	c, err := s.App.Store().Q.GetCocktailByID(cid)
	if err != nil || c == nil || !c.IsClassic {
		// Only classics can be added from the picker.
		s.App.AddFlash(w, r, app.FlashError, "Only classic cocktails can be added to a list.")
		s.redirect(w, r, "/bartender/lists/")
		return
	}

	if err := s.App.Store().Q.AddListCocktail(l.ID, c.ID); err != nil {
		s.App.AddFlash(w, r, app.FlashError, "Could not add cocktail.")
	} else {
		s.App.AddFlash(w, r, app.FlashSuccess, c.Name+" added to \""+l.Name+"\".")
	}
	s.redirect(w, r, "/bartender/lists/")
}

func (s *Server) ListRemoveCocktailGet(w http.ResponseWriter, r *http.Request) {
	_, l, ok := s.ownedList(w, r)
	if !ok {
		return
	}
	cid, ok := parseInt64(chi.URLParam(r, "cocktail_id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	c, err := s.App.Store().Q.GetCocktailByID(cid)
	if err != nil || c == nil {
		http.NotFound(w, r)
		return
	}
	s.renderLayout(w, r, "Remove Cocktail", "list_remove_cocktail.html", RemoveCocktailPage{List: *l, Cocktail: *c})
}

// ListRemoveCocktailPost deletes the membership and lets the store decide
// whether the cocktail itself was orphaned (last-reference garbage collection
// of non-classic cocktails).
func (s *Server) ListRemoveCocktailPost(w http.ResponseWriter, r *http.Request) {
	_, l, ok := s.ownedList(w, r)
	if !ok {
		return
	}
	cid, ok := parseInt64(chi.URLParam(r, "cocktail_id"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	deleted, err := s.App.Store().Q.RemoveListCocktail(l.ID, cid)
	if err != nil {
		s.App.AddFlash(w, r, app.FlashError, "Could not remove cocktail.")
	} else if deleted {
		s.App.AddFlash(w, r, app.FlashInfo, "Cocktail removed; its custom recipe had no other references and was deleted.")
	} else {
		s.App.AddFlash(w, r, app.FlashSuccess, "Cocktail removed from \""+l.Name+"\".")
	}
	s.redirect(w, r, "/bartender/lists/")
}

/* ---------------- JSON endpoints ---------------- */

func (s *Server) ListToggleVisibilityPost(w http.ResponseWriter, r *http.Request) {
	p := s.App.CurrentProfile(r)
	if p == nil {
		s.writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: "not logged in"})
		return
	}
	id, ok := parseInt64(chi.URLParam(r, "id"))
	if !ok {
		s.writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: "list not found"})
		return
	}

	l, err := s.App.Store().Q.GetOwnedBartenderList(id, p.ID)
	if err != nil || l == nil {
		s.writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: "list not found"})
		return
	}

	updated, err := s.App.Store().Q.SetListVisibility(l.ID, p.ID, !l.IsPublic)
	if err != nil || !updated {
		s.writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: "could not update list"})
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]any{"is_public": !l.IsPublic}})
}

func (s *Server) ListDeletePost(w http.ResponseWriter, r *http.Request) {
	p := s.App.CurrentProfile(r)
	if p == nil {
		s.writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: "not logged in"})
		return
	}
	id, ok := parseInt64(chi.URLParam(r, "id"))
	if !ok {
		s.writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: "list not found"})
		return
	}

	deleted, err := s.App.Store().Q.DeleteBartenderList(id, p.ID)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: "could not delete list"})
		return
	}
	if !deleted {
		s.writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: "list not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{Success: true})
}
