package handlers

import (
	"net/http"
	"strings"

	"cocktail-cellar-go/internal/db"

	"github.com/go-chi/chi/v5"
)

type SearchPage struct {
	Query     string
	Cocktails []db.Cocktail
}

type CocktailListPage struct {
	Cocktails []db.Cocktail
	Page      int64
	Pages     int64
	HasPrev   bool
	HasNext   bool
}

type CocktailDetailPage struct {
	Cocktail     db.Cocktail
	Ingredients  []db.CocktailIngredient
	IsFavorite   bool
	CanCustomize bool
}

type PublicListEntry struct {
	List      db.BartenderList
	Cocktails []db.Cocktail
}

type PublicListsPage struct {
	Lists []PublicListEntry
}

func (s *Server) IndexGet(w http.ResponseWriter, r *http.Request) {
	s.renderLayout(w, r, "Cocktail Cellar", "index.html", map[string]any{})
}

// SearchGet matches cocktail and category names; an empty query renders an
// empty result set, not the whole catalog.
func (s *Server) SearchGet(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	results, err := s.App.Store().Q.SearchCocktails(query)
	if err != nil {
		s.App.Log().Error("search", "err", err)
	}
	s.renderLayout(w, r, "Search", "search_results.html", SearchPage{Query: query, Cocktails: results})
}

func (s *Server) CocktailListGet(w http.ResponseWriter, r *http.Request) {
	size := s.App.Config().PageSize

	page, _ := parseInt64(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	total, err := s.App.Store().Q.CountClassicCocktails()
	if err != nil {
		s.App.Log().Error("count classics", "err", err)
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		page = pages
	}

	cocktails, err := s.App.Store().Q.ListClassicCocktails(size, (page-1)*size)
	if err != nil {
		s.App.Log().Error("list classics", "err", err)
	}

	s.renderLayout(w, r, "Classic Cocktails", "cocktail_list.html", CocktailListPage{
		Cocktails: cocktails,
		Page:      page,
		Pages:     pages,
		HasPrev:   page > 1,
		HasNext:   page < pages,
	})
}

// CocktailDetailGet looks up by id only; customized cocktails are viewable
// here too, not just classics.
func (s *Server) CocktailDetailGet(w http.ResponseWriter, r *http.Request) {
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

	ings, _ := s.App.Store().Q.GetCocktailIngredients(c.ID)

	page := CocktailDetailPage{
		Cocktail:     *c,
		Ingredients:  ings,
		CanCustomize: c.IsClassic,
	}

	if p := s.App.CurrentProfile(r); p != nil {
		if fl, err := s.App.Store().Q.GetFavoriteList(p.ID); err == nil && fl != nil {
			page.IsFavorite, _ = s.App.Store().Q.IsFavorite(fl.ID, c.ID)
		}
	}

	s.renderLayout(w, r, c.Name, "cocktail_detail.html", page)
}

func (s *Server) PublicListsGet(w http.ResponseWriter, r *http.Request) {
	lists, err := s.App.Store().Q.ListPublicBartenderLists()
	if err != nil {
		s.App.Log().Error("public lists", "err", err)
	}

	page := PublicListsPage{}
	for _, l := range lists {
		cocks, _ := s.App.Store().Q.ListBartenderListCocktails(l.ID)
		page.Lists = append(page.Lists, PublicListEntry{List: l, Cocktails: cocks})
	}
	s.renderLayout(w, r, "Public Lists", "public_lists.html", page)
}

/* ---- helpers ---- */

func parseInt64(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	var n int64
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int64(ch-'0')
	}
	return n, n > 0
}
