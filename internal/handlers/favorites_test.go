package handlers

import (
	"net/http"
	"strings"
	"testing"

	"cocktail-cellar-go/internal/app"
	"cocktail-cellar-go/internal/db"
)

const favoriteRowsQuery = `
	SELECT COUNT(*) FROM user_favorite_cocktails ufc
	JOIN user_favorite_lists l ON l.id = ufc.list_id
	WHERE ufc.cocktail_id=?`

func TestFavoriteAddRequiresPublishedCocktail(t *testing.T) {
	s := newTestServer(t)
	h := testRouter(s)
	uid, pid := newBartender(t, s, "bart")
	cookies := sessionCookies(t, s.App, uid)

	catID := anyCategory(t, s)
	custom, err := s.App.Store().Q.CreateCocktail(db.CreateCocktailParams{
		Name: "House Mix", CategoryID: catID, Instructions: "Stir.",
		Strength: "Medium", BartenderID: &uid,
	})
	if err != nil {
		t.Fatalf("create cocktail: %v", err)
	}

	// Not in any bartender list yet: the add is rejected.
	rec := do(t, h, "POST", "/favorites/add/"+itoa(custom)+"/", nil, cookies)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if !flashContaining(poppedFlashes(t, s.App, rec), "not published") {
		t.Error("missing not-published rejection flash")
	}
	if n := countRows(t, s, favoriteRowsQuery, custom); n != 0 {
		t.Fatalf("favorite rows = %d, want 0", n)
	}

	// Gaining a single list membership makes it favoritable.
	listID, err := s.App.Store().Q.CreateBartenderList(pid, "Menu", true)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if err := s.App.Store().Q.AddListCocktail(listID, custom); err != nil {
		t.Fatalf("add to list: %v", err)
	}

	rec = do(t, h, "POST", "/favorites/add/"+itoa(custom)+"/", nil, cookies)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if !flashContaining(poppedFlashes(t, s.App, rec), "added to favorites") {
		t.Error("missing success flash")
	}
	if n := countRows(t, s, favoriteRowsQuery, custom); n != 1 {
		t.Errorf("favorite rows = %d, want 1", n)
	}
}

func TestFavoriteAddDuplicateWarnsAndKeepsOneRow(t *testing.T) {
	s := newTestServer(t)
	h := testRouter(s)
	uid, _ := newBartender(t, s, "bart")
	cookies := sessionCookies(t, s.App, uid)

	catID := anyCategory(t, s)
	classic, err := s.App.Store().Q.CreateCocktail(db.CreateCocktailParams{
		Name: "Test Classic", CategoryID: catID, Instructions: "Stir.",
		Strength: "Medium", IsClassic: true,
	})
	if err != nil {
		t.Fatalf("create cocktail: %v", err)
	}

	rec := do(t, h, "POST", "/favorites/add/"+itoa(classic)+"/", nil, cookies)
	if !flashContaining(poppedFlashes(t, s.App, rec), "added to favorites") {
		t.Fatal("first add did not succeed")
	}

	rec = do(t, h, "POST", "/favorites/add/"+itoa(classic)+"/", nil, cookies)
	flashes := poppedFlashes(t, s.App, rec)
	if !flashContaining(flashes, "already in your favorites") {
		t.Errorf("missing duplicate warning, flashes = %+v", flashes)
	}
	for _, f := range flashes {
		if strings.Contains(f.Message, "already in your favorites") && f.Level != app.FlashWarning {
			t.Errorf("duplicate flash level = %s, want warning", f.Level)
		}
	}
	if n := countRows(t, s, favoriteRowsQuery, classic); n != 1 {
		t.Errorf("favorite rows after double add = %d, want 1", n)
	}
}
