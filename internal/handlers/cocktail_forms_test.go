package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"cocktail-cellar-go/internal/db"
)

func TestParseCocktailForm(t *testing.T) {
	base := func() url.Values {
		return url.Values{
			"name":         {"Spicy Mojito"},
			"category_id":  {"3"},
			"instructions": {"Muddle, shake, pour."},
			"glass_type":   {"Highball"},
			"strength":     {"Strong"},
		}
	}

	tests := []struct {
		name      string
		mutate    func(url.Values)
		wantErrs  []string
		wantLines int
	}{
		{
			name: "valid with two ingredient rows",
			mutate: func(f url.Values) {
				f["ingredient_id"] = []string{"1", "2"}
				f["ingredient_amount"] = []string{"50 ml", ""}
			},
			wantLines: 2,
		},
		{
			name:     "missing name",
			mutate:   func(f url.Values) { f.Set("name", "  ") },
			wantErrs: []string{"name"},
		},
		{
			name:     "missing category",
			mutate:   func(f url.Values) { f.Del("category_id") },
			wantErrs: []string{"category"},
		},
		{
			name:     "missing instructions",
			mutate:   func(f url.Values) { f.Set("instructions", "") },
			wantErrs: []string{"instructions"},
		},
		{
			name: "fully empty pair is skipped",
			mutate: func(f url.Values) {
				f["ingredient_id"] = []string{"", "1"}
				f["ingredient_amount"] = []string{"", "30 ml"}
			},
			wantLines: 1,
		},
		{
			name: "blank select sentinel is skipped",
			mutate: func(f url.Values) {
				f["ingredient_id"] = []string{"0"}
				f["ingredient_amount"] = []string{""}
			},
			wantLines: 0,
		},
		{
			name: "amount without ingredient rejected",
			mutate: func(f url.Values) {
				f["ingredient_id"] = []string{""}
				f["ingredient_amount"] = []string{"20 ml"}
			},
			wantErrs: []string{"ingredients"},
		},
		{
			name: "amount against the blank sentinel rejected",
			mutate: func(f url.Values) {
				f["ingredient_id"] = []string{"0"}
				f["ingredient_amount"] = []string{"20 ml"}
			},
			wantErrs: []string{"ingredients"},
		},
		{
			name: "rows beyond the cap are dropped",
			mutate: func(f url.Values) {
				for i := 0; i < maxIngredientRows+5; i++ {
					f.Add("ingredient_id", "1")
					f.Add("ingredient_amount", "10 ml")
				}
			},
			wantLines: maxIngredientRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := base()
			tt.mutate(form)

			r := httptest.NewRequest("POST", "/cocktails/create/", strings.NewReader(form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if err := r.ParseForm(); err != nil {
				t.Fatalf("parse form: %v", err)
			}

			_, lines, _, errs := parseCocktailForm(r)
			if len(tt.wantErrs) == 0 && len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			for _, key := range tt.wantErrs {
				if errs[key] == "" {
					t.Errorf("missing error for %q, got %v", key, errs)
				}
			}
			if len(tt.wantErrs) == 0 && len(lines) != tt.wantLines {
				t.Errorf("lines = %d, want %d", len(lines), tt.wantLines)
			}
		})
	}
}

func TestParseCocktailFormDefaultsStrength(t *testing.T) {
	form := url.Values{
		"name":         {"Test"},
		"category_id":  {"1"},
		"instructions": {"Stir."},
		"strength":     {"Nuclear"},
	}
	r := httptest.NewRequest("POST", "/cocktails/create/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := r.ParseForm(); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	values, _, _, errs := parseCocktailForm(r)
	if len(errs) > 0 {
		t.Fatalf("errors: %v", errs)
	}
	if values.Strength != "Medium" {
		t.Errorf("strength = %q, want Medium", values.Strength)
	}
}

func TestCustomizeRejectsNonClassicSource(t *testing.T) {
	s := newTestServer(t)
	h := testRouter(s)
	uid, _ := newBartender(t, s, "bart")
	cookies := sessionCookies(t, s.App, uid)

	catID := anyCategory(t, s)
	custom, err := s.App.Store().Q.CreateCocktail(db.CreateCocktailParams{
		Name: "House Mix", CategoryID: catID, Instructions: "Stir.",
		Strength: "Medium", BartenderID: &uid,
	})
	if err != nil {
		t.Fatalf("create cocktail: %v", err)
	}
	before := countRows(t, s, `SELECT COUNT(*) FROM cocktails`)

	rec := do(t, h, "GET", "/cocktails/customize/"+itoa(custom)+"/", nil, cookies)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("GET status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/cocktails/"+itoa(custom)+"/" {
		t.Errorf("redirect = %q", loc)
	}
	if !flashContaining(poppedFlashes(t, s.App, rec), "Only classic cocktails") {
		t.Error("missing rejection flash")
	}

	form := url.Values{
		"name":         {"House Mix Twist"},
		"category_id":  {itoa(catID)},
		"instructions": {"Shake."},
		"strength":     {"Strong"},
	}
	rec = do(t, h, "POST", "/cocktails/customize/"+itoa(custom)+"/", form, cookies)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST status = %d", rec.Code)
	}
	if after := countRows(t, s, `SELECT COUNT(*) FROM cocktails`); after != before {
		t.Errorf("cocktail rows %d -> %d, want unchanged", before, after)
	}
}

func TestCustomizeInvalidFormsetPersistsNothing(t *testing.T) {
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
	beforeCocktails := countRows(t, s, `SELECT COUNT(*) FROM cocktails`)
	beforeLines := countRows(t, s, `SELECT COUNT(*) FROM cocktail_ingredients`)

	form := url.Values{
		"name":              {"Broken Twist"},
		"category_id":       {itoa(catID)},
		"instructions":      {"Shake."},
		"strength":          {"Light"},
		"ingredient_id":     {""},
		"ingredient_amount": {"20 ml"},
	}
	rec := do(t, h, "POST", "/cocktails/customize/"+itoa(classic)+"/", form, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want re-rendered form", rec.Code)
	}
	if after := countRows(t, s, `SELECT COUNT(*) FROM cocktails`); after != beforeCocktails {
		t.Errorf("cocktail rows %d -> %d, want unchanged", beforeCocktails, after)
	}
	if after := countRows(t, s, `SELECT COUNT(*) FROM cocktail_ingredients`); after != beforeLines {
		t.Errorf("ingredient rows %d -> %d, want unchanged", beforeLines, after)
	}
}
