package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"cocktail-cellar-go/internal/app"
	"cocktail-cellar-go/internal/db"

	"github.com/go-chi/chi/v5"
)

// Upper bound on submitted ingredient formset rows.
const maxIngredientRows = 12

type CocktailFormValues struct {
	Name         string
	CategoryID   int64
	Instructions string
	GlassType    string
	Strength     string
	ListID       int64
}

type FormRow struct {
	IngredientID int64
	Amount       string
}

type CocktailFormPage struct {
	Mode        string // "create" or "customize"
	Source      *db.Cocktail
	Values      CocktailFormValues
	Rows        []FormRow
	Errors      map[string]string
	Categories  []db.CocktailCategory
	Ingredients []db.Ingredient
	Lists       []db.BartenderList
}

func (s *Server) formPage(r *http.Request, mode string, source *db.Cocktail, values CocktailFormValues, rows []FormRow, errs map[string]string) CocktailFormPage {
	page := CocktailFormPage{
		Mode:   mode,
		Source: source,
		Values: values,
		Rows:   rows,
		Errors: errs,
	}
	page.Categories, _ = s.App.Store().Q.ListCategories()
	page.Ingredients, _ = s.App.Store().Q.ListIngredients()
	if p := s.App.CurrentProfile(r); p != nil {
		page.Lists, _ = s.App.Store().Q.ListBartenderListsForProfile(p.ID)
	}
	for len(page.Rows) < maxIngredientRows {
		page.Rows = append(page.Rows, FormRow{})
	}
	return page
}

/* ---------------- Create ---------------- */

func (s *Server) CocktailCreateGet(w http.ResponseWriter, r *http.Request) {
	values := CocktailFormValues{Strength: "Medium"}
	s.renderLayout(w, r, "New Cocktail", "cocktail_form.html", s.formPage(r, "create", nil, values, nil, nil))
}

func (s *Server) CocktailCreatePost(w http.ResponseWriter, r *http.Request) {
	u := s.App.CurrentUser(r)
	p := s.App.CurrentProfile(r)
	if u == nil || p == nil {
		s.redirect(w, r, "/login")
		return
	}

	_ = r.ParseMultipartForm(10 << 20)

	values, lines, rows, errs := parseCocktailForm(r)
	if len(errs) > 0 {
		s.renderLayout(w, r, "New Cocktail", "cocktail_form.html", s.formPage(r, "create", nil, values, rows, errs))
		return
	}

	imagePath := ""
	if file, hdr, err := r.FormFile("image"); err == nil && file != nil {
		defer file.Close()
		if saved, err := s.App.SaveUpload(hdr.Filename, file); err == nil {
			imagePath = saved
		}
	}

	id, err := s.App.Store().Q.CreateCocktail(db.CreateCocktailParams{
		Name:         values.Name,
		CategoryID:   values.CategoryID,
		Instructions: values.Instructions,
		ImagePath:    imagePath,
		GlassType:    values.GlassType,
		Strength:     values.Strength,
		IsClassic:    false,
		BartenderID:  &u.ID,
	})
	if err != nil {
		s.App.AddFlash(w, r, app.FlashError, "Could not create cocktail.")
		s.redirect(w, r, "/cocktails/create/")
		return
	}

	if err := s.App.Store().Q.ReplaceCocktailIngredients(id, lines); err != nil {
		s.App.Log().Error("attach ingredients", "cocktail_id", id, "err", err)
	}
	s.attachToList(w, r, p.ID, values.ListID, id)

	s.App.AddFlash(w, r, app.FlashSuccess, "Cocktail \""+values.Name+"\" created.")
	s.redirect(w, r, "/cocktails/"+itoa(id)+"/")
}

/* ---------------- Customize (fork) ---------------- */

// classicSource resolves {id} and enforces the fork precondition: only
// classic cocktails can be customized.
func (s *Server) classicSource(w http.ResponseWriter, r *http.Request) (*db.Cocktail, bool) {
	id, ok := parseInt64(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	c, err := s.App.Store().Q.GetCocktailByID(id)
	if err != nil || c == nil {
		http.NotFound(w, r)
		return nil, false
	}
	if !c.IsClassic {
		s.App.AddFlash(w, r, app.FlashError, "Only classic cocktails can be customized.")
		s.redirect(w, r, "/cocktails/"+itoa(c.ID)+"/")
		return nil, false
	}
	return c, true
}

func (s *Server) CocktailCustomizeGet(w http.ResponseWriter, r *http.Request) {
	source, ok := s.classicSource(w, r)
	if !ok {
		return
	}

	values := CocktailFormValues{
		Name:         source.Name,
		CategoryID:   source.CategoryID,
		Instructions: source.Instructions,
		GlassType:    source.GlassType,
		Strength:     source.Strength,
	}

	// Pre-fill the formset from the source's current recipe; fully editable
	// before submission.
	var rows []FormRow
	if ings, err := s.App.Store().Q.GetCocktailIngredients(source.ID); err == nil {
		for _, in := range ings {
			rows = append(rows, FormRow{IngredientID: in.IngredientID, Amount: in.Amount})
		}
	}

	s.renderLayout(w, r, "Customize "+source.Name, "cocktail_form.html",
		s.formPage(r, "customize", source, values, rows, nil))
}

func (s *Server) CocktailCustomizePost(w http.ResponseWriter, r *http.Request) {
	u := s.App.CurrentUser(r)
	p := s.App.CurrentProfile(r)
	if u == nil || p == nil {
		s.redirect(w, r, "/login")
		return
	}

	source, ok := s.classicSource(w, r)
	if !ok {
		return
	}

	_ = r.ParseMultipartForm(10 << 20)

	values, lines, rows, errs := parseCocktailForm(r)
	if len(errs) > 0 {
		// Nothing persisted on a failed form or formset.
		s.renderLayout(w, r, "Customize "+source.Name, "cocktail_form.html",
			s.formPage(r, "customize", source, values, rows, errs))
		return
	}

	imagePath := ""
	uploaded := false
	if file, hdr, err := r.FormFile("image"); err == nil && file != nil {
		defer file.Close()
		if saved, err := s.App.SaveUpload(hdr.Filename, file); err == nil {
			imagePath = saved
			uploaded = true
		}
	}

	id, err := s.App.Store().Q.CreateCocktail(db.CreateCocktailParams{
		Name:               values.Name,
		CategoryID:         values.CategoryID,
		Instructions:       values.Instructions,
		ImagePath:          imagePath,
		GlassType:          values.GlassType,
		Strength:           values.Strength,
		IsClassic:          false,
		OriginalCocktailID: &source.ID,
		BartenderID:        &u.ID,
	})
	if err != nil {
		s.App.AddFlash(w, r, app.FlashError, "Could not create customized cocktail.")
		s.redirect(w, r, "/cocktails/customize/"+itoa(source.ID)+"/")
		return
	}

	// Second save: the source image is inherited once the new row exists.
	if !uploaded && source.ImagePath != "" {
		if err := s.App.Store().Q.SetCocktailImage(id, source.ImagePath); err != nil {
			s.App.Log().Error("inherit image", "cocktail_id", id, "err", err)
		}
	}

	if err := s.App.Store().Q.ReplaceCocktailIngredients(id, lines); err != nil {
		s.App.Log().Error("attach ingredients", "cocktail_id", id, "err", err)
	}
	s.attachToList(w, r, p.ID, values.ListID, id)

	s.App.AddFlash(w, r, app.FlashSuccess, "Customized \""+source.Name+"\" as \""+values.Name+"\".")
	s.redirect(w, r, "/cocktails/"+itoa(id)+"/")
}

// attachToList links the new cocktail to the submitter's chosen destination
// list, if any. A foreign list id is ignored rather than erroring.
func (s *Server) attachToList(w http.ResponseWriter, r *http.Request, profileID, listID, cocktailID int64) {
	if listID <= 0 {
		return
	}
	l, err := s.App.Store().Q.GetOwnedBartenderList(listID, profileID)
	if err != nil || l == nil {
		return
	}
	if err := s.App.Store().Q.AddListCocktail(l.ID, cocktailID); err != nil {
		s.App.Log().Error("attach to list", "list_id", l.ID, "err", err)
	}
}

/* ---------------- Form parsing ---------------- */

// parseCocktailForm validates the main form and the ingredient formset.
// Fully-empty formset pairs are discarded; a pair with an amount but no
// ingredient is rejected. Errors is empty on success.
func parseCocktailForm(r *http.Request) (CocktailFormValues, []db.IngredientLine, []FormRow, map[string]string) {
	errs := map[string]string{}

	values := CocktailFormValues{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Instructions: strings.TrimSpace(r.FormValue("instructions")),
		GlassType:    strings.TrimSpace(r.FormValue("glass_type")),
		Strength:     strings.TrimSpace(r.FormValue("strength")),
	}
	if cid, ok := parseInt64(r.FormValue("category_id")); ok {
		values.CategoryID = cid
	}
	if lid, ok := parseInt64(r.FormValue("list_id")); ok {
		values.ListID = lid
	}

	if values.Name == "" {
		errs["name"] = "Name is required."
	}
	if values.CategoryID <= 0 {
		errs["category"] = "Pick a category."
	}
	if values.Instructions == "" {
		errs["instructions"] = "Instructions are required."
	}
	switch values.Strength {
	case "Light", "Medium", "Strong":
	default:
		values.Strength = "Medium"
	}

	ids := r.Form["ingredient_id"]
	amounts := r.Form["ingredient_amount"]

	var lines []db.IngredientLine
	var rows []FormRow
	n := len(ids)
	if n > maxIngredientRows {
		n = maxIngredientRows
	}
	for i := 0; i < n; i++ {
		idStr := strings.TrimSpace(ids[i])
		amount := ""
		if i < len(amounts) {
			amount = strings.TrimSpace(amounts[i])
		}

		if (idStr == "" || idStr == "0") && amount == "" {
			continue
		}
		iid, ok := parseInt64(idStr)
		if !ok {
			errs["ingredients"] = "Every amount needs an ingredient."
			rows = append(rows, FormRow{Amount: amount})
			continue
		}
		rows = append(rows, FormRow{IngredientID: iid, Amount: amount})
		lines = append(lines, db.IngredientLine{IngredientID: iid, Amount: amount})
	}

	return values, lines, rows, errs
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
