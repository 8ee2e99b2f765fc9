package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-pdf/fpdf"
)

// ExportPDFGet renders a one-page recipe card for a cocktail and returns it
// as a file download named after the cocktail. Read-only.
func (s *Server) ExportPDFGet(w http.ResponseWriter, r *http.Request) {
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

	// Alcoholic status is carried by the category, not the cocktail row.
	alcoholic := "Non-Alcoholic"
	if c.CategoryAlcoholic {
		alcoholic = "Alcoholic"
	}
	kind := "Customized"
	if c.IsClassic {
		kind = "Classic"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(c.Name, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, c.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s  |  %s  |  %s", c.CategoryName, alcoholic, kind), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Glass: %s    Strength: %s", c.GlassType, c.Strength), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Ingredients", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if len(ings) == 0 {
		pdf.CellFormat(0, 6, "No ingredients recorded.", "", 1, "L", false, 0, "")
	}
	for _, in := range ings {
		pdf.CellFormat(0, 6, fmt.Sprintf("- %s (%s)", in.IngredientName, in.Amount), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Instructions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, c.Instructions, "", "L", false)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(c.Name)))
	if err := pdf.Output(w); err != nil {
		s.App.Log().Error("pdf export", "cocktail_id", c.ID, "err", err)
	}
}

func exportFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "cocktail"
	}
	// Keep header-safe characters only.
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	return name + ".pdf"
}
