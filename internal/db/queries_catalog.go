package db

import (
	"database/sql"
	"strings"
)

const cocktailCols = `
	c.id,
	COALESCE(c.name,''),
	c.category_id,
	COALESCE(c.instructions,''),
	COALESCE(c.image_path,''),
	COALESCE(c.glass_type,''),
	COALESCE(c.strength,'Medium'),
	COALESCE(c.is_classic,0),
	c.original_cocktail_id,
	c.bartender_id,
	c.created_at,
	c.updated_at,
	COALESCE(cat.name,''),
	COALESCE(cat.is_alcoholic,0),
	COALESCE(u.username,'')`

const cocktailFrom = `
	FROM cocktails c
	JOIN cocktail_categories cat ON cat.id = c.category_id
	LEFT JOIN users u ON u.id = c.bartender_id`

func scanCocktail(sc interface{ Scan(...any) error }) (*Cocktail, error) {
	var c Cocktail
	var isClassic, catAlc int
	var orig, bart sql.NullInt64
	var ca, ua int64
	err := sc.Scan(&c.ID, &c.Name, &c.CategoryID, &c.Instructions, &c.ImagePath, &c.GlassType,
		&c.Strength, &isClassic, &orig, &bart, &ca, &ua, &c.CategoryName, &catAlc, &c.BartenderName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c.IsClassic = i2b(isClassic)
	c.CategoryAlcoholic = i2b(catAlc)
	if orig.Valid {
		c.OriginalCocktailID = &orig.Int64
	}
	if bart.Valid {
		c.BartenderID = &bart.Int64
	}
	c.CreatedAt = tFromUnix(ca)
	c.UpdatedAt = tFromUnix(ua)
	return &c, nil
}

// GetCocktailByID looks up any cocktail, classic or customized.
func (q *Queries) GetCocktailByID(id int64) (*Cocktail, error) {
	return scanCocktail(q.db.QueryRow(`SELECT `+cocktailCols+cocktailFrom+` WHERE c.id=?`, id))
}

// SearchCocktails matches the query against cocktail and category names,
// case-insensitive. An empty query returns no results.
func (q *Queries) SearchCocktails(query string) ([]Cocktail, error) {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return nil, nil
	}
	like := "%" + query + "%"
	rows, err := q.db.Query(`SELECT `+cocktailCols+cocktailFrom+`
		WHERE lower(c.name) LIKE ? OR lower(cat.name) LIKE ?
		ORDER BY c.name`, like, like)
	if err != nil {
		return nil, err
	}
	return collectCocktails(rows)
}

func (q *Queries) CountClassicCocktails() (int64, error) {
	var n int64
	err := q.db.QueryRow(`SELECT COUNT(1) FROM cocktails WHERE is_classic=1`).Scan(&n)
	return n, err
}

// ListClassicCocktails pages through the classic catalog. A non-positive
// limit returns everything (used by the add-to-list candidate set).
func (q *Queries) ListClassicCocktails(limit, offset int64) ([]Cocktail, error) {
	sqlq := `SELECT ` + cocktailCols + cocktailFrom + ` WHERE c.is_classic=1 ORDER BY c.name`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = q.db.Query(sqlq+` LIMIT ? OFFSET ?`, limit, offset)
	} else {
		rows, err = q.db.Query(sqlq)
	}
	if err != nil {
		return nil, err
	}
	return collectCocktails(rows)
}

func collectCocktails(rows *sql.Rows) ([]Cocktail, error) {
	defer rows.Close()
	var out []Cocktail
	for rows.Next() {
		c, err := scanCocktail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (q *Queries) CreateCocktail(p CreateCocktailParams) (int64, error) {
	res, err := q.db.Exec(`
		INSERT INTO cocktails(name,category_id,instructions,image_path,glass_type,strength,is_classic,original_cocktail_id,bartender_id,created_at,updated_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
		p.Name, p.CategoryID, p.Instructions, p.ImagePath, p.GlassType, p.Strength,
		b2i(p.IsClassic), p.OriginalCocktailID, p.BartenderID, unixNow(), unixNow())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SetCocktailImage is the second phase of the fork save: the source image is
// only copied onto the new row once its id exists.
func (q *Queries) SetCocktailImage(id int64, imagePath string) error {
	_, err := q.db.Exec(`UPDATE cocktails SET image_path=?, updated_at=? WHERE id=?`, imagePath, unixNow(), id)
	return err
}

func (q *Queries) DeleteCocktail(id int64) error {
	_, err := q.db.Exec(`DELETE FROM cocktails WHERE id=?`, id)
	return err
}

func (q *Queries) GetCocktailIngredients(cocktailID int64) ([]CocktailIngredient, error) {
	rows, err := q.db.Query(`
		SELECT ci.id, ci.cocktail_id, ci.ingredient_id, COALESCE(ci.amount,''),
		       COALESCE(i.name,''), COALESCE(i.type,''), COALESCE(i.is_spirit,0)
		FROM cocktail_ingredients ci
		JOIN ingredients i ON i.id = ci.ingredient_id
		WHERE ci.cocktail_id=?
		ORDER BY ci.id`, cocktailID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CocktailIngredient
	for rows.Next() {
		var ci CocktailIngredient
		var spirit int
		if err := rows.Scan(&ci.ID, &ci.CocktailID, &ci.IngredientID, &ci.Amount, &ci.IngredientName, &ci.IngredientType, &spirit); err != nil {
			return nil, err
		}
		ci.IsSpirit = i2b(spirit)
		out = append(out, ci)
	}
	return out, rows.Err()
}

func (q *Queries) ReplaceCocktailIngredients(cocktailID int64, lines []IngredientLine) error {
	tx, err := q.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM cocktail_ingredients WHERE cocktail_id=?`, cocktailID); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, ln := range lines {
		if ln.IngredientID <= 0 {
			continue
		}
		amount := strings.TrimSpace(ln.Amount)
		if amount == "" {
			amount = "to taste"
		}
		if _, err := tx.Exec(`
			INSERT INTO cocktail_ingredients(cocktail_id,ingredient_id,amount)
			VALUES(?,?,?)`, cocktailID, ln.IngredientID, amount); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

/* ---------------- Ingredients & categories ---------------- */

func (q *Queries) ListIngredients() ([]Ingredient, error) {
	rows, err := q.db.Query(`
		SELECT id, name, COALESCE(type,''), COALESCE(is_spirit,0), alcohol_percent
		FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ingredient
	for rows.Next() {
		var in Ingredient
		var spirit int
		if err := rows.Scan(&in.ID, &in.Name, &in.Type, &spirit, &in.AlcoholPercent); err != nil {
			return nil, err
		}
		in.IsSpirit = i2b(spirit)
		out = append(out, in)
	}
	return out, rows.Err()
}

func (q *Queries) ListCategories() ([]CocktailCategory, error) {
	rows, err := q.db.Query(`SELECT id, name, COALESCE(is_alcoholic,0) FROM cocktail_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CocktailCategory
	for rows.Next() {
		var c CocktailCategory
		var alc int
		if err := rows.Scan(&c.ID, &c.Name, &alc); err != nil {
			return nil, err
		}
		c.IsAlcoholic = i2b(alc)
		out = append(out, c)
	}
	return out, rows.Err()
}
