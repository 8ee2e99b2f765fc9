package db

import "database/sql"

type seedIngredient struct {
	Name           string
	Type           string
	IsSpirit       bool
	AlcoholPercent *float64
}

type seedCategory struct {
	Name        string
	IsAlcoholic bool
}

type seedCocktail struct {
	Name         string
	Category     string
	Instructions string
	GlassType    string
	Strength     string
}

type seedLine struct {
	CocktailName   string
	IngredientName string
	Amount         string
}

func pct(v float64) *float64 { return &v }

// SeedCatalog loads the classic reference recipes. Idempotent: every insert
// is keyed on name, and ingredient lines are only attached to cocktails that
// have none yet. Never touches users, profiles or lists.
func SeedCatalog(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	categories := []seedCategory{
		{Name: "Rum", IsAlcoholic: true},
		{Name: "Gin", IsAlcoholic: true},
		{Name: "Whiskey", IsAlcoholic: true},
		{Name: "Vodka", IsAlcoholic: true},
		{Name: "Tequila", IsAlcoholic: true},
		{Name: "Mocktails", IsAlcoholic: false},
	}

	ingredients := []seedIngredient{
		{Name: "White Rum", Type: "Spirit", IsSpirit: true, AlcoholPercent: pct(40)},
		{Name: "Gin", Type: "Spirit", IsSpirit: true, AlcoholPercent: pct(40)},
		{Name: "Bourbon", Type: "Spirit", IsSpirit: true, AlcoholPercent: pct(45)},
		{Name: "Vodka", Type: "Spirit", IsSpirit: true, AlcoholPercent: pct(40)},
		{Name: "Tequila", Type: "Spirit", IsSpirit: true, AlcoholPercent: pct(38)},
		{Name: "Triple Sec", Type: "Liqueur", IsSpirit: true, AlcoholPercent: pct(30)},
		{Name: "Dry Vermouth", Type: "Fortified Wine", AlcoholPercent: pct(18)},
		{Name: "Campari", Type: "Liqueur", AlcoholPercent: pct(25)},
		{Name: "Lime Juice", Type: "Juice"},
		{Name: "Lemon Juice", Type: "Juice"},
		{Name: "Cranberry Juice", Type: "Juice"},
		{Name: "Orange Juice", Type: "Juice"},
		{Name: "Sugar Syrup", Type: "Sweetener"},
		{Name: "Mint Leaves", Type: "Herb"},
		{Name: "Soda Water", Type: "Mixer"},
		{Name: "Ginger Beer", Type: "Mixer"},
		{Name: "Angostura Bitters", Type: "Bitters", AlcoholPercent: pct(44)},
		{Name: "Ice", Type: "Basic"},
	}

	cocktails := []seedCocktail{
		{Name: "Mojito", Category: "Rum", GlassType: "Highball", Strength: "Medium",
			Instructions: "Muddle mint with sugar syrup and lime juice. Add rum and ice, top with soda water, stir gently."},
		{Name: "Daiquiri", Category: "Rum", GlassType: "Coupe", Strength: "Strong",
			Instructions: "Shake rum, lime juice and sugar syrup with ice. Double-strain into a chilled coupe."},
		{Name: "Negroni", Category: "Gin", GlassType: "Rocks", Strength: "Strong",
			Instructions: "Stir gin, Campari and vermouth over ice. Strain over fresh ice, garnish with an orange twist."},
		{Name: "Gimlet", Category: "Gin", GlassType: "Coupe", Strength: "Medium",
			Instructions: "Shake gin, lime juice and sugar syrup with ice. Strain into a chilled glass."},
		{Name: "Whiskey Sour", Category: "Whiskey", GlassType: "Rocks", Strength: "Medium",
			Instructions: "Shake bourbon, lemon juice and sugar syrup with ice. Strain over ice, add a dash of bitters."},
		{Name: "Moscow Mule", Category: "Vodka", GlassType: "Copper Mug", Strength: "Medium",
			Instructions: "Build vodka and lime juice over ice, top with ginger beer."},
		{Name: "Margarita", Category: "Tequila", GlassType: "Margarita", Strength: "Strong",
			Instructions: "Shake tequila, triple sec and lime juice with ice. Strain into a salt-rimmed glass."},
		{Name: "Virgin Mojito", Category: "Mocktails", GlassType: "Highball", Strength: "Light",
			Instructions: "Muddle mint with sugar syrup and lime juice. Fill with ice and top with soda water."},
	}

	lines := []seedLine{
		{"Mojito", "White Rum", "50 ml"},
		{"Mojito", "Lime Juice", "25 ml"},
		{"Mojito", "Sugar Syrup", "15 ml"},
		{"Mojito", "Mint Leaves", "8 leaves"},
		{"Mojito", "Soda Water", "top up"},
		{"Daiquiri", "White Rum", "60 ml"},
		{"Daiquiri", "Lime Juice", "25 ml"},
		{"Daiquiri", "Sugar Syrup", "15 ml"},
		{"Negroni", "Gin", "30 ml"},
		{"Negroni", "Campari", "30 ml"},
		{"Negroni", "Dry Vermouth", "30 ml"},
		{"Gimlet", "Gin", "60 ml"},
		{"Gimlet", "Lime Juice", "20 ml"},
		{"Gimlet", "Sugar Syrup", "10 ml"},
		{"Whiskey Sour", "Bourbon", "50 ml"},
		{"Whiskey Sour", "Lemon Juice", "25 ml"},
		{"Whiskey Sour", "Sugar Syrup", "15 ml"},
		{"Whiskey Sour", "Angostura Bitters", "2 dashes"},
		{"Moscow Mule", "Vodka", "50 ml"},
		{"Moscow Mule", "Lime Juice", "15 ml"},
		{"Moscow Mule", "Ginger Beer", "top up"},
		{"Margarita", "Tequila", "50 ml"},
		{"Margarita", "Triple Sec", "25 ml"},
		{"Margarita", "Lime Juice", "25 ml"},
		{"Virgin Mojito", "Mint Leaves", "8 leaves"},
		{"Virgin Mojito", "Lime Juice", "25 ml"},
		{"Virgin Mojito", "Sugar Syrup", "15 ml"},
		{"Virgin Mojito", "Soda Water", "top up"},
	}

	catIDs := map[string]int64{}
	for _, c := range categories {
		id, err := upsertCategory(tx, c)
		if err != nil {
			return err
		}
		catIDs[c.Name] = id
	}

	ingIDs := map[string]int64{}
	for _, in := range ingredients {
		id, err := upsertIngredient(tx, in)
		if err != nil {
			return err
		}
		ingIDs[in.Name] = id
	}

	cockIDs := map[string]int64{}
	for _, c := range cocktails {
		id, err := upsertClassicCocktail(tx, c, catIDs[c.Category])
		if err != nil {
			return err
		}
		cockIDs[c.Name] = id
	}

	for _, ln := range lines {
		cid, ok := cockIDs[ln.CocktailName]
		if !ok {
			continue
		}
		has, err := cocktailHasIngredients(tx, cid)
		if err != nil {
			return err
		}
		if has {
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO cocktail_ingredients(cocktail_id,ingredient_id,amount)
			VALUES(?,?,?)`, cid, ingIDs[ln.IngredientName], ln.Amount); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func upsertCategory(tx *sql.Tx, c seedCategory) (int64, error) {
	_, err := tx.Exec(`
		INSERT INTO cocktail_categories(name,is_alcoholic)
		SELECT ?,?
		WHERE NOT EXISTS (SELECT 1 FROM cocktail_categories WHERE name=?);`,
		c.Name, b2i(c.IsAlcoholic), c.Name)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := tx.QueryRow(`SELECT id FROM cocktail_categories WHERE name=?;`, c.Name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func upsertIngredient(tx *sql.Tx, in seedIngredient) (int64, error) {
	_, err := tx.Exec(`
		INSERT INTO ingredients(name,type,is_spirit,alcohol_percent)
		SELECT ?,?,?,?
		WHERE NOT EXISTS (SELECT 1 FROM ingredients WHERE name=?);`,
		in.Name, in.Type, b2i(in.IsSpirit), in.AlcoholPercent, in.Name)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := tx.QueryRow(`SELECT id FROM ingredients WHERE name=?;`, in.Name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func upsertClassicCocktail(tx *sql.Tx, c seedCocktail, categoryID int64) (int64, error) {
	_, err := tx.Exec(`
		INSERT INTO cocktails(name,category_id,instructions,glass_type,strength,is_classic,created_at,updated_at)
		SELECT ?,?,?,?,?,1,?,?
		WHERE NOT EXISTS (SELECT 1 FROM cocktails WHERE name=? AND is_classic=1);`,
		c.Name, categoryID, c.Instructions, c.GlassType, c.Strength, unixNow(), unixNow(), c.Name)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := tx.QueryRow(`SELECT id FROM cocktails WHERE name=? AND is_classic=1;`, c.Name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func cocktailHasIngredients(tx *sql.Tx, cocktailID int64) (bool, error) {
	var n int
	if err := tx.QueryRow(`SELECT COUNT(1) FROM cocktail_ingredients WHERE cocktail_id=?;`, cocktailID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
