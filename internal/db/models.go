package db

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Profile struct {
	ID                 int64
	UserID             int64
	PreferredDrinkType string
	PicturePath        string

	Username string
	Email    string
}

type Ingredient struct {
	ID             int64
	Name           string
	Type           string
	IsSpirit       bool
	AlcoholPercent *float64
}

type CocktailCategory struct {
	ID          int64
	Name        string
	IsAlcoholic bool
}

type Cocktail struct {
	ID                 int64
	Name               string
	CategoryID         int64
	Instructions       string
	ImagePath          string
	GlassType          string
	Strength           string
	IsClassic          bool
	OriginalCocktailID *int64
	BartenderID        *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time

	CategoryName      string
	CategoryAlcoholic bool
	BartenderName     string
}

type CocktailIngredient struct {
	ID           int64
	CocktailID   int64
	IngredientID int64
	Amount       string

	IngredientName string
	IngredientType string
	IsSpirit       bool
}

// IngredientLine is one submitted formset row, already validated.
type IngredientLine struct {
	IngredientID int64
	Amount       string
}

type UserFavoriteList struct {
	ID        int64
	ProfileID int64
	IsPublic  bool
}

type BartenderList struct {
	ID        int64
	ProfileID int64
	Name      string
	IsPublic  bool

	OwnerName     string
	CocktailCount int64
}

/* ---------- parameter structs ---------- */

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

type UpdateProfileParams struct {
	UserID             int64
	Email              string
	PreferredDrinkType string
	PicturePath        string
}

type CreateCocktailParams struct {
	Name               string
	CategoryID         int64
	Instructions       string
	ImagePath          string
	GlassType          string
	Strength           string
	IsClassic          bool
	OriginalCocktailID *int64
	BartenderID        *int64
}
