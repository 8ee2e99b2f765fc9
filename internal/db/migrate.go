package db

import "database/sql"

func Migrate(db *sql.DB) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,

		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('ADMIN','BARTENDER','USER')),
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL DEFAULT (strftime('%s','now')),
			updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
		);`,

		`CREATE TABLE IF NOT EXISTS profiles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL UNIQUE,
			preferred_drink_type TEXT NOT NULL CHECK(preferred_drink_type IN ('Alcoholic','Non-Alcoholic','Both')) DEFAULT 'Both',
			picture_path TEXT NOT NULL DEFAULT '',
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		);`,

		`CREATE TABLE IF NOT EXISTS ingredients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL DEFAULT '',
			is_spirit INTEGER NOT NULL DEFAULT 0,
			alcohol_percent REAL NULL
		);`,

		`CREATE TABLE IF NOT EXISTS cocktail_categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			is_alcoholic INTEGER NOT NULL DEFAULT 1
		);`,

		`CREATE TABLE IF NOT EXISTS cocktails (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category_id INTEGER NOT NULL,
			instructions TEXT NOT NULL DEFAULT '',
			image_path TEXT NOT NULL DEFAULT '',
			glass_type TEXT NOT NULL DEFAULT '',
			strength TEXT NOT NULL CHECK(strength IN ('Light','Medium','Strong')) DEFAULT 'Medium',
			is_classic INTEGER NOT NULL DEFAULT 0,
			original_cocktail_id INTEGER NULL,
			bartender_id INTEGER NULL,
			created_at INTEGER NOT NULL DEFAULT (strftime('%s','now')),
			updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now')),
			FOREIGN KEY(category_id) REFERENCES cocktail_categories(id) ON DELETE CASCADE,
			FOREIGN KEY(original_cocktail_id) REFERENCES cocktails(id) ON DELETE SET NULL,
			FOREIGN KEY(bartender_id) REFERENCES users(id) ON DELETE SET NULL
		);`,

		`CREATE TABLE IF NOT EXISTS cocktail_ingredients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			cocktail_id INTEGER NOT NULL,
			ingredient_id INTEGER NOT NULL,
			amount TEXT NOT NULL DEFAULT 'to taste',
			FOREIGN KEY(cocktail_id) REFERENCES cocktails(id) ON DELETE CASCADE,
			FOREIGN KEY(ingredient_id) REFERENCES ingredients(id) ON DELETE CASCADE
		);`,

		`CREATE TABLE IF NOT EXISTS user_favorite_lists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile_id INTEGER NOT NULL UNIQUE,
			is_public INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY(profile_id) REFERENCES profiles(id) ON DELETE CASCADE
		);`,

		// No uniqueness on (list_id, cocktail_id): the duplicate guard lives
		// in the favorites workflow, same as the source data model.
		`CREATE TABLE IF NOT EXISTS user_favorite_cocktails (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			list_id INTEGER NOT NULL,
			cocktail_id INTEGER NOT NULL,
			FOREIGN KEY(list_id) REFERENCES user_favorite_lists(id) ON DELETE CASCADE,
			FOREIGN KEY(cocktail_id) REFERENCES cocktails(id) ON DELETE CASCADE
		);`,

		`CREATE TABLE IF NOT EXISTS bartender_cocktail_lists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			is_public INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY(profile_id) REFERENCES profiles(id) ON DELETE CASCADE
		);`,

		`CREATE TABLE IF NOT EXISTS bartender_list_cocktails (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			list_id INTEGER NOT NULL,
			cocktail_id INTEGER NOT NULL,
			FOREIGN KEY(list_id) REFERENCES bartender_cocktail_lists(id) ON DELETE CASCADE,
			FOREIGN KEY(cocktail_id) REFERENCES cocktails(id) ON DELETE CASCADE
		);`,

		`CREATE INDEX IF NOT EXISTS idx_cocktails_classic ON cocktails(is_classic, name);`,
		`CREATE INDEX IF NOT EXISTS idx_cocktail_ingredients_cocktail ON cocktail_ingredients(cocktail_id);`,
		`CREATE INDEX IF NOT EXISTS idx_favorite_cocktails_list ON user_favorite_cocktails(list_id, cocktail_id);`,
		`CREATE INDEX IF NOT EXISTS idx_list_cocktails_list ON bartender_list_cocktails(list_id, cocktail_id);`,
		`CREATE INDEX IF NOT EXISTS idx_list_cocktails_cocktail ON bartender_list_cocktails(cocktail_id);`,
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
