package db

import "database/sql"

/* ---------------- Bartender lists ---------------- */

func (q *Queries) CreateBartenderList(profileID int64, name string, isPublic bool) (int64, error) {
	res, err := q.db.Exec(`
		INSERT INTO bartender_cocktail_lists(profile_id,name,is_public) VALUES(?,?,?)`,
		profileID, name, b2i(isPublic))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetOwnedBartenderList enforces ownership through the lookup filter: a list
// belonging to someone else is indistinguishable from a missing one.
func (q *Queries) GetOwnedBartenderList(id, profileID int64) (*BartenderList, error) {
	row := q.db.QueryRow(`
		SELECT id, profile_id, name, is_public
		FROM bartender_cocktail_lists WHERE id=? AND profile_id=?`, id, profileID)
	var l BartenderList
	var pub int
	if err := row.Scan(&l.ID, &l.ProfileID, &l.Name, &pub); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	l.IsPublic = i2b(pub)
	return &l, nil
}

func (q *Queries) ListBartenderListsForProfile(profileID int64) ([]BartenderList, error) {
	rows, err := q.db.Query(`
		SELECT l.id, l.profile_id, l.name, l.is_public, u.username,
		       (SELECT COUNT(1) FROM bartender_list_cocktails m WHERE m.list_id = l.id)
		FROM bartender_cocktail_lists l
		JOIN profiles p ON p.id = l.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE l.profile_id=?
		ORDER BY l.name`, profileID)
	if err != nil {
		return nil, err
	}
	return collectBartenderLists(rows)
}

func (q *Queries) ListPublicBartenderLists() ([]BartenderList, error) {
	rows, err := q.db.Query(`
		SELECT l.id, l.profile_id, l.name, l.is_public, u.username,
		       (SELECT COUNT(1) FROM bartender_list_cocktails m WHERE m.list_id = l.id)
		FROM bartender_cocktail_lists l
		JOIN profiles p ON p.id = l.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE l.is_public=1
		ORDER BY u.username, l.name`)
	if err != nil {
		return nil, err
	}
	return collectBartenderLists(rows)
}

func collectBartenderLists(rows *sql.Rows) ([]BartenderList, error) {
	defer rows.Close()
	var out []BartenderList
	for rows.Next() {
		var l BartenderList
		var pub int
		if err := rows.Scan(&l.ID, &l.ProfileID, &l.Name, &pub, &l.OwnerName, &l.CocktailCount); err != nil {
			return nil, err
		}
		l.IsPublic = i2b(pub)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (q *Queries) ListBartenderListCocktails(listID int64) ([]Cocktail, error) {
	rows, err := q.db.Query(`SELECT `+cocktailCols+cocktailFrom+`
		JOIN bartender_list_cocktails m ON m.cocktail_id = c.id
		WHERE m.list_id=?
		ORDER BY c.name`, listID)
	if err != nil {
		return nil, err
	}
	return collectCocktails(rows)
}

// AddListCocktail appends a membership row. There is intentionally no
// duplicate check here; adding twice produces two rows.
func (q *Queries) AddListCocktail(listID, cocktailID int64) error {
	_, err := q.db.Exec(`INSERT INTO bartender_list_cocktails(list_id,cocktail_id) VALUES(?,?)`, listID, cocktailID)
	return err
}

// RemoveListCocktail deletes the membership rows for (list, cocktail) and
// garbage-collects the cocktail itself when that was its last reference:
// non-classic, no remaining list membership, no favorite membership. The
// reference-count check and the conditional delete run in the same
// transaction as the membership delete, so two concurrent removals cannot
// both observe a stale count. Returns whether the cocktail row was deleted.
func (q *Queries) RemoveListCocktail(listID, cocktailID int64) (bool, error) {
	tx, err := q.db.Begin()
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec(`DELETE FROM bartender_list_cocktails WHERE list_id=? AND cocktail_id=?`, listID, cocktailID); err != nil {
		_ = tx.Rollback()
		return false, err
	}

	var classic, listRefs, favRefs int
	err = tx.QueryRow(`
		SELECT COALESCE(c.is_classic,0),
		       (SELECT COUNT(1) FROM bartender_list_cocktails m WHERE m.cocktail_id = c.id),
		       (SELECT COUNT(1) FROM user_favorite_cocktails f WHERE f.cocktail_id = c.id)
		FROM cocktails c WHERE c.id=?`, cocktailID).Scan(&classic, &listRefs, &favRefs)
	if err == sql.ErrNoRows {
		// Already gone; deleting a deleted cocktail is a no-op.
		return false, tx.Commit()
	}
	if err != nil {
		_ = tx.Rollback()
		return false, err
	}

	if classic == 0 && listRefs == 0 && favRefs == 0 {
		if _, err := tx.Exec(`DELETE FROM cocktails WHERE id=?`, cocktailID); err != nil {
			_ = tx.Rollback()
			return false, err
		}
		return true, tx.Commit()
	}
	return false, tx.Commit()
}

func (q *Queries) SetListVisibility(id, profileID int64, isPublic bool) (bool, error) {
	res, err := q.db.Exec(`
		UPDATE bartender_cocktail_lists SET is_public=? WHERE id=? AND profile_id=?`,
		b2i(isPublic), id, profileID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (q *Queries) DeleteBartenderList(id, profileID int64) (bool, error) {
	res, err := q.db.Exec(`DELETE FROM bartender_cocktail_lists WHERE id=? AND profile_id=?`, id, profileID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CocktailListRefCount counts bartender-list memberships, which is what makes
// a non-classic cocktail "published" and eligible for favoriting.
func (q *Queries) CocktailListRefCount(cocktailID int64) (int64, error) {
	var n int64
	err := q.db.QueryRow(`SELECT COUNT(1) FROM bartender_list_cocktails WHERE cocktail_id=?`, cocktailID).Scan(&n)
	return n, err
}

/* ---------------- Favorites ---------------- */

// GetFavoriteList returns the profile's favorite list if it exists.
func (q *Queries) GetFavoriteList(profileID int64) (*UserFavoriteList, error) {
	row := q.db.QueryRow(`SELECT id, profile_id, is_public FROM user_favorite_lists WHERE profile_id=?`, profileID)
	var l UserFavoriteList
	var pub int
	if err := row.Scan(&l.ID, &l.ProfileID, &pub); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	l.IsPublic = i2b(pub)
	return &l, nil
}

// GetOrCreateFavoriteList provisions the profile's favorite list on first use.
func (q *Queries) GetOrCreateFavoriteList(profileID int64) (*UserFavoriteList, error) {
	// INSERT OR IGNORE rides the UNIQUE(profile_id) constraint, so two
	// concurrent first-favorite requests converge on one list.
	if _, err := q.db.Exec(`INSERT OR IGNORE INTO user_favorite_lists(profile_id) VALUES(?)`, profileID); err != nil {
		return nil, err
	}
	row := q.db.QueryRow(`SELECT id, profile_id, is_public FROM user_favorite_lists WHERE profile_id=?`, profileID)
	var l UserFavoriteList
	var pub int
	if err := row.Scan(&l.ID, &l.ProfileID, &pub); err != nil {
		return nil, err
	}
	l.IsPublic = i2b(pub)
	return &l, nil
}

func (q *Queries) IsFavorite(listID, cocktailID int64) (bool, error) {
	var n int
	err := q.db.QueryRow(`SELECT COUNT(1) FROM user_favorite_cocktails WHERE list_id=? AND cocktail_id=?`, listID, cocktailID).Scan(&n)
	return n > 0, err
}

func (q *Queries) AddFavorite(listID, cocktailID int64) error {
	_, err := q.db.Exec(`INSERT INTO user_favorite_cocktails(list_id,cocktail_id) VALUES(?,?)`, listID, cocktailID)
	return err
}

func (q *Queries) RemoveFavorite(listID, cocktailID int64) error {
	_, err := q.db.Exec(`DELETE FROM user_favorite_cocktails WHERE list_id=? AND cocktail_id=?`, listID, cocktailID)
	return err
}

func (q *Queries) ListFavoriteCocktails(listID int64) ([]Cocktail, error) {
	rows, err := q.db.Query(`SELECT `+cocktailCols+cocktailFrom+`
		JOIN user_favorite_cocktails f ON f.cocktail_id = c.id
		WHERE f.list_id=?
		ORDER BY c.name`, listID)
	if err != nil {
		return nil, err
	}
	return collectCocktails(rows)
}
