package db

import (
	"database/sql"
	"time"
)

type Queries struct {
	db *sql.DB
}

func unixNow() int64 { return time.Now().Unix() }
func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func i2b(i int) bool { return i != 0 }

func tFromUnix(u int64) time.Time {
	if u <= 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

/* ---------------- Users ---------------- */

func (q *Queries) HasAnyAdmin() (bool, error) {
	row := q.db.QueryRow(`SELECT COUNT(1) FROM users WHERE role='ADMIN'`)
	var n int
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var isActive int
	var ca, ua int64
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &isActive, &ca, &ua); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	u.IsActive = i2b(isActive)
	u.CreatedAt = tFromUnix(ca)
	u.UpdatedAt = tFromUnix(ua)
	return &u, nil
}

const userCols = `id,username,email,password_hash,role,is_active,created_at,updated_at`

func (q *Queries) GetUserByID(id int64) (*User, error) {
	return scanUser(q.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id=?`, id))
}

func (q *Queries) GetUserByUsername(username string) (*User, error) {
	return scanUser(q.db.QueryRow(`SELECT `+userCols+` FROM users WHERE username=?`, username))
}

func (q *Queries) GetUserByEmail(email string) (*User, error) {
	return scanUser(q.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email=?`, email))
}

func (q *Queries) CreateUser(p CreateUserParams) (int64, error) {
	res, err := q.db.Exec(`
		INSERT INTO users(username,email,password_hash,role,is_active,created_at,updated_at)
		VALUES(?,?,?,?,?,?,?)`,
		p.Username, p.Email, p.PasswordHash, p.Role, b2i(p.IsActive), unixNow(), unixNow())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (q *Queries) SetUserPassword(id int64, hash string) error {
	_, err := q.db.Exec(`UPDATE users SET password_hash=?, updated_at=? WHERE id=?`, hash, unixNow(), id)
	return err
}

/* ---------------- Profiles ---------------- */

func (q *Queries) CreateProfile(userID int64) (int64, error) {
	res, err := q.db.Exec(`INSERT INTO profiles(user_id) VALUES(?)`, userID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (q *Queries) GetProfileByUserID(userID int64) (*Profile, error) {
	row := q.db.QueryRow(`
		SELECT p.id, p.user_id, p.preferred_drink_type, COALESCE(p.picture_path,''),
		       u.username, u.email
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id=?`, userID)
	var p Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.PreferredDrinkType, &p.PicturePath, &p.Username, &p.Email); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// UpdateProfile writes the profile fields and the account email in one
// transaction so a failed email update never leaves a half-saved profile.
func (q *Queries) UpdateProfile(p UpdateProfileParams) error {
	tx, err := q.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE users SET email=?, updated_at=? WHERE id=?`, p.Email, unixNow(), p.UserID); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`
		UPDATE profiles SET preferred_drink_type=?, picture_path=? WHERE user_id=?`,
		p.PreferredDrinkType, p.PicturePath, p.UserID); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
