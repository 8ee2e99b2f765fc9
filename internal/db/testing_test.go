package db

import "testing"

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := Migrate(s.DB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func mustCategory(t *testing.T, s *Store, name string, alcoholic bool) int64 {
	t.Helper()
	res, err := s.DB.Exec(`INSERT INTO cocktail_categories(name,is_alcoholic) VALUES(?,?)`, name, b2i(alcoholic))
	if err != nil {
		t.Fatalf("insert category %s: %v", name, err)
	}
	id, _ := res.LastInsertId()
	return id
}

func mustIngredient(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	res, err := s.DB.Exec(`INSERT INTO ingredients(name) VALUES(?)`, name)
	if err != nil {
		t.Fatalf("insert ingredient %s: %v", name, err)
	}
	id, _ := res.LastInsertId()
	return id
}

func mustCocktail(t *testing.T, s *Store, p CreateCocktailParams) int64 {
	t.Helper()
	id, err := s.Q.CreateCocktail(p)
	if err != nil {
		t.Fatalf("create cocktail %s: %v", p.Name, err)
	}
	return id
}

func mustProfile(t *testing.T, s *Store, username string) int64 {
	t.Helper()
	uid, err := s.Q.CreateUser(CreateUserParams{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         "BARTENDER",
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	pid, err := s.Q.CreateProfile(uid)
	if err != nil {
		t.Fatalf("create profile %s: %v", username, err)
	}
	return pid
}

func countRows(t *testing.T, s *Store, query string, args ...any) int {
	t.Helper()
	var n int
	if err := s.DB.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
