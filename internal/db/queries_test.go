package db

import "testing"

func TestCreateUserUniqueness(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Q.CreateUser(CreateUserParams{
		Username: "anna", Email: "anna@example.com",
		PasswordHash: "x", Role: "USER", IsActive: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.Q.CreateUser(CreateUserParams{
		Username: "anna", Email: "other@example.com",
		PasswordHash: "x", Role: "USER", IsActive: true,
	}); err == nil {
		t.Error("duplicate username accepted")
	}
	if _, err := s.Q.CreateUser(CreateUserParams{
		Username: "other", Email: "anna@example.com",
		PasswordHash: "x", Role: "USER", IsActive: true,
	}); err == nil {
		t.Error("duplicate email accepted")
	}
}

func TestUserLookups(t *testing.T) {
	s := openTestStore(t)
	id, err := s.Q.CreateUser(CreateUserParams{
		Username: "anna", Email: "anna@example.com",
		PasswordHash: "x", Role: "BARTENDER", IsActive: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	byName, err := s.Q.GetUserByUsername("anna")
	if err != nil || byName == nil || byName.ID != id {
		t.Fatalf("by username = (%+v, %v)", byName, err)
	}
	if byName.Role != "BARTENDER" || !byName.IsActive {
		t.Errorf("user = %+v", byName)
	}
	if missing, err := s.Q.GetUserByUsername("nobody"); err != nil || missing != nil {
		t.Errorf("missing user = (%+v, %v), want (nil, nil)", missing, err)
	}
}

func TestHasAnyAdmin(t *testing.T) {
	s := openTestStore(t)
	if ok, _ := s.Q.HasAnyAdmin(); ok {
		t.Fatal("fresh store claims an admin")
	}
	if _, err := s.Q.CreateUser(CreateUserParams{
		Username: "root", Email: "root@example.com",
		PasswordHash: "x", Role: "ADMIN", IsActive: true,
	}); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if ok, _ := s.Q.HasAnyAdmin(); !ok {
		t.Error("admin not detected")
	}
}

func TestUpdateProfile(t *testing.T) {
	s := openTestStore(t)
	uid, err := s.Q.CreateUser(CreateUserParams{
		Username: "anna", Email: "anna@example.com",
		PasswordHash: "x", Role: "USER", IsActive: true,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := s.Q.CreateProfile(uid); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	err = s.Q.UpdateProfile(UpdateProfileParams{
		UserID:             uid,
		Email:              "new@example.com",
		PreferredDrinkType: "Non-Alcoholic",
		PicturePath:        "/uploads/p.jpg",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	p, err := s.Q.GetProfileByUserID(uid)
	if err != nil || p == nil {
		t.Fatalf("get profile = (%+v, %v)", p, err)
	}
	if p.Email != "new@example.com" || p.PreferredDrinkType != "Non-Alcoholic" || p.PicturePath != "/uploads/p.jpg" {
		t.Errorf("profile = %+v", p)
	}

	u, _ := s.Q.GetUserByID(uid)
	if u.Email != "new@example.com" {
		t.Errorf("account email = %q", u.Email)
	}
}
