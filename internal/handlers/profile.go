package handlers

import (
	"net/http"

	"cocktail-cellar-go/internal/app"
	"cocktail-cellar-go/internal/db"
)

type ProfilePage struct {
	Profile db.Profile
}

func (s *Server) ProfileGet(w http.ResponseWriter, r *http.Request) {
	p := s.App.CurrentProfile(r)
	if p == nil {
		s.redirect(w, r, "/login")
		return
	}
	s.renderLayout(w, r, "Profile", "profile.html", ProfilePage{Profile: *p})
}

func (s *Server) ProfilePost(w http.ResponseWriter, r *http.Request) {
	p := s.App.CurrentProfile(r)
	if p == nil {
		s.redirect(w, r, "/login")
		return
	}

	_ = r.ParseMultipartForm(10 << 20)

	email := app.NormalizeEmail(r.FormValue("email"))
	drinkType := r.FormValue("preferred_drink_type")
	if email == "" || !validDrinkType(drinkType) {
		s.App.AddFlash(w, r, app.FlashError, "Profile not updated")
		s.redirect(w, r, "/profile/")
		return
	}

	picture := p.PicturePath
	if file, _, err := r.FormFile("profile_picture"); err == nil && file != nil {
		defer file.Close()
		saved, err := s.App.SaveProfilePicture(file)
		if err != nil {
			s.App.AddFlash(w, r, app.FlashError, "Profile not updated")
			s.redirect(w, r, "/profile/")
			return
		}
		picture = saved
	}

	err := s.App.Store().Q.UpdateProfile(db.UpdateProfileParams{
		UserID:             p.UserID,
		Email:              email,
		PreferredDrinkType: drinkType,
		PicturePath:        picture,
	})
	if err != nil {
		s.App.AddFlash(w, r, app.FlashError, "Profile not updated")
	} else {
		s.App.AddFlash(w, r, app.FlashInfo, "Profile updated")
	}
	s.redirect(w, r, "/profile/")
}

func validDrinkType(s string) bool {
	switch s {
	case "Alcoholic", "Non-Alcoholic", "Both":
		return true
	}
	return false
}
