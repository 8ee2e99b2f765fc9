package handlers

import (
	"net/http"
	"net/url"
	"testing"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		email     string
		password  string
		password2 string
		want      string
	}{
		{
			name:     "valid",
			username: "anna", email: "anna@example.com",
			password: "longenough", password2: "longenough",
			want: "",
		},
		{
			name:     "seven characters rejected",
			username: "anna", email: "anna@example.com",
			password: "short77", password2: "short77",
			want: "Password has to be 8 symbols or more!",
		},
		{
			name:     "exactly eight accepted",
			username: "anna", email: "anna@example.com",
			password: "eight888", password2: "eight888",
			want: "",
		},
		{
			name:     "length checked before match",
			username: "anna", email: "anna@example.com",
			password: "short", password2: "different",
			want: "Password has to be 8 symbols or more!",
		},
		{
			name:     "mismatch",
			username: "anna", email: "anna@example.com",
			password: "longenough", password2: "longenough2",
			want: "Passwords don't match!",
		},
		{
			name:  "empty username",
			email: "anna@example.com",
			password: "longenough", password2: "longenough",
			want: "Username is required.",
		},
		{
			name:     "empty email",
			username: "anna",
			password: "longenough", password2: "longenough",
			want: "Email is required.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateRegistration(tt.username, tt.email, tt.password, tt.password2)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newTestServer(t)
	h := testRouter(s)
	_, _ = newBartender(t, s, "anna")

	form := url.Values{
		"username":  {"anna"},
		"email":     {"fresh@example.com"},
		"password":  {"longenough"},
		"password2": {"longenough"},
	}
	rec := do(t, h, "POST", "/register/", form, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if !flashContaining(poppedFlashes(t, s.App, rec), "already taken") {
		t.Error("missing already-taken flash")
	}
}

func TestRegisterLookupFailureNotReportedAsTaken(t *testing.T) {
	s := newTestServer(t)
	h := testRouter(s)

	// A broken store must not masquerade as a duplicate account.
	_ = s.App.Store().DB.Close()

	form := url.Values{
		"username":  {"anna"},
		"email":     {"anna@example.com"},
		"password":  {"longenough"},
		"password2": {"longenough"},
	}
	rec := do(t, h, "POST", "/register/", form, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	flashes := poppedFlashes(t, s.App, rec)
	if flashContaining(flashes, "already taken") {
		t.Errorf("store error reported as duplicate: %+v", flashes)
	}
	if !flashContaining(flashes, "Could not register") {
		t.Errorf("missing generic failure flash: %+v", flashes)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mojito", "Mojito.pdf"},
		{"Piña Colada", "Pi_a Colada.pdf"},
		{"  ", "cocktail.pdf"},
		{"a/b\\c", "a_b_c.pdf"},
	}
	for _, tt := range tests {
		if got := exportFilename(tt.in); got != tt.want {
			t.Errorf("exportFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
