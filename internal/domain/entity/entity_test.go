package entity

import (
	"testing"
	"time"
)

func TestParseProvider(t *testing.T) {
	cases := map[string]Provider{
		"google":     ProviderGoogle,
		"GOOGLE":     ProviderGoogle,
		" Facebook ": ProviderFacebook,
		"microsoft":  ProviderMicrosoft,
		"apple":      ProviderApple,
		"local":      ProviderLocal,
	}
	for in, want := range cases {
		got, err := ParseProvider(in)
		if err != nil {
			t.Errorf("ParseProvider(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseProvider(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseProvider("myspace"); err == nil {
		t.Error("unknown provider should fail")
	}
}

func TestProviderFederated(t *testing.T) {
	if ProviderLocal.Federated() {
		t.Error("LOCAL is not federated")
	}
	if Provider("").Federated() {
		t.Error("empty provider is not federated")
	}
	for _, p := range []Provider{ProviderGoogle, ProviderFacebook, ProviderMicrosoft, ProviderApple} {
		if !p.Federated() {
			t.Errorf("%s should be federated", p)
		}
	}
}

func TestParseGender(t *testing.T) {
	cases := map[string]Gender{
		"male":   GenderMale,
		"M":      GenderMale,
		"Female": GenderFemale,
		"other":  GenderOther,
		"n":      GenderNotDisclosed,
		"":       GenderUnknown,
		"zzz":    GenderUnknown,
	}
	for in, want := range cases {
		if got := ParseGender(in); got != want {
			t.Errorf("ParseGender(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUserTransformsAreCopies(t *testing.T) {
	dob := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	original := NewUser("u-1", "Alice", "alice@example.com", &dob, GenderFemale, "")

	updated := original.WithFederatedProfile("Alice G", "https://pics/a.png")
	if original.Name != "Alice" || original.PictureURL != "" {
		t.Errorf("transform mutated the original: %+v", original)
	}
	if updated.Name != "Alice G" || updated.PictureURL != "https://pics/a.png" {
		t.Errorf("transform missed fields: %+v", updated)
	}
	if updated.UpdatedAt.Before(original.UpdatedAt) {
		t.Error("UpdatedAt must not go backwards")
	}
	// Email and birth date are off-limits to federated refreshes.
	if updated.Email != original.Email || updated.DateOfBirth != original.DateOfBirth {
		t.Error("federated refresh touched protected fields")
	}
}

func TestUserProfileComplete(t *testing.T) {
	dob := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	u := NewUser("u-1", "Alice", "alice@example.com", nil, GenderUnknown, "")
	if u.ProfileComplete() {
		t.Error("missing birth date and gender, should be incomplete")
	}
	u = u.WithProfile(u.Name, u.Email, &dob, GenderFemale, u.PictureURL)
	if !u.ProfileComplete() {
		t.Error("all fields set, should be complete")
	}
}

func TestOAuthAccountTokens(t *testing.T) {
	a := NewOAuthAccount("a-1", "u-1", ProviderGoogle, "g-1", "x@example.com", "X", "")
	if !a.IsPrimary {
		t.Error("new oauth account starts primary")
	}
	if a.HasValidTokens() {
		t.Error("no tokens yet")
	}

	future := time.Now().Add(time.Hour)
	a = a.WithTokens("at", "rt", &future)
	if !a.HasValidTokens() {
		t.Error("unexpired tokens should be valid")
	}

	past := time.Now().Add(-time.Hour)
	a = a.WithTokens("at", "rt", &past)
	if !a.TokenExpired() || a.HasValidTokens() {
		t.Error("expired tokens should be invalid")
	}
}

func TestLocalAccountHasPassword(t *testing.T) {
	a := NewLocalAccount("l-1", "u-1", "x@example.com", "hash")
	if !a.HasPassword() {
		t.Error("hash set, HasPassword should hold")
	}
	if (LocalAccount{}).HasPassword() {
		t.Error("zero value has no password")
	}
}
