package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"ana@example.com", "a.b@c.d"}
	invalid := []string{"", "sin-arroba.com", "sin@punto"}

	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsAcceptablePassword(t *testing.T) {
	if IsAcceptablePassword("abc12") {
		t.Error("5-char password accepted")
	}
	if !IsAcceptablePassword("abc123") {
		t.Error("6-char password rejected")
	}
}
