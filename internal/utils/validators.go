package utils

import "strings"

// IsValidEmail checks if the email string looks like an address.
func IsValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// IsAcceptablePassword enforces the minimum password length.
func IsAcceptablePassword(password string) bool {
	return len(password) >= 6
}
