package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a salted bcrypt credential. bcrypt is the only
// scheme new credentials are ever written in.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a plaintext password against a stored credential.
// It fails closed: a malformed credential verifies false, never panics.
//
// Credentials written by the previous system have the form "salt:sha256hex".
// Those still verify, and legacy reports true so the login path can re-hash
// the password to bcrypt on the spot.
func VerifyPassword(password, credential string) (ok bool, legacy bool) {
	if isLegacyCredential(credential) {
		return verifyLegacy(password, credential), true
	}
	err := bcrypt.CompareHashAndPassword([]byte(credential), []byte(password))
	return err == nil, false
}

func isLegacyCredential(credential string) bool {
	salt, digest, found := strings.Cut(credential, ":")
	if !found {
		return false
	}
	if _, err := hex.DecodeString(salt); err != nil {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil && len(digest) == sha256.Size*2
}

func verifyLegacy(password, credential string) bool {
	salt, digest, found := strings.Cut(credential, ":")
	if !found {
		return false
	}
	sum := sha256.Sum256([]byte(password + salt))
	computed := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
