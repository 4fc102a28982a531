package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the hex-encoded SHA-256 digest of the password.
// The User worksheet has stored digests in this format since the first
// deployment, so the scheme cannot change without migrating the sheet.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPassword reports whether the password matches the stored digest.
func CheckPassword(storedHash, password string) bool {
	computed := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(computed)) == 1
}

// CheckAdminPassword compares the Admin worksheet's stored value with the
// supplied password. The Admin sheet stores the value verbatim, so this is
// a direct constant-time comparison rather than a digest check.
func CheckAdminPassword(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
