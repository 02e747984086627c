// Package password derives salted password digests.
//
// A digest is the lowercase hex SHA-256 of the UTF-8 bytes of
// secret + "|" + salt. Salts are minted by the caller (the registration
// service uses the decimal form of a freshly generated ID).
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Separator joins secret and salt before hashing.
const Separator = "|"

// Hash returns the hex digest of secret and salt.
func Hash(secret, salt string) string {
	sum := sha256.Sum256([]byte(secret + Separator + salt))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether secret and salt produce digest. The comparison is
// constant-time.
func Verify(secret, salt, digest string) bool {
	got := Hash(secret, salt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(digest)) == 1
}
