// Package auth implements Campus Connect's password digest scheme.
//
// The scheme is a single unsalted round of SHA-256 stored as lowercase hex.
// It is kept for parity with existing stored digests; a hardened scheme
// would use a salted, iterated KDF such as argon2id and requires a stored
// digest migration. Raw passwords are never stored or logged.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// DigestLen is the length of an encoded digest in hex characters.
const DigestLen = sha256.Size * 2

// HashPassword returns the lowercase hex SHA-256 digest of password.
func HashPassword(password string) string {
	h := sha256.Sum256([]byte(password))
	return hex.EncodeToString(h[:])
}

// VerifyPassword reports whether password digests to encoded.
// The comparison is constant time over the encoded form.
func VerifyPassword(password, encoded string) bool {
	if password == "" || encoded == "" {
		return false
	}
	got := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(encoded)) == 1
}
