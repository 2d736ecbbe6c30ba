package security

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

var ErrEmptyPassword = errors.New("password cannot be empty")

// Hasher implements the legacy password hashing scheme carried over from the
// persisted data: unsalted passwords are MD5, salted ones SHA-256 over
// password||salt, both lowercase hex. New hashes keep the same scheme so
// existing rows stay verifiable.
type Hasher struct{}

func NewHasher() *Hasher { return &Hasher{} }

func (Hasher) Hash(password, salt string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if salt == "" {
		sum := md5.Sum([]byte(password))
		return hex.EncodeToString(sum[:]), nil
	}
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:]), nil
}

// Verify recomputes the hash and compares in constant time. Empty password or
// empty stored hash never verifies.
func (h Hasher) Verify(password, storedHash, salt string) bool {
	if password == "" || storedHash == "" {
		return false
	}
	computed, err := h.Hash(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// Fingerprint returns the SHA-256 hex fingerprint of a token string. Used to
// index refresh tokens without persisting the plaintext.
func (Hasher) Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
