package service

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordKeySize    = 64
	passwordIterations = 350000
)

// PasswordHasher derives keyed password hashes with PBKDF2-SHA512 and a
// fresh random salt per password. Verification is constant time.
type PasswordHasher struct{}

// Hash returns the hex-encoded hash and salt for the password.
func (PasswordHasher) Hash(password string) (hash, salt string, err error) {
	saltBytes := make([]byte, passwordKeySize)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), saltBytes, passwordIterations, passwordKeySize, sha512.New)
	return hex.EncodeToString(key), hex.EncodeToString(saltBytes), nil
}

// Verify recomputes the derivation with the stored salt and compares the
// outputs in constant time.
func (PasswordHasher) Verify(password, hash, salt string) bool {
	saltBytes, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}

	key := pbkdf2.Key([]byte(password), saltBytes, passwordIterations, passwordKeySize, sha512.New)
	return subtle.ConstantTimeCompare(key, expected) == 1
}
