package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength     = 16
	hashIterations = 100000
	hashKeyLength  = 32
)

// HashPassword derives a PBKDF2-SHA256 key from the password under a fresh
// random salt and encodes both as "hex(salt):hex(key)".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyLength, sha256.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword re-derives the key using the stored salt and compares in
// constant time. Malformed stored hashes verify false rather than erroring.
func VerifyPassword(password, storedHash string) bool {
	saltHex, keyHex, found := strings.Cut(storedHash, ":")
	if !found || saltHex == "" || keyHex == "" {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	key := pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyLength, sha256.New)
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(key)), []byte(keyHex)) == 1
}
