// Package auth implements the salted password digest stored on users and the
// capture of social-login tokens.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/s/librekpi/internal/apperrors"
)

const (
	// SaltSize is the number of random bytes in a salt.
	SaltSize = 8
	// SaltLength is the Base64 text length of a salt (salt column width).
	SaltLength = 12
	// HashLength is the hex length of a SHA-256 digest (password column width).
	HashLength = 64
)

// GenerateSalt returns SaltSize cryptographically random bytes as Base64 text.
func GenerateSalt() (string, error) {
	buf := make([]byte, SaltSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// DecodeSalt turns the stored Base64 salt into raw bytes.
func DecodeSalt(salt string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrCorruptCredentialState,
			fmt.Sprintf("malformed salt: %v", err))
	}
	return raw, nil
}

// HashPassword returns the lowercase hex SHA-256 digest of the UTF-8 password
// followed by the raw salt bytes.
func HashPassword(password string, salt []byte) string {
	h := sha256.New()
	h.Write([]byte(password))
	h.Write(salt)
	return hex.EncodeToString(h.Sum(nil))
}

// CheckPassword compares a stored digest with the digest of password.
func CheckPassword(hashedPassword, password string, salt []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(hashedPassword), []byte(candidate)) == 1
}
