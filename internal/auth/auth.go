// Package auth implements the single-password gate: PBKDF2-HMAC-SHA256 over
// a stored salt, compared in constant time against a stored hex digest.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 200000
	keyLen            = sha256.Size
	saltLen           = 16
)

var ErrInvalidPassword = errors.New("invalid password")

// Secret is the stored verifier for the password gate.
type Secret struct {
	Hash       []byte
	Salt       []byte
	Iterations int
}

// DecodeSalt reads a base64 salt, falling back to hex.
func DecodeSalt(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode salt: not base64 or hex")
	}
	return b, nil
}

// ParseSecret builds a Secret from its text forms. An empty iterations value
// means DefaultIterations.
func ParseSecret(hash, salt, iterations string) (Secret, error) {
	h, err := hex.DecodeString(strings.TrimSpace(hash))
	if err != nil {
		return Secret{}, fmt.Errorf("decode password hash: %w", err)
	}
	sb, err := DecodeSalt(salt)
	if err != nil {
		return Secret{}, err
	}
	n := DefaultIterations
	if it := strings.TrimSpace(iterations); it != "" {
		n, err = strconv.Atoi(it)
		if err != nil || n <= 0 {
			return Secret{}, fmt.Errorf("parse iterations %q: must be a positive integer", it)
		}
	}
	return Secret{Hash: h, Salt: sb, Iterations: n}, nil
}

func derive(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)
}

// Verify returns ErrInvalidPassword unless password derives to s.Hash.
func (s Secret) Verify(password string) error {
	got := derive(password, s.Salt, s.Iterations)
	if subtle.ConstantTimeCompare(got, s.Hash) != 1 {
		return ErrInvalidPassword
	}
	return nil
}

// Derive creates a new Secret for password with a random salt.
func Derive(password string, iterations int) (Secret, error) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return Secret{}, fmt.Errorf("generate salt: %w", err)
	}
	return Secret{Hash: derive(password, salt, iterations), Salt: salt, Iterations: iterations}, nil
}

// Encode returns the hex hash, base64 salt and iteration count as stored.
func (s Secret) Encode() (hash, salt, iterations string) {
	return hex.EncodeToString(s.Hash), base64.StdEncoding.EncodeToString(s.Salt), strconv.Itoa(s.Iterations)
}
