// Package secret provides helpers for handling plaintext secrets in memory
// and generating random passwords.
//
// Generated passwords draw from crypto/rand with rejection sampling so
// every character of the alphabet is equally likely.
package secret

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
)

const (
	DefaultLength = 20
	MinLength     = 8
	MaxLength     = 128

	// Alphabet used by GeneratePassword
	Alphabet = "abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"0123456789" +
		"!@#$%^&*()-_=+[]{}<>?"
)

var ErrInvalidLength = errors.New("invalid password length")

// GeneratePassword returns a random password of the given length
func GeneratePassword(length int) ([]byte, error) {
	if length < MinLength || length > MaxLength {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidLength, length, MinLength, MaxLength)
	}

	// Largest multiple of len(Alphabet) that fits in a byte
	limit := byte(256 - 256%len(Alphabet))

	out := make([]byte, 0, length)
	buf := make([]byte, length*2)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	ClearBytes(buf)
	return out, nil
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
