// Package users implements the identity domain. A user is keyed by a hashed
// phone number; raw phone numbers are never persisted.
package users

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Supported interface languages.
const (
	LangEnglish = "en"
	LangHebrew  = "he"
)

// User represents an authenticated person.
type User struct {
	ID        uuid.UUID `json:"id"`
	PhoneHash string    `json:"phone_hash"`
	Lang      string    `json:"lang"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateCommand carries the mutable user attributes. The phone hash is
// immutable once set and has no update path.
type UpdateCommand struct {
	Lang string `json:"lang"`
}

// ValidLang reports whether lang is a supported language code.
func ValidLang(lang string) bool {
	return lang == LangEnglish || lang == LangHebrew
}

// HashPhone produces the durable identity surrogate for a raw phone number:
// a SHA-256 hex digest over the normalized digits. Same number, same digest.
func HashPhone(phone string) string {
	sum := sha256.Sum256([]byte(normalizePhone(phone)))
	return hex.EncodeToString(sum[:])
}

func normalizePhone(phone string) string {
	var b strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
