package utils

import (
	"net/mail"
	"strings"
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	address, err := mail.ParseAddress(trimmed)
	return err == nil && address.Address == trimmed
}

// EmailLocalPart returns the part before the @, used to synthesize a
// display name when the identity listing carries no profile metadata.
func EmailLocalPart(email string) string {
	local, _, found := strings.Cut(strings.TrimSpace(email), "@")
	if !found {
		return strings.TrimSpace(email)
	}
	return local
}
