package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "student@example.com", NormalizeEmail("  Student@Example.COM "))
}

func TestValidEmail(t *testing.T) {
	valid := []string{"student@example.com", "First.Last@school.edu.ph"}
	for _, email := range valid {
		require.True(t, ValidEmail(email), email)
	}
	invalid := []string{"", "   ", "no-at-sign", "double@@example.com", "Name <student@example.com>"}
	for _, email := range invalid {
		require.False(t, ValidEmail(email), email)
	}
}

func TestEmailLocalPart(t *testing.T) {
	require.Equal(t, "jdelacruz", EmailLocalPart("jdelacruz@example.com"))
	require.Equal(t, "plain", EmailLocalPart("plain"))
}
