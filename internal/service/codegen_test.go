package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefixedCodeGenerator(t *testing.T) {
	generator := PrefixedCodeGenerator{Prefix: "smcbi", Digits: 6}
	pattern := regexp.MustCompile(`^SMCBI-\d{6}$`)

	for i := 0; i < 50; i++ {
		code, err := generator.Generate()
		require.NoError(t, err)
		require.Regexp(t, pattern, code)
	}
}
