package service

import (
	"fmt"
	"strings"

	"smcbi/internal/utils"
)

// PrefixedCodeGenerator produces codes like SMCBI-493028. Collisions are
// accepted as statistically negligible; no uniqueness check is made.
type PrefixedCodeGenerator struct {
	Prefix string
	Digits int
}

func (g PrefixedCodeGenerator) Generate() (string, error) {
	digits, err := utils.RandomDigits(g.Digits)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", strings.ToUpper(g.Prefix), digits), nil
}
