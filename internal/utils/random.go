package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

var ten = big.NewInt(10)

// RandomDigits returns size uniformly random decimal digits.
func RandomDigits(size int) (string, error) {
	var builder strings.Builder
	builder.Grow(size)
	for i := 0; i < size; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		builder.WriteByte(byte('0' + n.Int64()))
	}
	return builder.String(), nil
}
