// Package codes generates confirmation codes for enrollments.
package codes

import (
	"crypto/rand"
	"math/big"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

const codeLength = 10

var codeAlphabet = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

type generator struct{}

// NewGenerator returns a CodeGenerator producing 10-character codes over
// uppercase letters and digits. Uniqueness is enforced by the store; a
// collision on insert is retryable with a fresh code.
func NewGenerator() domain.CodeGenerator {
	return generator{}
}

func (generator) Generate() (string, error) {
	b := make([]rune, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}
