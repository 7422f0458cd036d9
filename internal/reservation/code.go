package reservation

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// CodeLength is the length of a booking code.
	CodeLength = 8
	// maxCodeAttempts bounds the insert retries on booking code collisions.
	maxCodeAttempts = 5
)

// NewBookingCode returns a random code of CodeLength characters from [A-Z0-9].
// Uniqueness is enforced by the store, not here.
func NewBookingCode() (string, error) {
	limit := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, CodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate booking code: %w", err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
