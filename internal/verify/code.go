package verify

import (
	"crypto/rand"
	"math/big"
)

const codeLength = 6

var codeDigits = []rune("0123456789")

// generateCode returns a string of length digits, each drawn independently and
// uniformly from 0-9.
func generateCode(length int) (string, error) {
	out := make([]rune, length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeDigits))))
		if err != nil {
			return "", err
		}
		out[i] = codeDigits[n.Int64()]
	}
	return string(out), nil
}
