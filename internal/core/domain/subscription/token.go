package subscription

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// TokenLength is the number of characters in a confirmation token.
const TokenLength = 25

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateToken returns a fresh confirmation token: TokenLength characters
// drawn independently and uniformly from [A-Za-z0-9]. Issued tokens are not
// tracked, so a collision with an earlier token is possible in principle; at
// this length the probability is negligible and no store lookup guards it.
func GenerateToken() (string, error) {
	alphabetSize := big.NewInt(int64(len(tokenAlphabet)))

	buf := make([]byte, TokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate token: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}

	return string(buf), nil
}
