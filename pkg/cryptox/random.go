package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// RandomString draws n symbols uniformly from alphabet using r. A nil reader
// means crypto/rand.
func RandomString(r io.Reader, alphabet string, n int) (string, error) {
	if alphabet == "" {
		return "", errors.New("cryptox: empty alphabet")
	}
	if n <= 0 {
		return "", fmt.Errorf("cryptox: length must be positive, got %d", n)
	}
	if r == nil {
		r = rand.Reader
	}

	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		v, err := rand.Int(r, limit)
		if err != nil {
			return "", fmt.Errorf("cryptox: read entropy: %w", err)
		}
		out[i] = alphabet[v.Int64()]
	}
	return string(out), nil
}
