package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// CodeLength is the number of digits in a reset code.
const CodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// CodeIssuer generates short-lived numeric password-reset codes.
type CodeIssuer struct {
	ttl time.Duration
}

func NewCodeIssuer(ttl time.Duration) *CodeIssuer {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CodeIssuer{ttl: ttl}
}

// Issue returns a left-zero-padded 6-digit code drawn uniformly from
// 000000-999999 and its absolute expiry.
func (i *CodeIssuer) Issue() (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), time.Now().Add(i.ttl), nil
}

func (i *CodeIssuer) TTL() time.Duration {
	return i.ttl
}
