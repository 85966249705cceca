package identity

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPPurpose scopes a one-time code to the flow that requested it
type OTPPurpose string

const (
	OTPPurposeLogin             OTPPurpose = "login"
	OTPPurposePasswordReset     OTPPurpose = "password_reset"
	OTPPurposeEmailVerification OTPPurpose = "email_verification"
)

// OTPCodeLength is the number of digits in a generated code
const OTPCodeLength = 6

// DefaultOTPTTL is how long a code stays valid
const DefaultOTPTTL = 10 * time.Minute

// OTPStore holds pending one-time codes. Codes are single use:
// Consume removes the code whether or not it matched an attempt limit,
// so a second verification with the same code fails.
type OTPStore interface {
	// Put stores a code for an email and purpose, replacing any pending one
	Put(ctx context.Context, email string, purpose OTPPurpose, code string, ttl time.Duration) error

	// Consume checks the submitted code and deletes it on match.
	// Returns true only when a live code matched.
	Consume(ctx context.Context, email string, purpose OTPPurpose, code string) (bool, error)

	// Close releases store resources
	Close() error
}

// GenerateOTPCode returns a random zero-padded numeric code
func GenerateOTPCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < OTPCodeLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPCodeLength, n), nil
}
