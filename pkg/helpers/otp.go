package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// KeyRecoveryOTP is the Redis key holding the password recovery code for an email.
func KeyRecoveryOTP(email string) string {
	return "pwd:recovery:otp:" + strings.ToLower(strings.TrimSpace(email))
}

// GenOTPCode generates a secure random 6-digit OTP code as a zero-padded string
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
