// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const otpDigits = 6

var otpSpace = big.NewInt(1_000_000)

// GenerateOTP returns a zero-padded 6-digit code from crypto/rand.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

// GenerateOTPExcept draws codes until one differs from previous.
func GenerateOTPExcept(previous string) (string, error) {
	for {
		code, err := GenerateOTP()
		if err != nil {
			return "", err
		}
		if code != previous {
			return code, nil
		}
	}
}
