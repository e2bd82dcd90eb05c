package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// DefaultGeneratedPasswordLength is used for auto-provisioned accounts.
	DefaultGeneratedPasswordLength = 12
)

// GenerateOTP returns a uniformly random 6-digit code in [100000, 999999],
// so the rendered string never collapses a leading zero.
func GenerateOTP() (string, error) {
	n, err := randInt(900000)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n+100000), nil
}

// GenerateSecurePassword produces a random password containing at least one
// uppercase letter, one lowercase letter, one digit and one symbol. The final
// order is shuffled so the guaranteed characters are not positionally
// predictable. All randomness comes from crypto/rand.
func GenerateSecurePassword(length int) (string, error) {
	if length < 4 {
		length = DefaultGeneratedPasswordLength
	}

	password := make([]byte, 0, length)
	for _, set := range []string{upperChars, lowerChars, digitChars, symbolChars} {
		ch, err := randChar(set)
		if err != nil {
			return "", err
		}
		password = append(password, ch)
	}

	allChars := upperChars + lowerChars + digitChars + symbolChars
	for len(password) < length {
		ch, err := randChar(allChars)
		if err != nil {
			return "", err
		}
		password = append(password, ch)
	}

	// Fisher-Yates with a crypto source.
	for i := len(password) - 1; i > 0; i-- {
		j, err := randInt(int64(i + 1))
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func randChar(set string) (byte, error) {
	idx, err := randInt(int64(len(set)))
	if err != nil {
		return 0, err
	}
	return set[idx], nil
}

func randInt(max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}
