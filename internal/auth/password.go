package auth

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only considers the first 72 bytes of input. Longer passwords are
// truncated at the byte boundary before hashing AND before verification so
// stored hashes and future checks always agree.
const maxPasswordBytes = 72

func truncatePassword(password string) string {
	raw := []byte(password)
	if len(raw) <= maxPasswordBytes {
		return password
	}
	raw = raw[:maxPasswordBytes]
	// The cut may land inside a multi-byte rune; drop the dangling bytes.
	for len(raw) > 0 {
		r, size := utf8.DecodeLastRune(raw)
		if r == utf8.RuneError && size == 1 {
			raw = raw[:len(raw)-1]
			continue
		}
		break
	}
	return string(raw)
}

// HashPassword hashes a plaintext password with the configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(truncatePassword(password)), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword verifies a password against its stored hash. A malformed hash
// is treated as a mismatch, never an error.
func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(truncatePassword(plain))) == nil
}
