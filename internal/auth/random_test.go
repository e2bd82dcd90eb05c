package auth

import (
	"strconv"
	"strings"
	"testing"
)

func TestGenerateOTPRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestGenerateSecurePasswordClasses(t *testing.T) {
	for i := 0; i < 50; i++ {
		password, err := GenerateSecurePassword(DefaultGeneratedPasswordLength)
		if err != nil {
			t.Fatalf("GenerateSecurePassword: %v", err)
		}
		if len(password) != DefaultGeneratedPasswordLength {
			t.Fatalf("password %q has length %d", password, len(password))
		}
		if !strings.ContainsAny(password, upperChars) {
			t.Fatalf("password %q missing uppercase", password)
		}
		if !strings.ContainsAny(password, lowerChars) {
			t.Fatalf("password %q missing lowercase", password)
		}
		if !strings.ContainsAny(password, digitChars) {
			t.Fatalf("password %q missing digit", password)
		}
		if !strings.ContainsAny(password, symbolChars) {
			t.Fatalf("password %q missing symbol", password)
		}
	}
}

func TestGenerateSecurePasswordTinyLengthFallsBack(t *testing.T) {
	password, err := GenerateSecurePassword(2)
	if err != nil {
		t.Fatalf("GenerateSecurePassword: %v", err)
	}
	if len(password) != DefaultGeneratedPasswordLength {
		t.Fatalf("expected fallback length %d, got %d", DefaultGeneratedPasswordLength, len(password))
	}
}
