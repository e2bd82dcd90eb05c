package auth

import "time"

// IsOTPValid reports whether a submitted one-time code matches the stored one
// and has not expired. Any missing input fails. A code checked exactly at its
// expiry instant is still accepted; only strictly-past expiries are rejected.
// Mismatch and expiry are intentionally indistinguishable to the caller.
func IsOTPValid(submitted string, stored *string, expiresAt *time.Time) bool {
	if submitted == "" || stored == nil || *stored == "" || expiresAt == nil {
		return false
	}
	if submitted != *stored {
		return false
	}
	return !time.Now().UTC().After(*expiresAt)
}
