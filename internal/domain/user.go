package domain

import "time"

// User is the primary account table. It carries verification state and the
// one-time code used for email verification and password reset.
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	Active       bool
	Verified     bool
	OTPCode      *string
	OTPExpiresAt *time.Time
	CreatedByID  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SetOTP attaches a one-time code, replacing any previous one.
func (u *User) SetOTP(code string, expiresAt time.Time) {
	u.OTPCode = &code
	u.OTPExpiresAt = &expiresAt
}

// ClearOTP discards the stored one-time code.
func (u *User) ClearOTP() {
	u.OTPCode = nil
	u.OTPExpiresAt = nil
}
