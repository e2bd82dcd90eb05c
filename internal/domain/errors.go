package domain

import "errors"

// Authentication and authorization outcomes surfaced to the transport layer.
// Each maps to a distinct response; see pkg/util errorutil for the mapping.
var (
	// ErrInvalidCredentials covers a failed password check. Deliberately vague.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotFound means no account matched in either table.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountInactive means the account exists but has been deactivated.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrCredentialsNotSet means a directory account exists without a password
	// hash; the caller should be told to request a reset, not retry.
	ErrCredentialsNotSet = errors.New("account exists but password not set")

	// ErrAccountNotVerified means an admin account has not completed OTP
	// verification yet.
	ErrAccountNotVerified = errors.New("account not verified")

	// ErrForbidden means the principal is authenticated but its role is not
	// allowed the operation.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrInvalidOrExpiredCode covers every OTP failure; mismatch and expiry are
	// not distinguished so callers cannot probe which part failed.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired OTP code")

	// ErrDuplicateAccount means the email already resolves to an account.
	ErrDuplicateAccount = errors.New("email already registered")

	// ErrRoleNotFound means no role definition exists for the requested role.
	ErrRoleNotFound = errors.New("role not found")

	// ErrRoleInactive means the role definition exists but is disabled.
	ErrRoleInactive = errors.New("role is not active")
)
