package domain

// ManagedUser is the directory account table maintained by the Lead Pastor.
// It has no verification or OTP fields; a nil PasswordHash means the account
// cannot log in until an administrator resets its password.
//
// Email uniqueness is only enforced per table, so creation paths must check
// the users table as well before inserting here.
type ManagedUser struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash *string
	Role         Role
	RoleID       *string
	Permissions  *string
	Active       bool
}
