package domain

// PrincipalVariant identifies which account table a principal came from.
type PrincipalVariant string

const (
	PrincipalVariantUser    PrincipalVariant = "USER"
	PrincipalVariantManaged PrincipalVariant = "MANAGED"
)

// Principal is the normalized view of an authenticated account, regardless of
// which table it lives in. Code past the identity resolver works with this
// shape only.
type Principal struct {
	ID          string
	Email       string
	FirstName   string
	LastName    string
	Role        Role
	Active      bool
	Verified    bool
	Permissions *string
	Variant     PrincipalVariant
}

// PrincipalFromUser builds a principal from a primary account row. Permissions
// are resolved separately since the users table has no permissions column.
func PrincipalFromUser(u *User, permissions *string) *Principal {
	return &Principal{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		Active:      u.Active,
		Verified:    u.Verified,
		Permissions: permissions,
		Variant:     PrincipalVariantUser,
	}
}

// PrincipalFromManagedUser builds a principal from a directory account row
// using its denormalized permissions blob.
func PrincipalFromManagedUser(m *ManagedUser) *Principal {
	return &Principal{
		ID:          m.ID,
		Email:       m.Email,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Role:        m.Role,
		Active:      m.Active,
		Verified:    true,
		Permissions: m.Permissions,
		Variant:     PrincipalVariantManaged,
	}
}
