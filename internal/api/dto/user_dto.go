package dto

import "time"

// CreateAdminRequest payload for superadmin admin provisioning.
type CreateAdminRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateAdminRequest payload for editing an admin; nil fields are kept.
type UpdateAdminRequest struct {
	Email      *string `json:"email"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	IsActive   *bool   `json:"is_active"`
	IsVerified *bool   `json:"is_verified"`
}

// AdminResponse describes an admin account.
type AdminResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedBy  *string   `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UpdateProfileRequest payload for editing one's own account; nil fields are
// kept.
type UpdateProfileRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

// CreateManagedUserRequest payload for directory account provisioning.
type CreateManagedUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// UpdateManagedUserRequest payload for editing a directory account.
type UpdateManagedUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"is_active"`
}

// ManagedUserResponse describes a directory account.
type ManagedUserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Role        string  `json:"role"`
	RoleID      *string `json:"role_id"`
	Permissions *string `json:"permissions"`
	IsActive    bool    `json:"is_active"`
}

// UpdateUserPermissionsRequest payload for overwriting one account's
// permissions blob.
type UpdateUserPermissionsRequest struct {
	Permissions *string `json:"permissions"`
}

// UserPermissionsResponse describes the permissions held by one directory
// account.
type UserPermissionsResponse struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	Permissions *string `json:"permissions"`
}

// UpdateRoleRequest payload for editing a role definition.
type UpdateRoleRequest struct {
	Permissions *string `json:"permissions"`
	IsActive    *bool   `json:"is_active"`
}

// RoleResponse describes a role definition.
type RoleResponse struct {
	ID          string  `json:"id"`
	Role        string  `json:"role"`
	Permissions *string `json:"permissions"`
	IsActive    bool    `json:"is_active"`
}
