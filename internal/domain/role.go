package domain

import "strings"

// Role enumerates the assignable account roles.
type Role string

const (
	RoleSuperadmin         Role = "SUPERADMIN"
	RoleAdmin              Role = "ADMIN" // Lead Pastor
	RolePastorStaff        Role = "PASTOR_STAFF"
	RoleTeachingTeam       Role = "TEACHING_TEAM"
	RoleCommunicationsTeam Role = "COMMUNICATIONS_TEAM"
	RoleSmallGroupLeader   Role = "SMALL_GROUP_LEADER"
)

// AllRoles lists every known role value.
var AllRoles = []Role{
	RoleSuperadmin,
	RoleAdmin,
	RolePastorStaff,
	RoleTeachingTeam,
	RoleCommunicationsTeam,
	RoleSmallGroupLeader,
}

// ParseRole converts a string into a Role, case-insensitively.
func ParseRole(s string) (Role, bool) {
	candidate := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, role := range AllRoles {
		if role == candidate {
			return role, true
		}
	}
	return "", false
}

// DisplayName renders the role for human-facing messages, e.g. "Small Group Leader".
func (r Role) DisplayName() string {
	words := strings.Split(strings.ToLower(string(r)), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// RoleDefinition stores per-role permissions and availability.
// Managed users copy the permissions blob from here when their role is assigned.
type RoleDefinition struct {
	ID          string
	Role        Role
	Permissions *string
	Active      bool
}
