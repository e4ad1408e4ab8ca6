package model

import "strings"

// Role is the permission profile of an administrator.
type Role string

const (
	RoleAdmin  Role = "Adm"
	RoleEditor Role = "Editor"
)

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleEditor}

// ParseRole maps a profile name to a Role, ignoring case and surrounding
// whitespace. "Admin" is accepted as an alias of "Adm".
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adm", "admin":
		return RoleAdmin, true
	case "editor":
		return RoleEditor, true
	default:
		return "", false
	}
}

func (r Role) String() string {
	return string(r)
}
