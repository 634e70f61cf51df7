package models

import "strings"

// Role is the category of an authenticated staff member
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
	RolePhysician    Role = "physician"
	RoleNurse        Role = "nurse"
)

// ReceptionRoles may open the reception page tree
var ReceptionRoles = []Role{RoleAdmin, RoleReceptionist, RolePhysician}

// AllRoles lists every role known to the application
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleReceptionist, RolePhysician, RoleNurse}
}

// ParseRole normalises s and reports whether it names a known role
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllRoles() {
		if r == known {
			return r, true
		}
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}
