package workflow

import "strings"

// Role represents a caller's role as seen by the transition engine
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleFaculty    Role = "faculty"
	RoleCommittee  Role = "committee"
	RoleRector     Role = "rector"
	RoleResearcher Role = "researcher"
)

// roleAliases maps legacy role spellings and numeric codes onto canonical roles.
// The numeric codes come from the old frontend which sent role ids instead of names.
var roleAliases = map[string]Role{
	"super_admin":      RoleSuperAdmin,
	"superadmin":       RoleSuperAdmin,
	"1":                RoleSuperAdmin,
	"admin":            RoleAdmin,
	"2":                RoleAdmin,
	"faculty":          RoleFaculty,
	"faculty_admin":    RoleFaculty,
	"3":                RoleFaculty,
	"committee":        RoleCommittee,
	"committee_member": RoleCommittee,
	"4":                RoleCommittee,
	"rector":           RoleRector,
	"rectorate":        RoleRector,
	"5":                RoleRector,
	"researcher":       RoleResearcher,
	"6":                RoleResearcher,
}

// stepRoles binds each pipeline step to the reviewer role allowed to act on it
var stepRoles = map[Step]Role{
	StepFaculty:   RoleFaculty,
	StepCommittee: RoleCommittee,
	StepRector:    RoleRector,
}

// ResolveRole normalizes a raw role name or legacy numeric code.
// Returns ErrInvalidRole for anything unknown.
func ResolveRole(raw string) (Role, error) {
	if role, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return role, nil
	}
	return "", ErrInvalidRole
}

// IsAdministrative returns true if the role may act on any step
func (r Role) IsAdministrative() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}
