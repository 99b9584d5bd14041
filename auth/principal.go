package auth

// Role identifies a staff role from the fixed catalog. The numeric values are
// wire-level: they appear verbatim in token claims and in the users table.
type Role int

const (
	// RoleOrgAdmin administers exactly one academy.
	RoleOrgAdmin Role = 1

	// RoleStaff is a regular academy staff member, bound to one academy.
	RoleStaff Role = 2

	// RoleSuperAdmin operates across academies and must select one per request.
	RoleSuperAdmin Role = 3
)

// roleNames documents the semantics of each role value.
var roleNames = map[Role]string{
	RoleOrgAdmin:   "org_admin",
	RoleStaff:      "staff",
	RoleSuperAdmin: "super_admin",
}

// String returns the catalog name for the role, or "unknown" for values
// outside the catalog.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether the role is part of the catalog.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// TenantBound reports whether the role carries its academy in the token.
// SuperAdmin selects an academy explicitly per request instead.
func (r Role) TenantBound() bool {
	return r == RoleOrgAdmin || r == RoleStaff
}

// Principal is the authenticated identity of one request. It is created once
// from the verified token, attached to the request context, and never mutated.
// Exactly two shapes exist: StaffPrincipal and GuardianPrincipal.
type Principal interface {
	principal()
}

// StaffPrincipal represents an admin, staff or superadmin user.
type StaffPrincipal struct {
	UserID      int
	Role        Role // zero when the token carried no usable role claim
	AcademyID   int  // zero when absent; set for tenant-bound roles
	DisplayName string
}

// GuardianPrincipal represents a guardian ("apoderado") authenticated through
// the guardian portal. Guardians are identified by rut, not by academy.
type GuardianPrincipal struct {
	Rut        string // exactly 8 digits, validated at resolution time
	GuardianID int    // zero when the token carried none
}

func (StaffPrincipal) principal()    {}
func (GuardianPrincipal) principal() {}
