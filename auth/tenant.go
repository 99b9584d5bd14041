package auth

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrTenantRequired is returned when a tenant-bound role carries no
	// usable academy id in its token
	ErrTenantRequired = errors.New("academy scope required")

	// ErrTenantSelectionRequired is returned when a superadmin request
	// lacks a valid academy-selection header
	ErrTenantSelectionRequired = errors.New("academy selection required")
)

// EffectiveTenant computes the academy id a staff request is scoped to.
//
// Tenant-bound roles always use the academy embedded in the token; the
// override value is ignored for them so a forged header cannot widen the
// scope. SuperAdmin has no embedded academy and must select one through the
// override value on every request. There is deliberately no "all academies"
// fallback.
//
// The result is computed fresh per request and must be passed explicitly to
// every downstream query; it is never cached.
func EffectiveTenant(p StaffPrincipal, override string) (int, error) {
	if p.Role == RoleSuperAdmin {
		id, err := strconv.Atoi(strings.TrimSpace(override))
		if err != nil || id <= 0 {
			return 0, ErrTenantSelectionRequired
		}
		return id, nil
	}

	if p.AcademyID <= 0 {
		return 0, ErrTenantRequired
	}
	return p.AcademyID, nil
}
