package auth

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Logical claim fields. Token issuers have renamed claim keys across
// versions, so each logical field resolves through an ordered alias list
// instead of a single key.
const (
	fieldUserID     = "user_id"
	fieldRole       = "role"
	fieldAcademy    = "academy"
	fieldName       = "name"
	fieldGuardianID = "guardian_id"
	fieldRut        = "rut"
	fieldType       = "type"
)

// claimAliases is the claim-mapping table consulted by ResolvePrincipal.
// For each logical field the aliases are probed in order and the first
// present value wins. Alias tolerance lives here as data, nowhere else.
var claimAliases = map[string][]string{
	fieldUserID:     {"user_id", "userId", "id", "sub"},
	fieldRole:       {"rol_id", "role_id", "roleId", "rol", "role"},
	fieldAcademy:    {"academia_id", "academy_id", "academiaId", "academia", "tenant_id"},
	fieldName:       {"nombre", "name", "display_name"},
	fieldGuardianID: {"apoderado_id", "guardian_id", "guardianId"},
	fieldRut:        {"rut"},
	fieldType:       {"type", "tipo"},
}

// nestingKeys are the sub-objects some issuer versions wrap the principal
// claims in. At most one level is unwrapped.
var nestingKeys = []string{"user", "payload", "data"}

// guardianTypeValue is the discriminator marking a guardian token.
const guardianTypeValue = "apoderado"

var rutPattern = regexp.MustCompile(`^[0-9]{8}$`)

// ResolvePrincipal normalizes a verified token's raw claims into a
// Principal. It performs no I/O and fails only on a malformed guardian
// token; a staff token with missing role or tenant still resolves, with
// those fields left absent for the guards to reject later.
func ResolvePrincipal(claims RawClaims) (Principal, error) {
	claims = unwrap(claims)

	if typ, ok := stringClaim(claims, fieldType); ok && strings.EqualFold(typ, guardianTypeValue) {
		return resolveGuardian(claims)
	}
	return resolveStaff(claims), nil
}

func resolveGuardian(claims RawClaims) (Principal, error) {
	rut, _ := stringClaim(claims, fieldRut)
	if !rutPattern.MatchString(rut) {
		return nil, fmt.Errorf("%w: guardian rut must be exactly 8 digits", ErrInvalidToken)
	}

	p := GuardianPrincipal{Rut: rut}
	if id, ok := intClaim(claims, fieldGuardianID); ok {
		p.GuardianID = id
	}
	return p, nil
}

func resolveStaff(claims RawClaims) Principal {
	p := StaffPrincipal{}
	if id, ok := intClaim(claims, fieldUserID); ok {
		p.UserID = id
	}
	if role, ok := intClaim(claims, fieldRole); ok {
		p.Role = Role(role)
	}
	if academy, ok := intClaim(claims, fieldAcademy); ok {
		p.AcademyID = academy
	}
	if name, ok := stringClaim(claims, fieldName); ok {
		p.DisplayName = name
	}
	return p
}

// unwrap descends into the first nested claim object found, if any.
func unwrap(claims RawClaims) RawClaims {
	for _, key := range nestingKeys {
		if nested, ok := claims[key].(map[string]interface{}); ok {
			return RawClaims(nested)
		}
	}
	return claims
}

// stringClaim probes the alias list for the field and returns the first
// non-empty string value.
func stringClaim(claims RawClaims, field string) (string, bool) {
	for _, alias := range claimAliases[field] {
		if v, ok := claims[alias]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// intClaim probes the alias list for the field and returns the first value
// coercible to a finite positive integer. Anything else counts as absent.
func intClaim(claims RawClaims, field string) (int, bool) {
	for _, alias := range claimAliases[field] {
		v, ok := claims[alias]
		if !ok {
			continue
		}
		if n, ok := toPositiveInt(v); ok {
			return n, true
		}
	}
	return 0, false
}

func toPositiveInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		// JSON numbers decode as float64. Reject NaN, infinities and
		// fractional values.
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || n <= 0 {
			return 0, false
		}
		return int(n), true
	case int:
		if n <= 0 {
			return 0, false
		}
		return n, true
	case int64:
		if n <= 0 {
			return 0, false
		}
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil || parsed <= 0 {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
