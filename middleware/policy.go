package middleware

import (
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/academia-hq/backend/auth"
	"github.com/academia-hq/backend/utils"
)

// AcademyHeader is the per-request academy selection header, consulted only
// for superadmin requests. It is ignored for every other role.
const AcademyHeader = "X-Academia-Id"

// TenantMode states how a route derives its academy scope.
type TenantMode int

const (
	// TenantNone marks a route that reads no tenant-scoped data.
	TenantNone TenantMode = iota

	// TenantScoped marks a route whose queries are filtered by the
	// effective academy id: the token's academy for tenant-bound roles, the
	// AcademyHeader value for superadmin.
	TenantScoped
)

// AuthorizationPolicy is the declarative route policy: which staff roles may
// pass and whether the route is academy-scoped. Each route group attaches
// exactly one policy; RequirePolicy is the only place role and scope checks
// run. Guardian-only routes use RequireGuardian instead.
type AuthorizationPolicy struct {
	Roles  []auth.Role
	Tenant TenantMode
}

// Allows reports whether the role is in the policy's allowed set.
func (p AuthorizationPolicy) Allows(role auth.Role) bool {
	for _, allowed := range p.Roles {
		if role == allowed {
			return true
		}
	}
	return false
}

func (p AuthorizationPolicy) roleNames() []string {
	names := make([]string, len(p.Roles))
	for i, role := range p.Roles {
		names[i] = role.String()
	}
	return names
}

// RequirePolicy evaluates an AuthorizationPolicy against the request's
// principal. Evaluation is fail-fast: the first failing check writes the
// response and nothing after it runs. Must run after RequireAuth.
func (m *AuthMiddleware) RequirePolicy(policy AuthorizationPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := chimiddleware.GetReqID(ctx)

			principal, ok := PrincipalFromContext(ctx)
			if !ok {
				m.logger.Error("principal not found in context",
					zap.String("request_id", requestID))
				_ = utils.WriteUnauthorized(w, "Authentication required")
				return
			}

			staff, ok := principal.(auth.StaffPrincipal)
			if !ok {
				m.logger.Warn("staff route denied to guardian principal",
					zap.String("request_id", requestID),
					zap.Strings("allowed_roles", policy.roleNames()))
				_ = utils.WriteForbidden(w, "Insufficient permissions")
				return
			}

			if !policy.Allows(staff.Role) {
				m.logger.Warn("role not permitted",
					zap.String("request_id", requestID),
					zap.Int("user_id", staff.UserID),
					zap.String("attempted_role", staff.Role.String()),
					zap.Strings("allowed_roles", policy.roleNames()))
				_ = utils.WriteForbidden(w, "Insufficient permissions")
				return
			}

			if policy.Tenant == TenantScoped {
				academyID, err := auth.EffectiveTenant(staff, r.Header.Get(AcademyHeader))
				if err != nil {
					m.writeTenantError(w, r, staff, err)
					return
				}
				ctx = WithAcademy(ctx, academyID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireGuardian admits only guardian principals. Guardian routes carry no
// academy scope; each resource matches rows against the guardian's own rut.
func (m *AuthMiddleware) RequireGuardian(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := chimiddleware.GetReqID(ctx)

		principal, ok := PrincipalFromContext(ctx)
		if !ok {
			m.logger.Error("principal not found in context",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		if _, ok := principal.(auth.GuardianPrincipal); !ok {
			m.logger.Warn("guardian route denied to staff principal",
				zap.String("request_id", requestID))
			_ = utils.WriteForbidden(w, "Insufficient permissions")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) writeTenantError(w http.ResponseWriter, r *http.Request, staff auth.StaffPrincipal, err error) {
	requestID := chimiddleware.GetReqID(r.Context())

	switch {
	case errors.Is(err, auth.ErrTenantSelectionRequired):
		m.logger.Warn("academy selection missing for superadmin request",
			zap.String("request_id", requestID),
			zap.Int("user_id", staff.UserID))
		_ = utils.WriteForbidden(w, "Academy selection header required")
	case errors.Is(err, auth.ErrTenantRequired):
		m.logger.Warn("token carries no academy for tenant-bound role",
			zap.String("request_id", requestID),
			zap.Int("user_id", staff.UserID),
			zap.String("role", staff.Role.String()))
		_ = utils.WriteForbidden(w, "Academy scope required")
	default:
		m.logger.Error("tenant resolution failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteForbidden(w, "Academy scope required")
	}
}
