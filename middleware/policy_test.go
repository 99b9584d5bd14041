package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/academia-hq/backend/auth"
)

// serveWithPrincipal runs the policy middleware with the principal already
// attached, mirroring the RequireAuth -> RequirePolicy chain.
func serveWithPrincipal(t *testing.T, mw func(http.Handler) http.Handler, p auth.Principal, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	handlerRan := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(AcademyHeader, header)
	}
	if p != nil {
		req = req.WithContext(WithPrincipal(req.Context(), p))
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, handlerRan
}

func TestRequirePolicy(t *testing.T) {
	logger := zap.NewNop()
	m := NewAuthMiddleware(nil, logger)

	staffReadPolicy := AuthorizationPolicy{
		Roles:  []auth.Role{auth.RoleOrgAdmin, auth.RoleSuperAdmin},
		Tenant: TenantScoped,
	}

	t.Run("org admin in allowed set passes with token academy", func(t *testing.T) {
		// Scenario: role 1 bound to academy 5, route allows {1,3}, no header.
		var gotAcademy int
		handler := m.RequirePolicy(staffReadPolicy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			academy, ok := AcademyFromContext(r.Context())
			require.True(t, ok)
			gotAcademy = academy
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req = req.WithContext(WithPrincipal(req.Context(),
			auth.StaffPrincipal{UserID: 1, Role: auth.RoleOrgAdmin, AcademyID: 5}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, gotAcademy)
	})

	t.Run("superadmin without selection header gets 403", func(t *testing.T) {
		w, ran := serveWithPrincipal(t, m.RequirePolicy(staffReadPolicy),
			auth.StaffPrincipal{UserID: 1, Role: auth.RoleSuperAdmin}, "")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, ran)
		assert.Contains(t, w.Body.String(), "selection")
	})

	t.Run("superadmin with selection header passes", func(t *testing.T) {
		var gotAcademy int
		handler := m.RequirePolicy(staffReadPolicy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAcademy, _ = AcademyFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(AcademyHeader, "7")
		req = req.WithContext(WithPrincipal(req.Context(),
			auth.StaffPrincipal{UserID: 1, Role: auth.RoleSuperAdmin}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 7, gotAcademy)
	})

	t.Run("selection header is required on every request", func(t *testing.T) {
		// A successful scoped request must not leak scope into the next one.
		p := auth.StaffPrincipal{UserID: 1, Role: auth.RoleSuperAdmin}
		mw := m.RequirePolicy(staffReadPolicy)

		w, _ := serveWithPrincipal(t, mw, p, "4")
		assert.Equal(t, http.StatusOK, w.Code)

		w, ran := serveWithPrincipal(t, mw, p, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, ran)
	})

	t.Run("header has no effect for tenant-bound roles", func(t *testing.T) {
		var gotAcademy int
		handler := m.RequirePolicy(staffReadPolicy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAcademy, _ = AcademyFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(AcademyHeader, "9")
		req = req.WithContext(WithPrincipal(req.Context(),
			auth.StaffPrincipal{UserID: 1, Role: auth.RoleOrgAdmin, AcademyID: 5}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, gotAcademy)
	})

	t.Run("tenant-bound role without academy gets 403", func(t *testing.T) {
		w, ran := serveWithPrincipal(t, m.RequirePolicy(staffReadPolicy),
			auth.StaffPrincipal{UserID: 1, Role: auth.RoleOrgAdmin}, "")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, ran)
	})

	t.Run("role outside allowed set gets 403", func(t *testing.T) {
		w, ran := serveWithPrincipal(t, m.RequirePolicy(staffReadPolicy),
			auth.StaffPrincipal{UserID: 1, Role: auth.RoleStaff, AcademyID: 5}, "")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, ran)
	})

	t.Run("guardian on staff route gets 403 regardless of role-like fields", func(t *testing.T) {
		w, ran := serveWithPrincipal(t, m.RequirePolicy(staffReadPolicy),
			auth.GuardianPrincipal{Rut: "12345678"}, "")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, ran)
	})

	t.Run("missing principal gets 401", func(t *testing.T) {
		w, ran := serveWithPrincipal(t, m.RequirePolicy(staffReadPolicy), nil, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, ran)
	})

	t.Run("non-scoped policy does not set an academy", func(t *testing.T) {
		policy := AuthorizationPolicy{Roles: []auth.Role{auth.RoleSuperAdmin}, Tenant: TenantNone}

		handler := m.RequirePolicy(policy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := AcademyFromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req = req.WithContext(WithPrincipal(req.Context(),
			auth.StaffPrincipal{UserID: 1, Role: auth.RoleSuperAdmin}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireGuardian(t *testing.T) {
	logger := zap.NewNop()
	m := NewAuthMiddleware(nil, logger)

	t.Run("guardian principal passes", func(t *testing.T) {
		w, ran := serveWithPrincipal(t, m.RequireGuardian,
			auth.GuardianPrincipal{Rut: "12345678"}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, ran)
	})

	t.Run("staff principal gets 403", func(t *testing.T) {
		w, ran := serveWithPrincipal(t, m.RequireGuardian,
			auth.StaffPrincipal{UserID: 1, Role: auth.RoleOrgAdmin, AcademyID: 5}, "")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, ran)
	})

	t.Run("missing principal gets 401", func(t *testing.T) {
		w, ran := serveWithPrincipal(t, m.RequireGuardian, nil, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, ran)
	})
}
