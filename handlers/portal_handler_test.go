package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/academia-hq/backend/auth"
	"github.com/academia-hq/backend/middleware"
	"github.com/academia-hq/backend/models"
)

func TestPortalPlayersHandler(t *testing.T) {
	t.Run("returns only the guardian's own players", func(t *testing.T) {
		players := new(MockPlayerRepository)
		deps := testDeps(players, nil)

		players.On("ListByGuardianRut", mock.Anything, "12345678").Return([]*models.Player{
			{ID: 1, AcademyID: 5, FirstName: "Diego", GuardianRut: "12345678"},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/portal/players", nil)
		req = req.WithContext(middleware.WithPrincipal(req.Context(),
			auth.GuardianPrincipal{Rut: "12345678"}))
		w := httptest.NewRecorder()

		PortalPlayersHandler(deps)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		players.AssertExpectations(t)
	})

	t.Run("staff principal cannot use the portal", func(t *testing.T) {
		players := new(MockPlayerRepository)
		deps := testDeps(players, nil)

		req := httptest.NewRequest(http.MethodGet, "/portal/players", nil)
		req = req.WithContext(middleware.WithPrincipal(req.Context(),
			auth.StaffPrincipal{UserID: 1, Role: auth.RoleOrgAdmin, AcademyID: 5}))
		w := httptest.NewRecorder()

		PortalPlayersHandler(deps)(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		players.AssertNotCalled(t, "ListByGuardianRut")
	})
}
