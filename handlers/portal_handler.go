package handlers

import (
	"net/http"

	"github.com/academia-hq/backend/app"
	"github.com/academia-hq/backend/middleware"
	"github.com/academia-hq/backend/utils"
)

// PortalPlayersHandler lists the players linked to the authenticated
// guardian. Guardian routes use self-ownership: rows are matched against the
// guardian's own rut, never by academy id.
func PortalPlayersHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guardian, ok := middleware.GuardianFromContext(r.Context())
		if !ok {
			_ = utils.WriteForbidden(w, "Insufficient permissions")
			return
		}

		players, err := deps.Players.ListByGuardianRut(r.Context(), guardian.Rut)
		if err != nil {
			writeRepoError(w, err, "player")
			return
		}

		_ = utils.WriteOK(w, players)
	}
}
