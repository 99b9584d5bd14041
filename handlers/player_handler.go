package handlers

import (
	"net/http"
	"time"

	"github.com/academia-hq/backend/app"
	"github.com/academia-hq/backend/middleware"
	"github.com/academia-hq/backend/models"
	"github.com/academia-hq/backend/repositories"
	"github.com/academia-hq/backend/utils"
)

type playerRequest struct {
	FirstName   string    `json:"first_name" validate:"required,min=1,max=120"`
	LastName    string    `json:"last_name" validate:"required,min=1,max=120"`
	Rut         string    `json:"rut" validate:"required,rut"`
	BirthDate   time.Time `json:"birth_date" validate:"required"`
	PositionID  int       `json:"position_id" validate:"gte=0"`
	CategoryID  int       `json:"category_id" validate:"gte=0"`
	BranchID    int       `json:"branch_id" validate:"gte=0"`
	GuardianRut string    `json:"guardian_rut" validate:"omitempty,rut"`
}

// ownedReferences pairs each foreign key in the payload with its lookup
// table. Zero values mean the reference is unset and skip the check.
func (req playerRequest) ownedReferences() map[repositories.OwnedTable]int {
	return map[repositories.OwnedTable]int{
		repositories.TablePositions:  req.PositionID,
		repositories.TableCategories: req.CategoryID,
		repositories.TableBranches:   req.BranchID,
	}
}

// validateOwnedReferences confirms every set foreign key targets a row of
// the effective academy. It runs before any write and returns the table
// whose check failed. The write must not happen when this fails.
func validateOwnedReferences(r *http.Request, deps *app.Dependencies, req playerRequest, academyID int) (repositories.OwnedTable, error) {
	for table, id := range req.ownedReferences() {
		if id == 0 {
			continue
		}
		if err := deps.Ownership.ValidateOwned(r.Context(), table, id, academyID); err != nil {
			return table, err
		}
	}
	return repositories.OwnedTable{}, nil
}

// ListPlayersHandler lists the effective academy's players
func ListPlayersHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		academyID, ok := middleware.AcademyFromContext(r.Context())
		if !ok {
			_ = utils.WriteForbidden(w, "Academy scope required")
			return
		}

		players, err := deps.Players.List(r.Context(), academyID)
		if err != nil {
			writeRepoError(w, err, "player")
			return
		}

		_ = utils.WriteOK(w, players)
	}
}

// GetPlayerHandler retrieves one player within the effective academy
func GetPlayerHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		academyID, ok := middleware.AcademyFromContext(r.Context())
		if !ok {
			_ = utils.WriteForbidden(w, "Academy scope required")
			return
		}

		id, err := idParam(r)
		if err != nil {
			_ = utils.WriteBadRequest(w, err.Error())
			return
		}

		player, err := deps.Players.GetByID(r.Context(), academyID, id)
		if err != nil {
			writeRepoError(w, err, "player")
			return
		}

		_ = utils.WriteOK(w, player)
	}
}

// CreatePlayerHandler creates a player under the effective academy. Every
// lookup reference in the payload is ownership-checked first.
func CreatePlayerHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		academyID, ok := middleware.AcademyFromContext(r.Context())
		if !ok {
			_ = utils.WriteForbidden(w, "Academy scope required")
			return
		}

		var req playerRequest
		if err := decodeJSON(r, &req); err != nil {
			_ = utils.WriteBadRequest(w, "Invalid JSON body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		if table, err := validateOwnedReferences(r, deps, req, academyID); err != nil {
			writeRepoError(w, err, "referenced "+table.Name+" row")
			return
		}

		now := time.Now().UTC()
		player := &models.Player{
			AcademyID:   academyID,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Rut:         req.Rut,
			BirthDate:   req.BirthDate,
			PositionID:  req.PositionID,
			CategoryID:  req.CategoryID,
			BranchID:    req.BranchID,
			GuardianRut: req.GuardianRut,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := deps.Players.Create(r.Context(), player); err != nil {
			writeRepoError(w, err, "player")
			return
		}

		_ = utils.WriteCreated(w, player)
	}
}

// UpdatePlayerHandler updates a player within the effective academy, with
// the same ownership checks as create.
func UpdatePlayerHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		academyID, ok := middleware.AcademyFromContext(r.Context())
		if !ok {
			_ = utils.WriteForbidden(w, "Academy scope required")
			return
		}

		id, err := idParam(r)
		if err != nil {
			_ = utils.WriteBadRequest(w, err.Error())
			return
		}

		var req playerRequest
		if err := decodeJSON(r, &req); err != nil {
			_ = utils.WriteBadRequest(w, "Invalid JSON body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		if table, err := validateOwnedReferences(r, deps, req, academyID); err != nil {
			writeRepoError(w, err, "referenced "+table.Name+" row")
			return
		}

		player := &models.Player{
			ID:          id,
			AcademyID:   academyID,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Rut:         req.Rut,
			BirthDate:   req.BirthDate,
			PositionID:  req.PositionID,
			CategoryID:  req.CategoryID,
			BranchID:    req.BranchID,
			GuardianRut: req.GuardianRut,
			UpdatedAt:   time.Now().UTC(),
		}

		if err := deps.Players.Update(r.Context(), player); err != nil {
			writeRepoError(w, err, "player")
			return
		}

		_ = utils.WriteOK(w, player)
	}
}

// DeletePlayerHandler removes a player within the effective academy
func DeletePlayerHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		academyID, ok := middleware.AcademyFromContext(r.Context())
		if !ok {
			_ = utils.WriteForbidden(w, "Academy scope required")
			return
		}

		id, err := idParam(r)
		if err != nil {
			_ = utils.WriteBadRequest(w, err.Error())
			return
		}

		if err := deps.Players.Delete(r.Context(), academyID, id); err != nil {
			writeRepoError(w, err, "player")
			return
		}

		utils.WriteNoContent(w)
	}
}
