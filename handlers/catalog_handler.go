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

type catalogItemRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// ListCatalogHandler lists a lookup table's rows within the effective academy
func ListCatalogHandler(deps *app.Dependencies, table repositories.OwnedTable) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		academyID, ok := middleware.AcademyFromContext(r.Context())
		if !ok {
			_ = utils.WriteForbidden(w, "Academy scope required")
			return
		}

		items, err := deps.Catalogs.List(r.Context(), table, academyID)
		if err != nil {
			writeRepoError(w, err, table.Name)
			return
		}

		_ = utils.WriteOK(w, items)
	}
}

// GetCatalogItemHandler retrieves one lookup row within the effective academy
func GetCatalogItemHandler(deps *app.Dependencies, table repositories.OwnedTable) http.HandlerFunc {
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

		item, err := deps.Catalogs.GetByID(r.Context(), table, academyID, id)
		if err != nil {
			writeRepoError(w, err, table.Name)
			return
		}

		_ = utils.WriteOK(w, item)
	}
}

// CreateCatalogItemHandler creates a lookup row under the effective academy
func CreateCatalogItemHandler(deps *app.Dependencies, table repositories.OwnedTable) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		academyID, ok := middleware.AcademyFromContext(r.Context())
		if !ok {
			_ = utils.WriteForbidden(w, "Academy scope required")
			return
		}

		var req catalogItemRequest
		if err := decodeJSON(r, &req); err != nil {
			_ = utils.WriteBadRequest(w, "Invalid JSON body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		now := time.Now().UTC()
		item := &models.CatalogItem{
			AcademyID: academyID,
			Name:      req.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := deps.Catalogs.Create(r.Context(), table, item); err != nil {
			writeRepoError(w, err, table.Name)
			return
		}

		_ = utils.WriteCreated(w, item)
	}
}

// UpdateCatalogItemHandler renames a lookup row within the effective academy
func UpdateCatalogItemHandler(deps *app.Dependencies, table repositories.OwnedTable) http.HandlerFunc {
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

		var req catalogItemRequest
		if err := decodeJSON(r, &req); err != nil {
			_ = utils.WriteBadRequest(w, "Invalid JSON body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		item := &models.CatalogItem{
			ID:        id,
			AcademyID: academyID,
			Name:      req.Name,
			UpdatedAt: time.Now().UTC(),
		}

		if err := deps.Catalogs.Update(r.Context(), table, item); err != nil {
			writeRepoError(w, err, table.Name)
			return
		}

		_ = utils.WriteOK(w, item)
	}
}

// DeleteCatalogItemHandler removes a lookup row within the effective academy
func DeleteCatalogItemHandler(deps *app.Dependencies, table repositories.OwnedTable) http.HandlerFunc {
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

		if err := deps.Catalogs.Delete(r.Context(), table, academyID, id); err != nil {
			writeRepoError(w, err, table.Name)
			return
		}

		utils.WriteNoContent(w)
	}
}
