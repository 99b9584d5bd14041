package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/academia-hq/backend/app"
	"github.com/academia-hq/backend/middleware"
	"github.com/academia-hq/backend/models"
	"github.com/academia-hq/backend/utils"
)

type newsRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Body      string `json:"body" validate:"required"`
	Published bool   `json:"published"`
}

// ListNewsHandler lists the effective academy's announcements
func ListNewsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		academyID, ok := middleware.AcademyFromContext(r.Context())
		if !ok {
			_ = utils.WriteForbidden(w, "Academy scope required")
			return
		}

		items, err := deps.News.List(r.Context(), academyID)
		if err != nil {
			writeRepoError(w, err, "news item")
			return
		}

		_ = utils.WriteOK(w, items)
	}
}

// GetNewsHandler retrieves one announcement within the effective academy
func GetNewsHandler(deps *app.Dependencies) http.HandlerFunc {
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

		item, err := deps.News.GetByID(r.Context(), academyID, id)
		if err != nil {
			writeRepoError(w, err, "news item")
			return
		}

		_ = utils.WriteOK(w, item)
	}
}

// CreateNewsHandler creates an announcement under the effective academy
func CreateNewsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		academyID, ok := middleware.AcademyFromContext(r.Context())
		if !ok {
			_ = utils.WriteForbidden(w, "Academy scope required")
			return
		}

		var req newsRequest
		if err := decodeJSON(r, &req); err != nil {
			_ = utils.WriteBadRequest(w, "Invalid JSON body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		now := time.Now().UTC()
		item := &models.News{
			Slug:      uuid.NewString(),
			AcademyID: academyID,
			Title:     req.Title,
			Body:      req.Body,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if req.Published {
			item.PublishedAt = &now
		}

		if err := deps.News.Create(r.Context(), item); err != nil {
			writeRepoError(w, err, "news item")
			return
		}

		_ = utils.WriteCreated(w, item)
	}
}

// UpdateNewsHandler updates an announcement within the effective academy
func UpdateNewsHandler(deps *app.Dependencies) http.HandlerFunc {
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

		var req newsRequest
		if err := decodeJSON(r, &req); err != nil {
			_ = utils.WriteBadRequest(w, "Invalid JSON body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		now := time.Now().UTC()
		item := &models.News{
			ID:        id,
			AcademyID: academyID,
			Title:     req.Title,
			Body:      req.Body,
			UpdatedAt: now,
		}
		if req.Published {
			item.PublishedAt = &now
		}

		if err := deps.News.Update(r.Context(), item); err != nil {
			writeRepoError(w, err, "news item")
			return
		}

		_ = utils.WriteOK(w, item)
	}
}

// DeleteNewsHandler removes an announcement within the effective academy
func DeleteNewsHandler(deps *app.Dependencies) http.HandlerFunc {
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

		if err := deps.News.Delete(r.Context(), academyID, id); err != nil {
			writeRepoError(w, err, "news item")
			return
		}

		utils.WriteNoContent(w)
	}
}
