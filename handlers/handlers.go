package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/academia-hq/backend/repositories"
	"github.com/academia-hq/backend/utils"
)

// decodeJSON decodes a request body into dst, rejecting unknown fields
func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// idParam parses the {id} URL parameter as a positive integer
func idParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return id, nil
}

// writeRepoError collapses repository failures to the response contract:
// ErrNotFound becomes 404, anything else a generic 500 with no internal
// detail.
func writeRepoError(w http.ResponseWriter, err error, resource string) {
	if errors.Is(err, repositories.ErrNotFound) {
		_ = utils.WriteNotFound(w, resource+" not found")
		return
	}
	_ = utils.WriteInternalServerError(w, "")
}

// writeValidationError writes a 400 with the first validation message
func writeValidationError(w http.ResponseWriter, err error) {
	var validationErr *utils.ValidationError
	if errors.As(err, &validationErr) {
		for _, msg := range validationErr.Fields {
			_ = utils.WriteBadRequest(w, msg)
			return
		}
	}
	_ = utils.WriteBadRequest(w, err.Error())
}
