package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/obraseguro/backend/pkg/apperr"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON unmarshals the body into dst and runs its validate tags.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return apperr.Validation(err.Error())
	}
	return nil
}

// pathID parses a numeric path variable. Ids are surrogate integers; anything
// else is a validation failure, not a lookup.
func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid " + name)
	}
	return uint(id), nil
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

// paginate reads the skip/limit query parameters with the usual defaults.
func paginate(r *http.Request) (offset, limit int) {
	offset = queryInt(r, "skip", 0)
	limit = queryInt(r, "limit", 100)
	if limit > 100 {
		limit = 100
	}
	return offset, limit
}
