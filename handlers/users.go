package handlers

import (
	"net/http"

	"github.com/obraseguro/backend/config"
	"github.com/obraseguro/backend/pkg/apperr"
	"github.com/obraseguro/backend/pkg/store"
)

// ListEngineers lists the active engineers a gestor can assign.
func ListEngineers(w http.ResponseWriter, r *http.Request) {
	offset, limit := paginate(r)

	engineers, err := store.NewUserStore(config.DB).ListEngineers(offset, limit)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, engineers)
}

// GetEngineer returns one engineer profile.
func GetEngineer(w http.ResponseWriter, r *http.Request) {
	engineerID, err := pathID(r, "engineerId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	engineer, err := store.NewUserStore(config.DB).Get(engineerID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	if !engineer.IsEngenheiro() {
		apperr.Write(w, apperr.NotFound("user not found"))
		return
	}
	writeJSON(w, http.StatusOK, engineer)
}
