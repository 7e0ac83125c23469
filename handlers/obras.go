// handlers/obras.go — gestor-facing obra management. Every handler resolves
// the full ownership chain through the authz resolver before the first read
// or write.
package handlers

import (
	"net/http"

	"github.com/obraseguro/backend/config"
	"github.com/obraseguro/backend/middleware"
	"github.com/obraseguro/backend/pkg/apperr"
	"github.com/obraseguro/backend/pkg/authz"
	"github.com/obraseguro/backend/pkg/store"
)

// CreateObra creates a new obra owned by the calling gestor.
func CreateObra(w http.ResponseWriter, r *http.Request) {
	var req store.ObraInput
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := store.NewObraStore(config.DB).Create(user.ID, req)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, obra)
}

// ListObras lists the calling gestor's obras.
func ListObras(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	offset, limit := paginate(r)

	obras, err := store.NewObraStore(config.DB).ListByGestor(user.ID, offset, limit)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, obras)
}

// GetObra returns one owned obra with its assigned engineers.
func GetObra(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveOwnedObra(user, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	engineers, err := store.NewAssignmentStore(config.DB).ListEngineers(obra.ID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"obra":      obra,
		"engineers": engineers,
	})
}

// UpdateObra applies a partial update to an owned obra. The owner itself is
// immutable.
func UpdateObra(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	var req store.ObraUpdate
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveOwnedObra(user, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	updated, err := store.NewObraStore(config.DB).Update(obra, req)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeactivateObra soft-deactivates an owned obra.
func DeactivateObra(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveOwnedObra(user, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	if err := store.NewObraStore(config.DB).Deactivate(obra); err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, obra)
}

// DeleteObra removes an owned obra outright.
func DeleteObra(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveOwnedObra(user, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	if err := store.NewObraStore(config.DB).Delete(obra.ID); err != nil {
		apperr.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addEngineerRequest struct {
	EngineerID uint `json:"engineerId" validate:"required"`
}

// AddEngineer grants an engineer access to an owned obra. Granting an
// existing assignment returns the existing row.
func AddEngineer(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	var req addEngineerRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveOwnedObra(user, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	engineer, err := store.NewUserStore(config.DB).Get(req.EngineerID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	if !engineer.IsEngenheiro() {
		apperr.Write(w, apperr.Validation("user is not an engenheiro"))
		return
	}

	link, err := store.NewAssignmentStore(config.DB).Grant(obra.ID, engineer.ID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// RemoveEngineer revokes an engineer's access to an owned obra.
func RemoveEngineer(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	engineerID, err := pathID(r, "engineerId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveOwnedObra(user, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	removed, err := store.NewAssignmentStore(config.DB).Revoke(obra.ID, engineerID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	if !removed {
		apperr.Write(w, apperr.NotFound("engineer not assigned to this obra"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListObraEngineers lists the engineers assigned to an owned obra.
func ListObraEngineers(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveOwnedObra(user, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	engineers, err := store.NewAssignmentStore(config.DB).ListEngineers(obra.ID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, engineers)
}

// CreateChecklistTemplate creates a template with its items on an owned obra.
func CreateChecklistTemplate(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	var req store.TemplateInput
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveOwnedObra(user, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	template, err := store.NewTemplateStore(config.DB).CreateWithItems(obra.ID, req)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, template)
}

// ListChecklistTemplates lists an owned obra's templates with their items.
func ListChecklistTemplates(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveOwnedObra(user, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	offset, limit := paginate(r)
	templates, err := store.NewTemplateStore(config.DB).ListByObra(obra.ID, offset, limit)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// DeleteChecklistTemplate removes a template; its items cascade with it.
func DeleteChecklistTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, err := pathID(r, "templateId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	template, err := authz.NewResolver(config.DB).ResolveManagedTemplate(user, templateID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	if err := store.NewTemplateStore(config.DB).Delete(template.ID); err != nil {
		apperr.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListObraCheckins lists all check-ins on an owned obra.
func ListObraCheckins(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveOwnedObra(user, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	offset, limit := paginate(r)
	checkins, err := store.NewCheckInStore(config.DB).ListByObra(obra.ID, offset, limit)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkins)
}

// ListObraSubmissions lists all checklist submissions on an owned obra.
func ListObraSubmissions(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveOwnedObra(user, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	offset, limit := paginate(r)
	submissions, err := store.NewSubmissionStore(config.DB, config.BlockInactiveSiteSubmissions()).ListByObra(obra.ID, offset, limit)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}
