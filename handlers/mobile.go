// handlers/mobile.go — engineer-facing endpoints consumed by the field app.
package handlers

import (
	"io"
	"net/http"
	"sync"

	"github.com/obraseguro/backend/config"
	"github.com/obraseguro/backend/middleware"
	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
	"github.com/obraseguro/backend/pkg/authz"
	"github.com/obraseguro/backend/pkg/storage"
	"github.com/obraseguro/backend/pkg/store"
	"github.com/obraseguro/backend/utils"
)

// ListMyObras lists the obras the calling engineer is assigned to.
func ListMyObras(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	offset, limit := paginate(r)

	obras, err := store.NewObraStore(config.DB).ListByEngineer(user.ID, offset, limit)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, obras)
}

// GetMyObra returns one assigned obra.
func GetMyObra(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveAssignedObra(user, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, obra)
}

type checkinRequest struct {
	ObraID    uint    `json:"obraId" validate:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type checkinResponse struct {
	*models.CheckIn
	// DistanceFromObraM annotates how far the fix is from the obra's
	// geocoded location, when known. Informational, never blocking.
	DistanceFromObraM *float64 `json:"distanceFromObraM,omitempty"`
}

// CreateCheckin records a GPS-stamped presence fact on an assigned obra.
// The timestamp is server-assigned.
func CreateCheckin(w http.ResponseWriter, r *http.Request) {
	var req checkinRequest
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	if err := utils.ValidateLatLng(req.Latitude, req.Longitude); err != nil {
		apperr.Write(w, apperr.Validation(err.Error()))
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveAssignedObra(user, req.ObraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	checkin, err := store.NewCheckInStore(config.DB).Create(user.ID, obra.ID, req.Latitude, req.Longitude)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, checkinResponse{
		CheckIn:           checkin,
		DistanceFromObraM: utils.DistanceFromObra(obra, req.Latitude, req.Longitude),
	})
}

// ListMyCheckins lists the calling engineer's check-ins, newest first.
func ListMyCheckins(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	offset, limit := paginate(r)

	checkins, err := store.NewCheckInStore(config.DB).ListByEngineer(user.ID, offset, limit)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkins)
}

// ListMyObraTemplates lists the checklist templates of an assigned obra.
func ListMyObraTemplates(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	obra, err := authz.NewResolver(config.DB).ResolveAssignedObra(user, obraID)
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

// SubmitChecklist stores a filled checklist. The template chain is resolved
// before the write; the submission and all responses land atomically.
func SubmitChecklist(w http.ResponseWriter, r *http.Request) {
	var req store.SubmissionInput
	if err := decodeJSON(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	template, err := authz.NewResolver(config.DB).ResolveSubmittableTemplate(user, req.TemplateID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	req.TemplateID = template.ID

	submission, err := store.NewSubmissionStore(config.DB, config.BlockInactiveSiteSubmissions()).
		CreateWithResponses(user.ID, req)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submission)
}

// ListMySubmissions lists the calling engineer's submissions, newest first.
func ListMySubmissions(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	offset, limit := paginate(r)

	submissions, err := store.NewSubmissionStore(config.DB, config.BlockInactiveSiteSubmissions()).
		ListByEngineer(user.ID, offset, limit)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

var (
	photoStoreOnce sync.Once
	photoStore     storage.Store
	photoStoreErr  error
)

func getPhotoStore(r *http.Request) (storage.Store, error) {
	photoStoreOnce.Do(func() {
		photoStore, photoStoreErr = storage.FromEnv(r.Context())
	})
	return photoStore, photoStoreErr
}

// UploadPhoto stores a checklist evidence photo and returns the reference to
// embed in a response, plus a retrievable URL.
func UploadPhoto(w http.ResponseWriter, r *http.Request) {
	st, err := getPhotoStore(r)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		apperr.Write(w, apperr.Validation("bad multipart form"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		apperr.Write(w, apperr.Validation("missing file field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		apperr.Write(w, apperr.Upstream("failed to read upload", err))
		return
	}

	ref, err := st.Store(r.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"photoRef": ref,
		"url":      st.ResolveURL(ref),
	})
}
