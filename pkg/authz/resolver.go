// Package authz resolves the ownership chain (gestor → obra →
// template/assignment) that every handler must walk before touching data.
// A missing link in the chain is reported as not-found; a link that exists
// but does not belong to the principal is forbidden. The two are never
// conflated, except that a foreign obra id deliberately reads as not-found
// so one gestor cannot probe another's portfolio.
package authz

import (
	"errors"

	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
)

type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// CanManageSite reports whether user is the gestor that owns obra.
func (r *Resolver) CanManageSite(user *models.User, obra *models.Obra) bool {
	return user.IsGestor() && obra.GestorID == user.ID
}

// CanActOnSiteAsEngineer reports whether user is an engineer assigned to obra.
func (r *Resolver) CanActOnSiteAsEngineer(user *models.User, obra *models.Obra) (bool, error) {
	if !user.IsEngenheiro() {
		return false, nil
	}
	var n int64
	err := r.db.Model(&models.ObraEngineer{}).
		Where("obra_id = ? AND engineer_id = ?", obra.ID, user.ID).
		Count(&n).Error
	if err != nil {
		return false, apperr.Upstream("failed to check assignment", err)
	}
	return n > 0, nil
}

// CanManageTemplate delegates to CanManageSite on the template's parent obra.
func (r *Resolver) CanManageTemplate(user *models.User, template *models.ChecklistTemplate) (bool, error) {
	obra, err := r.lookupObra(template.ObraID)
	if err != nil {
		return false, err
	}
	return r.CanManageSite(user, obra), nil
}

// CanSubmitAgainstTemplate delegates to CanActOnSiteAsEngineer on the
// template's parent obra.
func (r *Resolver) CanSubmitAgainstTemplate(user *models.User, template *models.ChecklistTemplate) (bool, error) {
	obra, err := r.lookupObra(template.ObraID)
	if err != nil {
		return false, err
	}
	return r.CanActOnSiteAsEngineer(user, obra)
}

// ResolveOwnedObra loads the obra and verifies user owns it. An unknown id
// and another gestor's id both come back as not-found.
func (r *Resolver) ResolveOwnedObra(user *models.User, obraID uint) (*models.Obra, error) {
	obra, err := r.lookupObra(obraID)
	if err != nil {
		return nil, err
	}
	if !r.CanManageSite(user, obra) {
		return nil, apperr.NotFound("obra not found")
	}
	return obra, nil
}

// ResolveAssignedObra loads the obra and verifies user is assigned to it.
// Existence of the obra is acknowledged (forbidden, not not-found): an
// engineer learns nothing sensitive from an obra id existing.
func (r *Resolver) ResolveAssignedObra(user *models.User, obraID uint) (*models.Obra, error) {
	obra, err := r.lookupObra(obraID)
	if err != nil {
		return nil, err
	}
	ok, err := r.CanActOnSiteAsEngineer(user, obra)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("not assigned to this obra")
	}
	return obra, nil
}

// ResolveManagedTemplate walks template → obra → gestor in one pass.
func (r *Resolver) ResolveManagedTemplate(user *models.User, templateID uint) (*models.ChecklistTemplate, error) {
	template, err := r.lookupTemplate(templateID)
	if err != nil {
		return nil, err
	}
	if _, err := r.ResolveOwnedObra(user, template.ObraID); err != nil {
		// a foreign template reads as not-found, same as a missing one
		return nil, apperr.NotFound("checklist template not found")
	}
	return template, nil
}

// ResolveSubmittableTemplate walks template → obra → assignment in one pass.
func (r *Resolver) ResolveSubmittableTemplate(user *models.User, templateID uint) (*models.ChecklistTemplate, error) {
	template, err := r.lookupTemplate(templateID)
	if err != nil {
		return nil, err
	}
	ok, err := r.CanSubmitAgainstTemplate(user, template)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("not authorized for this checklist")
	}
	return template, nil
}

func (r *Resolver) lookupObra(id uint) (*models.Obra, error) {
	var obra models.Obra
	if err := r.db.First(&obra, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("obra not found")
		}
		return nil, apperr.Upstream("failed to load obra", err)
	}
	return &obra, nil
}

func (r *Resolver) lookupTemplate(id uint) (*models.ChecklistTemplate, error) {
	var template models.ChecklistTemplate
	if err := r.db.First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("checklist template not found")
		}
		return nil, apperr.Upstream("failed to load checklist template", err)
	}
	return &template, nil
}
