package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
)

type AssignmentStore struct {
	db *gorm.DB
}

func NewAssignmentStore(db *gorm.DB) *AssignmentStore {
	return &AssignmentStore{db: db}
}

// Grant links an engineer to an obra. Idempotent: an existing link is
// returned unchanged, and a duplicate-key conflict from a concurrent grant
// is absorbed by re-reading the winning row. The (obra, engineer) pair is
// unique at the database level, so two rows can never exist.
func (s *AssignmentStore) Grant(obraID, engineerID uint) (*models.ObraEngineer, error) {
	var existing models.ObraEngineer
	err := s.db.Where("obra_id = ? AND engineer_id = ?", obraID, engineerID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Upstream("failed to check assignment", err)
	}

	link := models.ObraEngineer{ObraID: obraID, EngineerID: engineerID}
	err = s.db.Create(&link).Error
	if err == nil {
		return &link, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost the race; the other caller's row is the one
		if err := s.db.Where("obra_id = ? AND engineer_id = ?", obraID, engineerID).First(&existing).Error; err != nil {
			return nil, apperr.Upstream("failed to load assignment after conflict", err)
		}
		return &existing, nil
	}
	return nil, apperr.Upstream("failed to create assignment", err)
}

// Revoke removes the link if present and reports whether anything was
// removed. Revoking an absent link is not an error.
func (s *AssignmentStore) Revoke(obraID, engineerID uint) (bool, error) {
	res := s.db.Where("obra_id = ? AND engineer_id = ?", obraID, engineerID).Delete(&models.ObraEngineer{})
	if res.Error != nil {
		return false, apperr.Upstream("failed to revoke assignment", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListEngineers returns the engineers assigned to an obra.
func (s *AssignmentStore) ListEngineers(obraID uint) ([]models.User, error) {
	var engineers []models.User
	err := s.db.
		Joins("JOIN obra_engineers ON obra_engineers.engineer_id = users.id").
		Where("obra_engineers.obra_id = ?", obraID).
		Order("users.full_name").
		Find(&engineers).Error
	if err != nil {
		return nil, apperr.Upstream("failed to list obra engineers", err)
	}
	return engineers, nil
}
