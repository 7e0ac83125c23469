// Package store holds the persistence services. Every composite write runs
// inside one gorm transaction so a partial aggregate is never visible to
// concurrent readers; the transaction rolls back on any error before the
// error is surfaced.
package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
)

type ObraStore struct {
	db *gorm.DB
}

func NewObraStore(db *gorm.DB) *ObraStore {
	return &ObraStore{db: db}
}

type ObraInput struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description"`
	Address     string   `json:"address" validate:"max=500"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type ObraUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	Description *string  `json:"description"`
	Address     *string  `json:"address" validate:"omitempty,max=500"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	IsActive    *bool    `json:"isActive"`
}

// Create inserts a new obra owned by gestorID. The owner is fixed here for
// the lifetime of the row.
func (s *ObraStore) Create(gestorID uint, in ObraInput) (*models.Obra, error) {
	obra := models.Obra{
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		IsActive:    true,
		GestorID:    gestorID,
	}
	if err := s.db.Create(&obra).Error; err != nil {
		return nil, apperr.Upstream("failed to create obra", err)
	}
	return &obra, nil
}

// Update applies the non-nil fields of in. GestorID is not updatable.
func (s *ObraStore) Update(obra *models.Obra, in ObraUpdate) (*models.Obra, error) {
	if in.Name != nil {
		obra.Name = *in.Name
	}
	if in.Description != nil {
		obra.Description = *in.Description
	}
	if in.Address != nil {
		obra.Address = *in.Address
	}
	if in.Latitude != nil {
		obra.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		obra.Longitude = in.Longitude
	}
	if in.IsActive != nil {
		obra.IsActive = *in.IsActive
	}
	if err := s.db.Save(obra).Error; err != nil {
		return nil, apperr.Upstream("failed to update obra", err)
	}
	return obra, nil
}

// Deactivate flips the soft-active flag without removing any rows.
func (s *ObraStore) Deactivate(obra *models.Obra) error {
	obra.IsActive = false
	if err := s.db.Save(obra).Error; err != nil {
		return apperr.Upstream("failed to deactivate obra", err)
	}
	return nil
}

// Delete removes the obra row. Templates cascade through the schema.
func (s *ObraStore) Delete(obraID uint) error {
	if err := s.db.Delete(&models.Obra{}, obraID).Error; err != nil {
		return apperr.Upstream("failed to delete obra", err)
	}
	return nil
}

func (s *ObraStore) Get(obraID uint) (*models.Obra, error) {
	var obra models.Obra
	if err := s.db.First(&obra, obraID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("obra not found")
		}
		return nil, apperr.Upstream("failed to load obra", err)
	}
	return &obra, nil
}

func (s *ObraStore) ListByGestor(gestorID uint, offset, limit int) ([]models.Obra, error) {
	var obras []models.Obra
	err := s.db.Where("gestor_id = ?", gestorID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&obras).Error
	if err != nil {
		return nil, apperr.Upstream("failed to list obras", err)
	}
	return obras, nil
}

func (s *ObraStore) ListByEngineer(engineerID uint, offset, limit int) ([]models.Obra, error) {
	var obras []models.Obra
	err := s.db.
		Joins("JOIN obra_engineers ON obra_engineers.obra_id = obras.id").
		Where("obra_engineers.engineer_id = ?", engineerID).
		Order("obras.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&obras).Error
	if err != nil {
		return nil, apperr.Upstream("failed to list assigned obras", err)
	}
	return obras, nil
}
