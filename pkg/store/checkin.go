package store

import (
	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
)

type CheckInStore struct {
	db *gorm.DB
}

func NewCheckInStore(db *gorm.DB) *CheckInStore {
	return &CheckInStore{db: db}
}

// Create records an immutable check-in fact. The timestamp is assigned by
// the server; client-supplied times are ignored upstream.
func (s *CheckInStore) Create(engineerID, obraID uint, lat, lng float64) (*models.CheckIn, error) {
	checkin := models.CheckIn{
		EngineerID: engineerID,
		ObraID:     obraID,
		Latitude:   lat,
		Longitude:  lng,
	}
	if err := s.db.Create(&checkin).Error; err != nil {
		return nil, apperr.Upstream("failed to create check-in", err)
	}
	return &checkin, nil
}

func (s *CheckInStore) ListByEngineer(engineerID uint, offset, limit int) ([]models.CheckIn, error) {
	var checkins []models.CheckIn
	err := s.db.Preload("Obra").
		Where("engineer_id = ?", engineerID).
		Order("checkin_time DESC").
		Offset(offset).Limit(limit).
		Find(&checkins).Error
	if err != nil {
		return nil, apperr.Upstream("failed to list check-ins", err)
	}
	return checkins, nil
}

func (s *CheckInStore) ListByObra(obraID uint, offset, limit int) ([]models.CheckIn, error) {
	var checkins []models.CheckIn
	err := s.db.Preload("Engineer").
		Where("obra_id = ?", obraID).
		Order("checkin_time DESC").
		Offset(offset).Limit(limit).
		Find(&checkins).Error
	if err != nil {
		return nil, apperr.Upstream("failed to list obra check-ins", err)
	}
	return checkins, nil
}
