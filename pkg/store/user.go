package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Upstream("failed to load user", err)
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Upstream("failed to load user", err)
	}
	return &user, nil
}

// ListEngineers returns active engineers, for the gestor's assignment UI.
func (s *UserStore) ListEngineers(offset, limit int) ([]models.User, error) {
	var engineers []models.User
	err := s.db.
		Where("role = ? AND is_active = ?", models.RoleEngenheiro, true).
		Order("full_name").
		Offset(offset).Limit(limit).
		Find(&engineers).Error
	if err != nil {
		return nil, apperr.Upstream("failed to list engineers", err)
	}
	return engineers, nil
}
