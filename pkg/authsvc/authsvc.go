// Package authsvc implements the authenticate capability: credentials in,
// principal or nothing out. Token issue/validate lives in middleware.
package authsvc

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type RegisterInput struct {
	Email    string          `json:"email" validate:"required,email,max=255"`
	Password string          `json:"password" validate:"required,min=6,max=72"`
	FullName string          `json:"fullName" validate:"required,max=255"`
	Role     models.UserRole `json:"role" validate:"required"`
}

// Register creates a new active user. A taken email is a conflict.
func (s *Service) Register(in RegisterInput) (*models.User, error) {
	if !in.Role.Valid() {
		return nil, apperr.Validation("role must be gestor or engenheiro")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Upstream("failed to hash password", err)
	}

	user := models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Upstream("failed to create user", err)
	}
	return &user, nil
}

// Authenticate returns the principal for valid, active credentials and
// (nil, nil) otherwise. Wrong email and wrong password are indistinguishable
// to the caller; only collaborator failures surface as errors.
func (s *Service) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Upstream("failed to load user", err)
	}
	if !user.IsActive {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return &user, nil
}
