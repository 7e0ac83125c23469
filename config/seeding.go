package config

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
)

// SeedAdminGestor creates the initial gestor account from SEED_ADMIN_EMAIL /
// SEED_ADMIN_PASSWORD. Skips silently when the env vars are unset or the
// account already exists.
func SeedAdminGestor(db *gorm.DB) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("Seed gestor %s already exists, skipping", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Administrador SST",
		Role:         models.RoleGestor,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Seed gestor created: %s (id=%d)", email, admin.ID)
	return nil
}
