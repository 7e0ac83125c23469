// Package testutil provides the in-memory database used by service tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/obraseguro/backend/models"
)

// NewTestDB opens a fresh in-memory sqlite database with the full schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Obra{},
		&models.ObraEngineer{},
		&models.ChecklistTemplate{},
		&models.ChecklistTemplateItem{},
		&models.CheckIn{},
		&models.ChecklistSubmission{},
		&models.ChecklistItemResponse{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// Gestor inserts and returns an active gestor user.
func Gestor(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x", FullName: "Gestor " + email, Role: models.RoleGestor, IsActive: true}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create gestor: %v", err)
	}
	return u
}

// Engineer inserts and returns an active engineer user.
func Engineer(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x", FullName: "Engenheiro " + email, Role: models.RoleEngenheiro, IsActive: true}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create engineer: %v", err)
	}
	return u
}

// Obra inserts and returns an active obra owned by gestorID.
func Obra(t *testing.T, db *gorm.DB, gestorID uint, name string) *models.Obra {
	t.Helper()
	o := &models.Obra{Name: name, GestorID: gestorID, IsActive: true}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("create obra: %v", err)
	}
	return o
}

// Assign links an engineer to an obra directly.
func Assign(t *testing.T, db *gorm.DB, obraID, engineerID uint) *models.ObraEngineer {
	t.Helper()
	a := &models.ObraEngineer{ObraID: obraID, EngineerID: engineerID}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	return a
}
