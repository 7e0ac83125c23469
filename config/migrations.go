package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250812_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{},
					&models.Obra{},
					&models.ObraEngineer{},
					&models.ChecklistTemplate{},
					&models.ChecklistTemplateItem{},
					&models.CheckIn{},
					&models.ChecklistSubmission{},
					&models.ChecklistItemResponse{},
				)
			},
		},
	})
	return m.Migrate()
}
