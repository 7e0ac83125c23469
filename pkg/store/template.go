package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
)

type TemplateStore struct {
	db *gorm.DB
}

func NewTemplateStore(db *gorm.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

type TemplateItemInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Order       int    `json:"order" validate:"gte=0"`
}

type TemplateInput struct {
	Name        string              `json:"name" validate:"required,max=255"`
	Description string              `json:"description"`
	Items       []TemplateItemInput `json:"items" validate:"dive"`
}

// CreateWithItems inserts the template and all its items in one transaction.
// Input order is the stored order; an empty item list is legal. If any item
// insert fails the template row rolls back with it.
func (s *TemplateStore) CreateWithItems(obraID uint, in TemplateInput) (*models.ChecklistTemplate, error) {
	template := models.ChecklistTemplate{
		ObraID:      obraID,
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&template).Error; err != nil {
			return err
		}
		for _, item := range in.Items {
			row := models.ChecklistTemplateItem{
				TemplateID:  template.ID,
				Title:       item.Title,
				Description: item.Description,
				OrderIndex:  item.Order,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			template.Items = append(template.Items, row)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Upstream("failed to create checklist template", err)
	}
	if template.Items == nil {
		template.Items = []models.ChecklistTemplateItem{}
	}
	return &template, nil
}

// Get loads a template with its items in stored order.
func (s *TemplateStore) Get(templateID uint) (*models.ChecklistTemplate, error) {
	var template models.ChecklistTemplate
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_index") }).
		First(&template, templateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("checklist template not found")
		}
		return nil, apperr.Upstream("failed to load checklist template", err)
	}
	return &template, nil
}

// ListByObra returns the obra's templates with items in stored order.
func (s *TemplateStore) ListByObra(obraID uint, offset, limit int) ([]models.ChecklistTemplate, error) {
	var templates []models.ChecklistTemplate
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_index") }).
		Where("obra_id = ?", obraID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&templates).Error
	if err != nil {
		return nil, apperr.Upstream("failed to list checklist templates", err)
	}
	return templates, nil
}

// Delete removes the template; items and responses cascade.
func (s *TemplateStore) Delete(templateID uint) error {
	if err := s.db.Delete(&models.ChecklistTemplate{}, templateID).Error; err != nil {
		return apperr.Upstream("failed to delete checklist template", err)
	}
	return nil
}
