package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
)

type SubmissionStore struct {
	db *gorm.DB
	// blockInactiveSite rejects submissions against templates whose obra has
	// been deactivated. Off by default: eventual consistency of the active
	// flag is accepted, a submission racing a deactivation may land.
	blockInactiveSite bool
}

func NewSubmissionStore(db *gorm.DB, blockInactiveSite bool) *SubmissionStore {
	return &SubmissionStore{db: db, blockInactiveSite: blockInactiveSite}
}

type ResponseInput struct {
	TemplateItemID uint                   `json:"templateItemId" validate:"required"`
	Status         models.ChecklistStatus `json:"status" validate:"required"`
	Note           string                 `json:"note"`
	PhotoRef       string                 `json:"photoRef" validate:"max=500"`
}

type SubmissionInput struct {
	TemplateID uint            `json:"templateId" validate:"required"`
	Responses  []ResponseInput `json:"responses" validate:"dive"`
}

// CreateWithResponses inserts the submission and every response in one
// transaction. Responses may cover any subset of the template's items, and
// duplicates for one item are stored as given, but a response pointing at an
// item of a different template aborts the whole operation. SubmittedAt is
// assigned by the server.
func (s *SubmissionStore) CreateWithResponses(engineerID uint, in SubmissionInput) (*models.ChecklistSubmission, error) {
	submission := models.ChecklistSubmission{
		TemplateID: in.TemplateID,
		EngineerID: engineerID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if s.blockInactiveSite {
			var obra models.Obra
			err := tx.
				Joins("JOIN checklist_templates ON checklist_templates.obra_id = obras.id").
				Where("checklist_templates.id = ?", in.TemplateID).
				First(&obra).Error
			if err != nil {
				return err
			}
			if !obra.IsActive {
				return apperr.Validation("obra is deactivated")
			}
		}

		// membership check before any insert: every response must point at
		// an item of this template
		var itemIDs []uint
		err := tx.Model(&models.ChecklistTemplateItem{}).
			Where("template_id = ?", in.TemplateID).
			Pluck("id", &itemIDs).Error
		if err != nil {
			return err
		}
		valid := make(map[uint]bool, len(itemIDs))
		for _, id := range itemIDs {
			valid[id] = true
		}
		for _, resp := range in.Responses {
			if !resp.Status.Valid() {
				return apperr.Validation(fmt.Sprintf("unknown checklist status %q", resp.Status))
			}
			if !valid[resp.TemplateItemID] {
				return apperr.Validation(fmt.Sprintf("item %d does not belong to template %d", resp.TemplateItemID, in.TemplateID))
			}
		}

		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
		for _, resp := range in.Responses {
			row := models.ChecklistItemResponse{
				SubmissionID:   submission.ID,
				TemplateItemID: resp.TemplateItemID,
				Status:         resp.Status,
				Note:           resp.Note,
				PhotoRef:       resp.PhotoRef,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			submission.Responses = append(submission.Responses, row)
		}
		return nil
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, apperr.Upstream("failed to create submission", err)
	}
	if submission.Responses == nil {
		submission.Responses = []models.ChecklistItemResponse{}
	}
	return &submission, nil
}

// Get loads a submission with its responses.
func (s *SubmissionStore) Get(submissionID uint) (*models.ChecklistSubmission, error) {
	var submission models.ChecklistSubmission
	err := s.db.Preload("Responses").First(&submission, submissionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("submission not found")
		}
		return nil, apperr.Upstream("failed to load submission", err)
	}
	return &submission, nil
}

func (s *SubmissionStore) ListByEngineer(engineerID uint, offset, limit int) ([]models.ChecklistSubmission, error) {
	var submissions []models.ChecklistSubmission
	err := s.db.Preload("Responses").
		Where("engineer_id = ?", engineerID).
		Order("submitted_at DESC").
		Offset(offset).Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, apperr.Upstream("failed to list submissions", err)
	}
	return submissions, nil
}

func (s *SubmissionStore) ListByObra(obraID uint, offset, limit int) ([]models.ChecklistSubmission, error) {
	var submissions []models.ChecklistSubmission
	err := s.db.Preload("Responses").Preload("Engineer").
		Joins("JOIN checklist_templates ON checklist_templates.id = checklist_submissions.template_id").
		Where("checklist_templates.obra_id = ?", obraID).
		Order("checklist_submissions.submitted_at DESC").
		Offset(offset).Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, apperr.Upstream("failed to list obra submissions", err)
	}
	return submissions, nil
}
