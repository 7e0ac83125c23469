// models/checklist.go
package models

import (
	"time"
)

// ChecklistStatus is the closed set of per-item inspection outcomes.
// Aggregation switches over the full set; there is no "other" bucket.
type ChecklistStatus string

const (
	StatusPendente     ChecklistStatus = "pendente"
	StatusConforme     ChecklistStatus = "conforme"
	StatusNaoConforme  ChecklistStatus = "nao_conforme"
	StatusNaoAplicavel ChecklistStatus = "nao_aplicavel"
)

// AllStatuses lists every valid status, in reporting order.
var AllStatuses = []ChecklistStatus{
	StatusPendente,
	StatusConforme,
	StatusNaoConforme,
	StatusNaoAplicavel,
}

func (s ChecklistStatus) Valid() bool {
	switch s {
	case StatusPendente, StatusConforme, StatusNaoConforme, StatusNaoAplicavel:
		return true
	}
	return false
}

// ChecklistTemplate defines one inspection checklist for one obra. Items are
// owned exclusively by the template: they are created with it and removed
// with it, never on their own.
type ChecklistTemplate struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ObraID      uint   `gorm:"not null;index" json:"obraId"`
	Obra        *Obra  `gorm:"foreignKey:ObraID" json:"obra,omitempty"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	Items []ChecklistTemplateItem `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ChecklistTemplateItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TemplateID  uint   `gorm:"not null;index" json:"templateId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	OrderIndex  int    `gorm:"not null;default:0" json:"order"`

	CreatedAt time.Time `json:"createdAt"`
}

// ChecklistSubmission is one engineer's filled instance of a template,
// immutable after creation. SubmittedAt is server-assigned.
type ChecklistSubmission struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	TemplateID uint               `gorm:"not null;index" json:"templateId"`
	Template   *ChecklistTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	EngineerID uint               `gorm:"not null;index" json:"engineerId"`
	Engineer   *User              `gorm:"foreignKey:EngineerID" json:"engineer,omitempty"`

	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submittedAt"`

	Responses []ChecklistItemResponse `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"responses"`
}

// ChecklistItemResponse records the status and evidence for one template item
// within one submission. TemplateItemID is a display join, not ownership.
type ChecklistItemResponse struct {
	ID             uint                   `gorm:"primaryKey" json:"id"`
	SubmissionID   uint                   `gorm:"not null;index" json:"submissionId"`
	TemplateItemID uint                   `gorm:"not null;index" json:"templateItemId"`
	TemplateItem   *ChecklistTemplateItem `gorm:"foreignKey:TemplateItemID" json:"templateItem,omitempty"`
	Status         ChecklistStatus        `gorm:"size:20;not null" json:"status"`
	Note           string                 `gorm:"type:text" json:"note,omitempty"`
	PhotoRef       string                 `gorm:"size:500" json:"photoRef,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
