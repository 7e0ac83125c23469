package report

import (
	"time"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
)

const (
	ActivityCheckin   = "checkin"
	ActivityChecklist = "checklist"
)

type Activity struct {
	Tipo        string    `json:"tipo"`
	Titulo      string    `json:"titulo"`
	Descricao   string    `json:"descricao"`
	Timestamp   time.Time `json:"timestamp"`
	ObraNome    string    `json:"obra_nome"`
	UsuarioNome string    `json:"usuario_nome"`
}

// RecentActivity merges the gestor's check-in and submission streams into one
// reverse-chronological feed of at most limit entries. Each source query is
// already ordered and bounded by limit, so a two-way merge suffices; on an
// exact timestamp tie the check-in goes first.
func (a *Aggregator) RecentActivity(gestorID uint, limit int) ([]Activity, error) {
	if limit <= 0 {
		return []Activity{}, nil
	}

	var checkins []models.CheckIn
	err := a.db.Preload("Obra").Preload("Engineer").
		Joins("JOIN obras ON obras.id = check_ins.obra_id").
		Where("obras.gestor_id = ?", gestorID).
		Order("check_ins.checkin_time DESC").
		Limit(limit).
		Find(&checkins).Error
	if err != nil {
		return nil, apperr.Upstream("failed to load recent check-ins", err)
	}

	var submissions []models.ChecklistSubmission
	err = a.db.Preload("Engineer").Preload("Template.Obra").
		Joins("JOIN checklist_templates ON checklist_templates.id = checklist_submissions.template_id").
		Joins("JOIN obras ON obras.id = checklist_templates.obra_id").
		Where("obras.gestor_id = ?", gestorID).
		Order("checklist_submissions.submitted_at DESC").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, apperr.Upstream("failed to load recent submissions", err)
	}

	left := make([]Activity, 0, len(checkins))
	for _, c := range checkins {
		left = append(left, checkinActivity(c))
	}
	right := make([]Activity, 0, len(submissions))
	for _, s := range submissions {
		right = append(right, submissionActivity(s))
	}

	return mergeDesc(left, right, limit), nil
}

// mergeDesc merges two timestamp-descending slices, keeping descending order
// and truncating to limit. Left wins ties.
func mergeDesc(left, right []Activity, limit int) []Activity {
	merged := make([]Activity, 0, min(len(left)+len(right), limit))
	i, j := 0, 0
	for len(merged) < limit && (i < len(left) || j < len(right)) {
		switch {
		case i >= len(left):
			merged = append(merged, right[j])
			j++
		case j >= len(right):
			merged = append(merged, left[i])
			i++
		case right[j].Timestamp.After(left[i].Timestamp):
			merged = append(merged, right[j])
			j++
		default:
			merged = append(merged, left[i])
			i++
		}
	}
	return merged
}

func checkinActivity(c models.CheckIn) Activity {
	var obraNome, engName string
	if c.Obra != nil {
		obraNome = c.Obra.Name
	}
	if c.Engineer != nil {
		engName = c.Engineer.FullName
	}
	return Activity{
		Tipo:        ActivityCheckin,
		Titulo:      "Check-in Realizado",
		Descricao:   obraNome + " - " + engName,
		Timestamp:   c.CheckinTime,
		ObraNome:    obraNome,
		UsuarioNome: engName,
	}
}

func submissionActivity(s models.ChecklistSubmission) Activity {
	var obraNome, engName string
	if s.Template != nil && s.Template.Obra != nil {
		obraNome = s.Template.Obra.Name
	}
	if s.Engineer != nil {
		engName = s.Engineer.FullName
	}
	return Activity{
		Tipo:        ActivityChecklist,
		Titulo:      "Checklist Completo",
		Descricao:   obraNome + " - " + engName,
		Timestamp:   s.SubmittedAt,
		ObraNome:    obraNome,
		UsuarioNome: engName,
	}
}
