// Package report computes derived compliance views over stored rows. Nothing
// here is cached or denormalized; every statistic is recomputed at read time.
package report

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
)

type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// ConformidadeStats buckets item responses by status over a time window.
// The counts always satisfy conforme + nao_conforme + pendente +
// nao_aplicavel = total.
type ConformidadeStats struct {
	Conforme     int64 `json:"conforme"`
	NaoConforme  int64 `json:"nao_conforme"`
	Pendente     int64 `json:"pendente"`
	NaoAplicavel int64 `json:"nao_aplicavel"`
	Total        int64 `json:"total"`

	PercentualConforme    float64 `json:"percentual_conforme"`
	PercentualNaoConforme float64 `json:"percentual_nao_conforme"`
	PercentualPendente    float64 `json:"percentual_pendente"`
}

type statusCount struct {
	Status models.ChecklistStatus
	Count  int64
}

// PortfolioStats buckets every item response reachable through the gestor's
// obras, filtered to submissions within the last windowDays. Zero matching
// rows yields zero counts and 0.0 percentages, never a division error.
func (a *Aggregator) PortfolioStats(gestorID uint, windowDays int) (*ConformidadeStats, error) {
	cutoff := time.Now().AddDate(0, 0, -windowDays)

	var rows []statusCount
	err := a.db.Model(&models.ChecklistItemResponse{}).
		Select("checklist_item_responses.status AS status, COUNT(checklist_item_responses.id) AS count").
		Joins("JOIN checklist_submissions ON checklist_submissions.id = checklist_item_responses.submission_id").
		Joins("JOIN checklist_templates ON checklist_templates.id = checklist_submissions.template_id").
		Joins("JOIN obras ON obras.id = checklist_templates.obra_id").
		Where("obras.gestor_id = ? AND checklist_submissions.submitted_at >= ?", gestorID, cutoff).
		Group("checklist_item_responses.status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Upstream("failed to aggregate conformidade", err)
	}

	stats := &ConformidadeStats{}
	for _, row := range rows {
		// exhaustive over the closed status set; the status column only
		// admits these four values
		switch row.Status {
		case models.StatusConforme:
			stats.Conforme = row.Count
		case models.StatusNaoConforme:
			stats.NaoConforme = row.Count
		case models.StatusPendente:
			stats.Pendente = row.Count
		case models.StatusNaoAplicavel:
			stats.NaoAplicavel = row.Count
		default:
			continue
		}
		stats.Total += row.Count
	}

	if stats.Total > 0 {
		stats.PercentualConforme = round1(float64(stats.Conforme) / float64(stats.Total) * 100)
		stats.PercentualNaoConforme = round1(float64(stats.NaoConforme) / float64(stats.Total) * 100)
		stats.PercentualPendente = round1(float64(stats.Pendente) / float64(stats.Total) * 100)
	}
	return stats, nil
}

// ObraStats summarizes one obra, all-time.
type ObraStats struct {
	ObraID                  uint       `json:"obra_id"`
	ObraNome                string     `json:"obra_nome"`
	TotalCheckins           int64      `json:"total_checkins"`
	TotalChecklists         int64      `json:"total_checklists"`
	ConformidadeRate        float64    `json:"conformidade_rate"`
	UltimoCheckin           *time.Time `json:"ultimo_checkin"`
	UltimoCheckinEngenheiro string     `json:"ultimo_checkin_engenheiro,omitempty"`
}

// SiteStats summarizes one obra for its gestor. Ownership is re-checked
// here, not assumed from an earlier call; a foreign or missing obra id is
// not-found either way.
func (a *Aggregator) SiteStats(gestorID, obraID uint) (*ObraStats, error) {
	var obra models.Obra
	err := a.db.Where("id = ? AND gestor_id = ?", obraID, gestorID).First(&obra).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("obra not found")
		}
		return nil, apperr.Upstream("failed to load obra", err)
	}

	stats := &ObraStats{ObraID: obra.ID, ObraNome: obra.Name}

	if err := a.db.Model(&models.CheckIn{}).Where("obra_id = ?", obraID).Count(&stats.TotalCheckins).Error; err != nil {
		return nil, apperr.Upstream("failed to count check-ins", err)
	}

	err = a.db.Model(&models.ChecklistSubmission{}).
		Joins("JOIN checklist_templates ON checklist_templates.id = checklist_submissions.template_id").
		Where("checklist_templates.obra_id = ?", obraID).
		Count(&stats.TotalChecklists).Error
	if err != nil {
		return nil, apperr.Upstream("failed to count submissions", err)
	}

	var rows []statusCount
	err = a.db.Model(&models.ChecklistItemResponse{}).
		Select("checklist_item_responses.status AS status, COUNT(checklist_item_responses.id) AS count").
		Joins("JOIN checklist_submissions ON checklist_submissions.id = checklist_item_responses.submission_id").
		Joins("JOIN checklist_templates ON checklist_templates.id = checklist_submissions.template_id").
		Where("checklist_templates.obra_id = ?", obraID).
		Group("checklist_item_responses.status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Upstream("failed to aggregate obra conformidade", err)
	}

	var conforme, total int64
	for _, row := range rows {
		if !row.Status.Valid() {
			continue
		}
		if row.Status == models.StatusConforme {
			conforme = row.Count
		}
		total += row.Count
	}
	if total > 0 {
		stats.ConformidadeRate = round1(float64(conforme) / float64(total) * 100)
	}

	var last models.CheckIn
	err = a.db.Preload("Engineer").
		Where("obra_id = ?", obraID).
		Order("checkin_time DESC").
		First(&last).Error
	if err == nil {
		stats.UltimoCheckin = &last.CheckinTime
		if last.Engineer != nil {
			stats.UltimoCheckinEngenheiro = last.Engineer.FullName
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Upstream("failed to load last check-in", err)
	}

	return stats, nil
}

// DashboardCounts is the gestor landing-page summary.
type DashboardCounts struct {
	TotalObrasAtivas int64 `json:"total_obras_ativas"`
	TotalEngenheiros int64 `json:"total_engenheiros"`
	CheckinsHoje     int64 `json:"checkins_hoje"`
	ChecklistsHoje   int64 `json:"checklists_hoje"`
}

func (a *Aggregator) DashboardCounts(gestorID uint) (*DashboardCounts, error) {
	counts := &DashboardCounts{}

	err := a.db.Model(&models.Obra{}).
		Where("gestor_id = ? AND is_active = ?", gestorID, true).
		Count(&counts.TotalObrasAtivas).Error
	if err != nil {
		return nil, apperr.Upstream("failed to count obras", err)
	}

	err = a.db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleEngenheiro, true).
		Count(&counts.TotalEngenheiros).Error
	if err != nil {
		return nil, apperr.Upstream("failed to count engineers", err)
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	err = a.db.Model(&models.CheckIn{}).
		Joins("JOIN obras ON obras.id = check_ins.obra_id").
		Where("obras.gestor_id = ? AND check_ins.checkin_time >= ?", gestorID, todayStart).
		Count(&counts.CheckinsHoje).Error
	if err != nil {
		return nil, apperr.Upstream("failed to count today's check-ins", err)
	}

	err = a.db.Model(&models.ChecklistSubmission{}).
		Joins("JOIN checklist_templates ON checklist_templates.id = checklist_submissions.template_id").
		Joins("JOIN obras ON obras.id = checklist_templates.obra_id").
		Where("obras.gestor_id = ? AND checklist_submissions.submitted_at >= ?", gestorID, todayStart).
		Count(&counts.ChecklistsHoje).Error
	if err != nil {
		return nil, apperr.Upstream("failed to count today's submissions", err)
	}

	return counts, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
