package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
	"github.com/obraseguro/backend/pkg/testutil"
)

func seedTemplate(t *testing.T, db *gorm.DB, obraID uint, itemTitles ...string) *models.ChecklistTemplate {
	t.Helper()
	tpl := &models.ChecklistTemplate{ObraID: obraID, Name: "Inspeção", IsActive: true}
	require.NoError(t, db.Create(tpl).Error)
	for i, title := range itemTitles {
		item := models.ChecklistTemplateItem{TemplateID: tpl.ID, Title: title, OrderIndex: i}
		require.NoError(t, db.Create(&item).Error)
		tpl.Items = append(tpl.Items, item)
	}
	return tpl
}

func seedSubmission(t *testing.T, db *gorm.DB, tpl *models.ChecklistTemplate, engineerID uint, at time.Time, statuses ...models.ChecklistStatus) *models.ChecklistSubmission {
	t.Helper()
	sub := &models.ChecklistSubmission{TemplateID: tpl.ID, EngineerID: engineerID}
	require.NoError(t, db.Create(sub).Error)
	require.NoError(t, db.Model(sub).Update("submitted_at", at).Error)
	for i, status := range statuses {
		resp := models.ChecklistItemResponse{
			SubmissionID:   sub.ID,
			TemplateItemID: tpl.Items[i%len(tpl.Items)].ID,
			Status:         status,
		}
		require.NoError(t, db.Create(&resp).Error)
	}
	return sub
}

func TestPortfolioStatsZeroTotal(t *testing.T) {
	db := testutil.NewTestDB(t)
	gestor := testutil.Gestor(t, db, "g@example.com")

	stats, err := NewAggregator(db).PortfolioStats(gestor.ID, 30)
	require.NoError(t, err)

	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Conforme)
	assert.Zero(t, stats.NaoConforme)
	assert.Zero(t, stats.Pendente)
	assert.Zero(t, stats.NaoAplicavel)
	assert.Equal(t, 0.0, stats.PercentualConforme)
	assert.Equal(t, 0.0, stats.PercentualNaoConforme)
	assert.Equal(t, 0.0, stats.PercentualPendente)
}

func TestPortfolioStatsBucketsAndPercentages(t *testing.T) {
	db := testutil.NewTestDB(t)
	gestor := testutil.Gestor(t, db, "g@example.com")
	engineer := testutil.Engineer(t, db, "e@example.com")
	obra := testutil.Obra(t, db, gestor.ID, "Obra A")
	tpl := seedTemplate(t, db, obra.ID, "Extintores", "Sinalização", "EPIs")

	seedSubmission(t, db, tpl, engineer.ID, time.Now(),
		models.StatusConforme, models.StatusConforme, models.StatusNaoConforme)
	seedSubmission(t, db, tpl, engineer.ID, time.Now(),
		models.StatusPendente, models.StatusNaoAplicavel, models.StatusConforme)

	stats, err := NewAggregator(db).PortfolioStats(gestor.ID, 30)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.Conforme)
	assert.EqualValues(t, 1, stats.NaoConforme)
	assert.EqualValues(t, 1, stats.Pendente)
	assert.EqualValues(t, 1, stats.NaoAplicavel)
	assert.EqualValues(t, 6, stats.Total)
	assert.Equal(t, stats.Total, stats.Conforme+stats.NaoConforme+stats.Pendente+stats.NaoAplicavel)

	assert.Equal(t, 50.0, stats.PercentualConforme)
	assert.Equal(t, 16.7, stats.PercentualNaoConforme)
	assert.Equal(t, 16.7, stats.PercentualPendente)
}

func TestPortfolioStatsWindowFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	gestor := testutil.Gestor(t, db, "g@example.com")
	engineer := testutil.Engineer(t, db, "e@example.com")
	obra := testutil.Obra(t, db, gestor.ID, "Obra B")
	tpl := seedTemplate(t, db, obra.ID, "Extintores")

	seedSubmission(t, db, tpl, engineer.ID, time.Now().AddDate(0, 0, -40), models.StatusConforme)

	agg := NewAggregator(db)

	stats, err := agg.PortfolioStats(gestor.ID, 30)
	require.NoError(t, err)
	assert.Zero(t, stats.Total, "submission older than the window is excluded")

	stats, err = agg.PortfolioStats(gestor.ID, 60)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Total)
}

func TestPortfolioStatsScopedToGestor(t *testing.T) {
	db := testutil.NewTestDB(t)
	mine := testutil.Gestor(t, db, "mine@example.com")
	other := testutil.Gestor(t, db, "other@example.com")
	engineer := testutil.Engineer(t, db, "e@example.com")

	otherObra := testutil.Obra(t, db, other.ID, "Obra alheia")
	tpl := seedTemplate(t, db, otherObra.ID, "Extintores")
	seedSubmission(t, db, tpl, engineer.ID, time.Now(), models.StatusConforme)

	stats, err := NewAggregator(db).PortfolioStats(mine.ID, 30)
	require.NoError(t, err)
	assert.Zero(t, stats.Total, "another gestor's responses never leak in")
}

func TestSiteStats(t *testing.T) {
	db := testutil.NewTestDB(t)
	gestor := testutil.Gestor(t, db, "g@example.com")
	engineer := testutil.Engineer(t, db, "e@example.com")
	obra := testutil.Obra(t, db, gestor.ID, "Obra C")
	tpl := seedTemplate(t, db, obra.ID, "Extintores", "Sinalização")

	seedSubmission(t, db, tpl, engineer.ID, time.Now(),
		models.StatusConforme, models.StatusNaoConforme)

	checkin := models.CheckIn{EngineerID: engineer.ID, ObraID: obra.ID, Latitude: -23.5, Longitude: -46.6}
	require.NoError(t, db.Create(&checkin).Error)

	stats, err := NewAggregator(db).SiteStats(gestor.ID, obra.ID)
	require.NoError(t, err)

	assert.Equal(t, obra.ID, stats.ObraID)
	assert.Equal(t, "Obra C", stats.ObraNome)
	assert.EqualValues(t, 1, stats.TotalCheckins)
	assert.EqualValues(t, 1, stats.TotalChecklists)
	assert.Equal(t, 50.0, stats.ConformidadeRate)
	require.NotNil(t, stats.UltimoCheckin)
	assert.Equal(t, engineer.FullName, stats.UltimoCheckinEngenheiro)
}

func TestSiteStatsZeroResponses(t *testing.T) {
	db := testutil.NewTestDB(t)
	gestor := testutil.Gestor(t, db, "g@example.com")
	obra := testutil.Obra(t, db, gestor.ID, "Obra vazia")

	stats, err := NewAggregator(db).SiteStats(gestor.ID, obra.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.ConformidadeRate)
	assert.Nil(t, stats.UltimoCheckin)
}

func TestSiteStatsReChecksOwnership(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.Gestor(t, db, "owner@example.com")
	other := testutil.Gestor(t, db, "other@example.com")
	obra := testutil.Obra(t, db, owner.ID, "Obra D")

	_, err := NewAggregator(db).SiteStats(other.ID, obra.ID)
	assert.True(t, apperr.IsNotFound(err), "a foreign obra reads as not-found")

	_, err = NewAggregator(db).SiteStats(owner.ID, obra.ID+999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDashboardCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	gestor := testutil.Gestor(t, db, "g@example.com")
	engineer := testutil.Engineer(t, db, "e@example.com")
	obra := testutil.Obra(t, db, gestor.ID, "Obra E")
	inactive := testutil.Obra(t, db, gestor.ID, "Obra parada")
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	tpl := seedTemplate(t, db, obra.ID, "Extintores")
	seedSubmission(t, db, tpl, engineer.ID, time.Now(), models.StatusConforme)
	seedSubmission(t, db, tpl, engineer.ID, time.Now().AddDate(0, 0, -2), models.StatusConforme)

	checkin := models.CheckIn{EngineerID: engineer.ID, ObraID: obra.ID, Latitude: 0, Longitude: 0}
	require.NoError(t, db.Create(&checkin).Error)

	counts, err := NewAggregator(db).DashboardCounts(gestor.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, counts.TotalObrasAtivas, "deactivated obras are not counted")
	assert.EqualValues(t, 1, counts.TotalEngenheiros)
	assert.EqualValues(t, 1, counts.CheckinsHoje)
	assert.EqualValues(t, 1, counts.ChecklistsHoje, "only today's submissions count")
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{33.333333, 33.3},
		{66.666666, 66.7},
		{50, 50},
		{99.95, 100},
	}
	for _, tt := range tests {
		if got := round1(tt.in); got != tt.want {
			t.Errorf("round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
