// handlers/dashboard.go — gestor dashboard: counters, conformidade stats,
// activity feed, per-obra summaries. Everything is computed from stored rows
// at request time.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/obraseguro/backend/config"
	"github.com/obraseguro/backend/middleware"
	"github.com/obraseguro/backend/pkg/apperr"
	"github.com/obraseguro/backend/pkg/report"
)

// DashboardStats returns the landing-page counters.
func DashboardStats(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	counts, err := report.NewAggregator(config.DB).DashboardCounts(user.ID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// Conformidade returns windowed compliance percentages across the gestor's
// portfolio. ?days defaults to 30.
func Conformidade(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	days := queryInt(r, "days", 30)

	stats, err := report.NewAggregator(config.DB).PortfolioStats(user.ID, days)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ConformidadeExport downloads the same stats as an xlsx workbook.
func ConformidadeExport(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	days := queryInt(r, "days", 30)

	stats, err := report.NewAggregator(config.DB).PortfolioStats(user.ID, days)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	buf, err := report.WriteStatsXLSX(stats, days)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	filename := fmt.Sprintf("conformidade_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// RecentActivities returns the merged check-in/submission feed, newest
// first. ?limit defaults to 10.
func RecentActivities(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	limit := queryInt(r, "limit", 10)

	activities, err := report.NewAggregator(config.DB).RecentActivity(user.ID, limit)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// ObraStats returns the all-time summary for one owned obra.
func ObraStats(w http.ResponseWriter, r *http.Request) {
	obraID, err := pathID(r, "obraId")
	if err != nil {
		apperr.Write(w, err)
		return
	}

	user := middleware.GetUser(r)
	stats, err := report.NewAggregator(config.DB).SiteStats(user.ID, obraID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
