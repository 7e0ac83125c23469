package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/obraseguro/backend/handlers"
	"github.com/obraseguro/backend/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/me", handlers.Me).Methods("GET")
	api.HandleFunc("/me", handlers.UpdateMe).Methods("PUT")

	// =====================================================
	// Gestor Routes
	// =====================================================
	gestor := api.NewRoute().Subrouter()
	gestor.Use(middleware.RequireGestor)

	gestor.HandleFunc("/obras", handlers.CreateObra).Methods("POST")
	gestor.HandleFunc("/obras", handlers.ListObras).Methods("GET")
	gestor.HandleFunc("/obras/{obraId}", handlers.GetObra).Methods("GET")
	gestor.HandleFunc("/obras/{obraId}", handlers.UpdateObra).Methods("PUT")
	gestor.HandleFunc("/obras/{obraId}", handlers.DeleteObra).Methods("DELETE")
	gestor.HandleFunc("/obras/{obraId}/deactivate", handlers.DeactivateObra).Methods("POST")

	gestor.HandleFunc("/obras/{obraId}/engineers", handlers.AddEngineer).Methods("POST")
	gestor.HandleFunc("/obras/{obraId}/engineers", handlers.ListObraEngineers).Methods("GET")
	gestor.HandleFunc("/obras/{obraId}/engineers/{engineerId}", handlers.RemoveEngineer).Methods("DELETE")

	gestor.HandleFunc("/obras/{obraId}/checklists", handlers.CreateChecklistTemplate).Methods("POST")
	gestor.HandleFunc("/obras/{obraId}/checklists", handlers.ListChecklistTemplates).Methods("GET")
	gestor.HandleFunc("/checklists/{templateId}", handlers.DeleteChecklistTemplate).Methods("DELETE")

	gestor.HandleFunc("/obras/{obraId}/checkins", handlers.ListObraCheckins).Methods("GET")
	gestor.HandleFunc("/obras/{obraId}/checklist-submissions", handlers.ListObraSubmissions).Methods("GET")

	gestor.HandleFunc("/dashboard/stats", handlers.DashboardStats).Methods("GET")
	gestor.HandleFunc("/dashboard/conformidade", handlers.Conformidade).Methods("GET")
	gestor.HandleFunc("/dashboard/conformidade/export", handlers.ConformidadeExport).Methods("GET")
	gestor.HandleFunc("/dashboard/atividades-recentes", handlers.RecentActivities).Methods("GET")
	gestor.HandleFunc("/dashboard/obras/{obraId}/stats", handlers.ObraStats).Methods("GET")

	gestor.HandleFunc("/users/engineers", handlers.ListEngineers).Methods("GET")
	gestor.HandleFunc("/users/engineers/{engineerId}", handlers.GetEngineer).Methods("GET")

	// =====================================================
	// Engineer (mobile) Routes
	// =====================================================
	mobile := api.PathPrefix("/mobile").Subrouter()
	mobile.Use(middleware.RequireEngenheiro)

	mobile.HandleFunc("/obras", handlers.ListMyObras).Methods("GET")
	mobile.HandleFunc("/obras/{obraId}", handlers.GetMyObra).Methods("GET")
	mobile.HandleFunc("/obras/{obraId}/checklists", handlers.ListMyObraTemplates).Methods("GET")

	mobile.HandleFunc("/checkin", handlers.CreateCheckin).Methods("POST")
	mobile.HandleFunc("/checkins", handlers.ListMyCheckins).Methods("GET")

	mobile.HandleFunc("/checklists/submit", handlers.SubmitChecklist).Methods("POST")
	mobile.HandleFunc("/checklists/submissions", handlers.ListMySubmissions).Methods("GET")

	mobile.HandleFunc("/upload-photo", handlers.UploadPhoto).Methods("POST")

	return r
}
