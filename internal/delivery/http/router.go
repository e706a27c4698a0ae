package http

import (
	"net/http"

	"beedical/internal/delivery/http/handler"
	"beedical/internal/delivery/http/middleware"
	"beedical/pkg/metrics"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	healthHandler       *handler.HealthHandler
	authHandler         *handler.AuthHandler
	doctorHandler       *handler.DoctorHandler
	appointmentHandler  *handler.AppointmentHandler
	profileHandler      *handler.ProfileHandler
	dependentHandler    *handler.DependentHandler
	accountHandler      *handler.AccountHandler
	verificationHandler *handler.VerificationHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	metrics             *metrics.Metrics
}

func NewRouter(
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	profileHandler *handler.ProfileHandler,
	dependentHandler *handler.DependentHandler,
	accountHandler *handler.AccountHandler,
	verificationHandler *handler.VerificationHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	m *metrics.Metrics,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		healthHandler:       healthHandler,
		authHandler:         authHandler,
		doctorHandler:       doctorHandler,
		appointmentHandler:  appointmentHandler,
		profileHandler:      profileHandler,
		dependentHandler:    dependentHandler,
		accountHandler:      accountHandler,
		verificationHandler: verificationHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		metrics:             m,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.Use(r.metrics.HTTPMiddleware)

	// Public routes
	api.HandleFunc("/health", r.healthHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/doctors", r.doctorHandler.SearchDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/slots", r.appointmentHandler.GetAvailableSlots).Methods(http.MethodGet)
	api.HandleFunc("/cities", r.doctorHandler.ListCities).Methods(http.MethodGet)
	api.HandleFunc("/specialties", r.doctorHandler.ListSpecialties).Methods(http.MethodGet)
	api.HandleFunc("/appointments/confirmed", r.appointmentHandler.ListConfirmedByDoctor).Methods(http.MethodGet)
	api.HandleFunc("/verification/send", r.verificationHandler.SendCode).Methods(http.MethodPost)
	api.HandleFunc("/verification/check", r.verificationHandler.CheckCode).Methods(http.MethodPost)

	// Doctor routes (protected - doctor only), registered before the
	// patient routes so /appointments/{id}/status is not shadowed
	doctor := api.NewRoute().Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/doctors/{id}/appointments", r.appointmentHandler.ListDoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateAppointmentStatus).Methods(http.MethodPut)

	// Authenticated routes
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/sync", r.authHandler.SyncUser).Methods(http.MethodPost)
	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)

	protected.HandleFunc("/profile", r.profileHandler.GetMyProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", r.profileHandler.UpsertMyProfile).Methods(http.MethodPost)

	protected.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.ListMyAppointments).Methods(http.MethodGet)

	protected.HandleFunc("/account/preferences", r.accountHandler.GetPreferences).Methods(http.MethodGet)
	protected.HandleFunc("/account/preferences", r.accountHandler.UpdatePreferences).Methods(http.MethodPut)
	protected.HandleFunc("/account/activity", r.accountHandler.ListActivity).Methods(http.MethodGet)

	protected.HandleFunc("/dependents", r.dependentHandler.AddDependent).Methods(http.MethodPost)
	protected.HandleFunc("/dependents", r.dependentHandler.ListDependents).Methods(http.MethodGet)
	protected.HandleFunc("/dependents/{id}", r.dependentHandler.GetDependent).Methods(http.MethodGet)
	protected.HandleFunc("/dependents/{id}", r.dependentHandler.UpdateDependent).Methods(http.MethodPut)
	protected.HandleFunc("/dependents/{id}", r.dependentHandler.RemoveDependent).Methods(http.MethodDelete)

	// Preflight requests match no API route; answer them here so the CORS
	// middleware sees them
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
