package http

import (
	"net/http"

	"rehab-scheduling/internal/delivery/http/handler"
	"rehab-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	appointmentHandler  *handler.AppointmentHandler
	availabilityHandler *handler.AvailabilityHandler
	practitionerHandler *handler.PractitionerHandler
	linkageHandler      *handler.LinkageHandler
	centerLinkHandler   *handler.CenterLinkHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	availabilityHandler *handler.AvailabilityHandler,
	practitionerHandler *handler.PractitionerHandler,
	linkageHandler *handler.LinkageHandler,
	centerLinkHandler *handler.CenterLinkHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		appointmentHandler:  appointmentHandler,
		availabilityHandler: availabilityHandler,
		practitionerHandler: practitionerHandler,
		linkageHandler:      linkageHandler,
		centerLinkHandler:   centerLinkHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Everything below requires a session
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.Handle("/linkage", middleware.RequirePatient(http.HandlerFunc(r.linkageHandler.GetMyLinkage))).Methods(http.MethodGet)
	protected.HandleFunc("/availability", r.availabilityHandler.GetAvailability).Methods(http.MethodGet)
	protected.HandleFunc("/practitioners", r.practitionerHandler.ListPractitioners).Methods(http.MethodGet)
	protected.HandleFunc("/practitioners/{id}/workload", r.practitionerHandler.GetWorkload).Methods(http.MethodGet)

	// Appointments
	protected.Handle("/appointments", middleware.RequireBooker(http.HandlerFunc(r.appointmentHandler.CreateAppointment))).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	protected.Handle("/appointments/{id}", middleware.RequireBooker(http.HandlerFunc(r.appointmentHandler.UpdateAppointment))).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/confirm", r.appointmentHandler.ConfirmAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/start", r.appointmentHandler.StartAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/no-show", r.appointmentHandler.MarkNoShow).Methods(http.MethodPost)
	protected.Handle("/appointments/{id}/history", middleware.RequireStaffOrPractitioner(http.HandlerFunc(r.appointmentHandler.GetHistory))).Methods(http.MethodGet)

	// Center membership (staff only)
	centers := protected.PathPrefix("/centers/{centerId}").Subrouter()
	centers.Use(middleware.RequireCenterStaff)
	centers.HandleFunc("/practitioners/{practitionerId}", r.centerLinkHandler.LinkPractitioner).Methods(http.MethodPut)
	centers.HandleFunc("/practitioners/{practitionerId}", r.centerLinkHandler.UnlinkPractitioner).Methods(http.MethodDelete)
	centers.HandleFunc("/patients/{patientId}", r.centerLinkHandler.LinkPatient).Methods(http.MethodPut)
	centers.HandleFunc("/patients/{patientId}", r.centerLinkHandler.UnlinkPatient).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
