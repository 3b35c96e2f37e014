package httpx

import (
	"log/slog"
	"net/http"

	"github.com/lifewood/adminhub/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       *service.AuthService
	Contacts   *service.ContactService
	Applicants *service.ApplicantService
	Jobs       *service.JobListingService
	Dashboard  *service.DashboardService

	CookieDomain   string
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// NewRouter creates and configures the HTTP router. Public submission and
// read endpoints sit directly on the mux; everything under /api/admin/ goes
// through the admin session check.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	contactHandlers := &ContactHandlers{
		Svc:       services.Contacts,
		Dashboard: services.Dashboard,
		Logger:    logger,
	}
	applicantHandlers := &ApplicantHandlers{
		Svc:            services.Applicants,
		Dashboard:      services.Dashboard,
		MaxUploadBytes: services.MaxUploadBytes,
		Logger:         logger,
	}
	jobHandlers := &JobHandlers{Svc: services.Jobs, Dashboard: services.Dashboard}
	dashboardHandlers := &DashboardHandlers{Svc: services.Dashboard}

	// Public surface.
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)
	mux.HandleFunc("POST /api/contact", contactHandlers.Submit)
	mux.HandleFunc("POST /api/applications", applicantHandlers.Apply)
	mux.HandleFunc("GET /api/jobs", jobHandlers.List)

	// Session endpoints.
	mux.HandleFunc("POST /api/auth/login", authHandlers.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /api/auth/session", authHandlers.Session)

	// Admin surface, gated on the single-admin session check.
	admin := http.NewServeMux()
	admin.HandleFunc("GET /api/admin/dashboard", dashboardHandlers.Overview)

	admin.HandleFunc("GET /api/admin/contacts", contactHandlers.List)
	admin.HandleFunc("GET /api/admin/contacts/{id}", contactHandlers.Get)
	admin.HandleFunc("POST /api/admin/contacts/{id}/reply", contactHandlers.Reply)
	admin.HandleFunc("POST /api/admin/contacts/{id}/ignore", contactHandlers.Ignore)
	admin.HandleFunc("POST /api/admin/contacts/{id}/unignore", contactHandlers.Unignore)
	admin.HandleFunc("DELETE /api/admin/contacts/{id}", contactHandlers.Delete)

	admin.HandleFunc("GET /api/admin/applicants", applicantHandlers.List)
	admin.HandleFunc("GET /api/admin/applicants/{id}", applicantHandlers.Get)
	admin.HandleFunc("GET /api/admin/applicants/{id}/resume", applicantHandlers.Resume)
	admin.HandleFunc("POST /api/admin/applicants/{id}/accept", applicantHandlers.Accept)
	admin.HandleFunc("POST /api/admin/applicants/{id}/reject", applicantHandlers.Reject)
	admin.HandleFunc("DELETE /api/admin/applicants/{id}", applicantHandlers.Delete)

	admin.HandleFunc("GET /api/admin/jobs", jobHandlers.List)
	admin.HandleFunc("GET /api/admin/jobs/{id}", jobHandlers.Get)
	admin.HandleFunc("POST /api/admin/jobs", jobHandlers.Create)
	admin.HandleFunc("DELETE /api/admin/jobs/{id}", jobHandlers.Delete)

	mux.Handle("/api/admin/", RequireAdmin(services.Auth)(admin))

	var handler http.Handler = mux
	handler = Recover(logger)(handler)
	handler = Logging(logger)(handler)
	return handler
}
