package app

import (
	"log/slog"
	"time"

	"github.com/crewline/platform/internal/auth"
	"github.com/crewline/platform/internal/filestore"
	"github.com/crewline/platform/internal/guard"
	"github.com/crewline/platform/internal/handler"
	adminhandler "github.com/crewline/platform/internal/handler/admin"
	"github.com/crewline/platform/internal/repository"
	"github.com/crewline/platform/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool           *pgxpool.Pool
	JWTMgr         *auth.JWTManager
	Logger         *slog.Logger
	UploadDir      string
	MaxUploadBytes int64
	CORSOrigins    string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool

	// Repositories
	crewRepo := repository.NewPgCrewRepository()
	staffRepo := repository.NewPgStaffRepository()
	adminRepo := repository.NewPgAdminRepository()

	// File store
	files := filestore.New(deps.UploadDir)

	// Services
	crewSvc := service.NewCrewService(pool, crewRepo, files)
	staffSvc := service.NewStaffService(pool, staffRepo, files)
	authSvc := service.NewAdminAuthService(pool, adminRepo, deps.JWTMgr)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	crewHandler := handler.NewCrewHandler(crewSvc, deps.MaxUploadBytes)
	staffHandler := handler.NewStaffHandler(staffSvc, deps.MaxUploadBytes)

	// Admin handlers
	dashboard := adminhandler.NewDashboardHandler(crewSvc, staffSvc)
	crewAdmin := adminhandler.NewCrewAdminHandler(crewSvc)
	staffAdmin := adminhandler.NewStaffAdminHandler(staffSvc)
	fileAdmin := adminhandler.NewFileHandler(files)

	registrationLimiter := guard.NewRateLimiter(10, time.Minute)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(deps.Logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(deps.Logger))
	r.Use(handler.CORSWithOrigins(deps.CORSOrigins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Public registration (rate limited)
	r.Group(func(r chi.Router) {
		r.Use(handler.Throttle(registrationLimiter))
		r.Post("/crew", crewHandler.Register)
		r.Post("/staff", staffHandler.Register)
	})

	// Public status tracking
	r.Get("/track/{passport}", crewHandler.Track)

	// Admin auth (no token required). Logout is token-free too: sessions are
	// stateless, so discarding an expired token must still get its 204.
	r.Post("/admin/setup", authHandler.Setup)
	r.Post("/admin/login", authHandler.Login)
	r.Post("/admin/logout", authHandler.Logout)

	// Admin-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthenticateAdmin(deps.JWTMgr))

		r.Get("/admin/dashboard", dashboard.Overview)

		r.Route("/admin/crew", func(r chi.Router) {
			r.Get("/", crewAdmin.List)
			r.Get("/{id}", crewAdmin.Detail)
			r.Post("/{id}/advance", crewAdmin.Advance)
			r.Post("/{id}/approve", crewAdmin.Approve)
			r.Post("/{id}/reject", crewAdmin.Reject)
		})

		r.Route("/admin/staff", func(r chi.Router) {
			r.Get("/", staffAdmin.List)
			r.Get("/{id}", staffAdmin.Detail)
			r.Post("/{id}/approve", staffAdmin.Approve)
			r.Post("/{id}/reject", staffAdmin.Reject)
		})

		r.Get("/admin/files/{category}/{filename}", fileAdmin.Download)
	})

	return r
}
