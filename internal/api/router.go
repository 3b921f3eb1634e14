package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/waymarkd/waymark/internal/api/handler"
	"github.com/waymarkd/waymark/internal/api/middleware"
	"github.com/waymarkd/waymark/internal/api/response"
	"github.com/waymarkd/waymark/internal/dependencies/clock"
	"github.com/waymarkd/waymark/internal/services/identity"
	"github.com/waymarkd/waymark/internal/services/points"
	"github.com/waymarkd/waymark/internal/services/registry"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	Clock            clock.Clock
	Resolver         *identity.Resolver
	PointsController *points.Controller
	Registry         *registry.Service

	// StaticDir, when set, serves the map frontend for non-API paths
	// with an SPA fallback to index.html
	StaticDir string
}

// NewRouter creates a new router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	pointsHandler := handler.NewPointsHandler(cfg.PointsController)
	adminHandler := handler.NewAdminHandler(cfg.PointsController, cfg.Registry)
	ownerHandler := handler.NewOwnerHandler(cfg.Registry)

	// Create middleware
	withActor := middleware.WithActor(cfg.Resolver)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	r.HandleFunc("/health", healthHandler(cfg.Clock)).Methods(http.MethodGet)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(withActor)
	api.NotFoundHandler = withActor(http.HandlerFunc(apiNotFoundHandler))

	// Point routes; public listing needs no session, everything else does.
	// The literal /points/private and /points/share routes are registered
	// before /points/{id} so mux does not swallow them as ids. This makes
	// "private" a reserved id segment: a PUT or DELETE of /points/private
	// falls through to /points/{id} and 404s in the point lookup.
	api.HandleFunc("/points", pointsHandler.ListPublic).Methods(http.MethodGet)
	api.Handle("/points/private", middleware.RequireSession(http.HandlerFunc(pointsHandler.ListMine))).Methods(http.MethodGet)
	api.Handle("/points/share/{id}", middleware.RequireSession(http.HandlerFunc(pointsHandler.Share))).Methods(http.MethodPut)
	api.Handle("/points", middleware.RequireSession(http.HandlerFunc(pointsHandler.Create))).Methods(http.MethodPost)
	api.Handle("/points/{id}", middleware.RequireSession(http.HandlerFunc(pointsHandler.Update))).Methods(http.MethodPut)
	api.Handle("/points/{id}", middleware.RequireSession(http.HandlerFunc(pointsHandler.Delete))).Methods(http.MethodDelete)

	// Admin login only needs a session; moderation needs the admin role
	api.Handle("/admin/login", middleware.RequireSession(http.HandlerFunc(adminHandler.Login))).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/pending", adminHandler.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/accept/{id}", adminHandler.Accept).Methods(http.MethodPut)
	admin.HandleFunc("/reject/{id}", adminHandler.Reject).Methods(http.MethodPut)
	admin.HandleFunc("/edit/{id}", adminHandler.Edit).Methods(http.MethodPut)
	admin.HandleFunc("/delete/{id}", adminHandler.Delete).Methods(http.MethodDelete)

	// Owner check is open to anyone; the registry endpoints are owner-only
	api.HandleFunc("/owner/check", ownerHandler.Check).Methods(http.MethodGet)

	owner := api.PathPrefix("/owner").Subrouter()
	owner.Use(middleware.RequireOwner)
	owner.HandleFunc("/allowed-sessions", ownerHandler.ListAllowed).Methods(http.MethodGet)
	owner.HandleFunc("/allow-session", ownerHandler.AllowSession).Methods(http.MethodPost)
	owner.HandleFunc("/remove-session", ownerHandler.RemoveSession).Methods(http.MethodDelete)
	owner.HandleFunc("/promote", ownerHandler.Promote).Methods(http.MethodPut)
	owner.HandleFunc("/demote", ownerHandler.Demote).Methods(http.MethodDelete)

	// Static map frontend with SPA fallback
	if cfg.StaticDir != "" {
		r.PathPrefix("/").Handler(spaHandler{staticDir: cfg.StaticDir})
	}

	return r
}

// healthHandler reports liveness with a server timestamp
func healthHandler(clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.HealthResponse{
			Status:    "OK",
			Timestamp: clk.Now(),
		})
	}
}

// apiNotFoundHandler keeps unknown API paths as JSON errors rather than
// falling through to the SPA handler
func apiNotFoundHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusNotFound, response.Message{Message: "Endpoint not found"})
}

// spaHandler serves static frontend files, falling back to index.html for
// client-side routes
type spaHandler struct {
	staticDir string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.staticDir, filepath.Clean("/"+strings.TrimPrefix(r.URL.Path, "/")))

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}
