package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mtlprog/tractscore/docs" // Import generated docs
	"github.com/mtlprog/tractscore/internal/handler/dto"
	"github.com/mtlprog/tractscore/internal/index"
	"github.com/mtlprog/tractscore/internal/middleware"
	"github.com/mtlprog/tractscore/internal/repository"
	"github.com/mtlprog/tractscore/internal/service"
	"github.com/mtlprog/tractscore/internal/static"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	db        *sqlx.DB
	lookupSvc *service.LookupService
	adminAuth *middleware.AdminAuth
}

// New creates a new Handler instance with all dependencies.
func New(db *sqlx.DB, tractsDB, scoresPath, adminToken string) *Handler {
	tractRepo := repository.NewTractRepository(db)
	eventRepo := repository.NewLoadEventRepository(db)
	holder := index.NewHolder()

	lookupSvc := service.NewLookupService(tractRepo, eventRepo, holder, tractsDB, scoresPath)
	adminAuth := middleware.NewAdminAuth(adminToken)

	return &Handler{
		db:        db,
		lookupSvc: lookupSvc,
		adminAuth: adminAuth,
	}
}

// Service returns the lookup service (used by main for the startup load).
func (h *Handler) Service() *service.LookupService {
	return h.lookupSvc
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Landing page and probes
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /readyz", h.handleReadyz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// API v1 routes
	mux.HandleFunc("GET /api/v1/score", h.handleScore)
	mux.HandleFunc("POST /api/v1/score/bulk", h.handleScoreBulk)
	mux.HandleFunc("GET /api/v1/tracts/{geoid}", h.handleGetTract)
	mux.HandleFunc("GET /api/v1/stats", h.handleGetStats)

	// Admin routes with authentication
	mux.Handle("POST /api/v1/admin/reload", h.adminAuth.Require(http.HandlerFunc(h.handleReload)))
	mux.Handle("PUT /api/v1/admin/scores", h.adminAuth.Require(http.HandlerFunc(h.handleUploadScores)))
	mux.Handle("POST /api/v1/admin/tracts", h.adminAuth.Require(http.HandlerFunc(h.handleIngestTracts)))
}

// handleIndex serves the embedded landing page.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.IndexHTML))
}

// handleHealthz returns 200 OK if the tract store is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.PingContext(ctx); err != nil {
		slog.Error("tract store health check failed", "error", err)
		http.Error(w, "tract store unavailable", http.StatusServiceUnavailable)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleReadyz reports whether the lookup index is serving.
// @Summary Readiness probe
// @Description Reports whether the lookup index is loaded, with tract and score counts and the configured paths
// @Tags probes
// @Produce json
// @Success 200 {object} dto.ReadyResponse
// @Router /readyz [get]
func (h *Handler) handleReadyz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.ToReadyResponse(h.lookupSvc.Readiness()))
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}
