package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mtlprog/tractscore/internal/handler/dto"
)

// parseCoordinate extracts a required float query parameter.
// Returns (value, true) if present and numeric, (0, false) otherwise
// (error already sent to client).
func parseCoordinate(w http.ResponseWriter, r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" query parameter is required")
		return 0, false
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" must be a number")
		return 0, false
	}

	return v, true
}

// handleScore maps a coordinate to its census tract and score.
// @Summary Locate a point
// @Description Maps a WGS84 coordinate to the containing census tract GEOID and its precomputed score
// @Tags score
// @Produce json
// @Param lat query number true "Latitude (EPSG:4326)"
// @Param lon query number true "Longitude (EPSG:4326)"
// @Success 200 {object} dto.ScoreResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /score [get]
func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lat, ok := parseCoordinate(w, r, "lat")
	if !ok {
		return
	}
	lon, ok := parseCoordinate(w, r, "lon")
	if !ok {
		return
	}

	geoid, score, err := h.lookupSvc.Locate(ctx, lat, lon)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ScoreResponse{GEOID: geoid, Score: score})
}

// handleScoreBulk locates a batch of points.
// @Summary Locate a batch of points
// @Description Maps each [lat, lon] pair to a tract and score. Per-point failures are reported per item and never abort the batch.
// @Tags score
// @Accept json
// @Produce json
// @Param request body dto.BulkScoreRequest true "Points to locate"
// @Success 200 {array} dto.BulkItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /score/bulk [post]
func (h *Handler) handleScoreBulk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.BulkScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	results, err := h.lookupSvc.LocateBulk(ctx, req.Points)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	items := make([]dto.BulkItemResponse, 0, len(results))
	for _, res := range results {
		items = append(items, dto.ToBulkItemResponse(res))
	}

	respondJSON(w, http.StatusOK, items)
}

// handleGetTract returns metadata for a stored tract.
// @Summary Get tract metadata
// @Description Returns the bounding box and score of a stored tract by GEOID
// @Tags tracts
// @Produce json
// @Param geoid path string true "Tract GEOID"
// @Success 200 {object} dto.TractResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tracts/{geoid} [get]
func (h *Handler) handleGetTract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	geoid := r.PathValue("geoid")
	if geoid == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "geoid is required")
		return
	}

	info, err := h.lookupSvc.GetTract(ctx, geoid)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTractResponse(info))
}
