package handler

import (
	"io"
	"net/http"

	"github.com/mtlprog/tractscore/internal/domain"
	"github.com/mtlprog/tractscore/internal/handler/dto"
)

// maxScoresUpload bounds the accepted score map upload size.
const maxScoresUpload = 256 << 20

// handleReload rebuilds the lookup index from the store and score file.
// @Summary Reload the lookup index
// @Description Rebuilds the in-memory index from the tract store and score file. The old index keeps serving until the rebuild succeeds.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.IngestResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/reload [post]
func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	event, err := h.lookupSvc.Reload(ctx, domain.LoadSourceReload)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.IngestResponse{
		OK:         true,
		TractCount: event.TractCount,
		LoadEvent:  dto.ToLoadEventResponse(event),
	})
}

// handleUploadScores replaces the score map file.
// @Summary Replace the score map
// @Description Validates the uploaded JSON score map and atomically replaces the scores file. Takes effect on the next reload.
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} dto.ScoresUploadResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/scores [put]
func (h *Handler) handleUploadScores(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxScoresUpload))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to read request body")
		return
	}

	count, err := h.lookupSvc.ReplaceScores(data)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ScoresUploadResponse{
		OK:         true,
		ScoreCount: count,
		ScoresPath: h.lookupSvc.Readiness().ScoresPath,
	})
}

// handleIngestTracts replaces the stored tract set from an NDJSON feed.
// @Summary Ingest tract geometries
// @Description Replaces the stored tract set from an NDJSON body (one {"geoid", "wkb"} object per line, WKB hex-encoded) and rebuilds the index.
// @Tags admin
// @Accept plain
// @Produce json
// @Success 200 {object} dto.IngestResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/tracts [post]
func (h *Handler) handleIngestTracts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	event, count, err := h.lookupSvc.Ingest(ctx, r.Body, domain.LoadSourceIngest)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.IngestResponse{
		OK:         true,
		TractCount: count,
		LoadEvent:  dto.ToLoadEventResponse(event),
	})
}
