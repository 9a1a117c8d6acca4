package handler

import (
	"net/http"

	"github.com/mtlprog/tractscore/internal/handler/dto"
)

// handleGetStats returns store and index statistics.
// @Summary Get statistics
// @Description Returns tract store size, index tract/score counts, and the most recent index load
// @Tags stats
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stats [get]
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.lookupSvc.Stats(ctx)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStatsResponse(stats))
}
