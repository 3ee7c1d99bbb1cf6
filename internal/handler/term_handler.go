package handler

import (
	"net/http"
)

type TermHandler struct {
	service TermServiceInterface
	market  MarketProviderInterface
}

func NewTermHandler(service TermServiceInterface, market MarketProviderInterface) *TermHandler {
	return &TermHandler{service: service, market: market}
}

// List godoc
// @Summary List lock-up terms
// @Description Get the lock-up catalog with multipliers, expected APY, bonus tiers and minimums
// @Tags terms
// @Produce json
// @Success 200 {array} service.TermView
// @Failure 500 {object} ErrorResponse
// @Router /terms [get]
func (h *TermHandler) List(w http.ResponseWriter, r *http.Request) {
	snapshot := h.market.Snapshot()

	views, err := h.service.ListTermViews(r.Context(), snapshot.BaseAPY)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list terms")
		return
	}

	respondJSON(w, http.StatusOK, views)
}

// Metrics godoc
// @Summary Current market metrics
// @Description Get the latest market snapshot: base APY, market price and treasury value
// @Tags terms
// @Produce json
// @Success 200 {object} model.MarketSnapshot
// @Router /metrics [get]
func (h *TermHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.market.Snapshot())
}
