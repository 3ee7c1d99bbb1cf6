package handler

import (
	"encoding/json"
	"net/http"
)

type SessionHandler struct {
	service SessionServiceInterface
}

func NewSessionHandler(service SessionServiceInterface) *SessionHandler {
	return &SessionHandler{service: service}
}

// ConnectRequest carries the wallet address to connect.
type ConnectRequest struct {
	Address string `json:"address"`
}

// Connect godoc
// @Summary Connect a wallet
// @Description Exchange a wallet address for a session token
// @Tags session
// @Accept json
// @Produce json
// @Param input body ConnectRequest true "Wallet address"
// @Success 200 {object} service.ConnectResponse
// @Failure 400 {object} ErrorResponse
// @Router /session/connect [post]
func (h *SessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Connect(req.Address)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
