package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pearlvault/backend/internal/model"
	"github.com/pearlvault/backend/internal/service"
)

type VaultHandler struct {
	service VaultServiceInterface
}

func NewVaultHandler(service VaultServiceInterface) *VaultHandler {
	return &VaultHandler{service: service}
}

// SelectTermRequest names the term to select; an empty address clears the
// current selection.
type SelectTermRequest struct {
	NoteAddress string `json:"noteAddress"`
}

// SelectionResponse carries the session's current term selection, if any.
type SelectionResponse struct {
	Selected *model.Term `json:"selected"`
}

// SelectTerm godoc
// @Summary Select or clear a lock-up term
// @Description Set the session's current term selection; an empty note address clears it
// @Tags vault
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body SelectTermRequest true "Term selection"
// @Success 200 {object} SelectionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /terms/select [post]
func (h *VaultHandler) SelectTerm(w http.ResponseWriter, r *http.Request) {
	var input SelectTermRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	term, err := h.service.SelectTerm(r.Context(), GetSession(r.Context()), input.NoteAddress)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SelectionResponse{Selected: term})
}

// Selection godoc
// @Summary Get the current term selection
// @Description Get the session's currently selected lock-up term, if any
// @Tags vault
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SelectionResponse
// @Failure 401 {object} ErrorResponse
// @Router /terms/select [get]
func (h *VaultHandler) Selection(w http.ResponseWriter, r *http.Request) {
	term, err := h.service.SelectedTerm(r.Context(), GetSession(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SelectionResponse{Selected: term})
}

// CreateLockup godoc
// @Summary Lock funds under a term
// @Description Lock an amount under the chosen term and mint its note
// @Tags vault
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.LockupInput true "Lockup request"
// @Success 201 {object} service.LockupResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /lockups [post]
func (h *VaultHandler) CreateLockup(w http.ResponseWriter, r *http.Request) {
	var input service.LockupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.ConfirmLockup(r.Context(), GetSession(r.Context()), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// ListNotes godoc
// @Summary List the caller's notes
// @Description Get all notes for the connected wallet with accrued rewards and valuations
// @Tags vault
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Note
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /notes [get]
func (h *VaultHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.ListNotes(r.Context(), GetSession(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, notes)
}

// Redeem godoc
// @Summary Redeem a matured note
// @Description Return the locked funds of a matured note to its owner
// @Tags vault
// @Produce json
// @Security BearerAuth
// @Param noteAddress path string true "Note address"
// @Param tokenID path int true "Token ID"
// @Success 200 {object} model.Lock
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /notes/{noteAddress}/{tokenID}/redeem [post]
func (h *VaultHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	noteAddress, tokenID, ok := notePathParams(w, r)
	if !ok {
		return
	}

	lock, err := h.service.Redeem(r.Context(), GetSession(r.Context()), noteAddress, tokenID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lock)
}

// Claim godoc
// @Summary Claim accrued rewards
// @Description Pay out the reward accrued so far on a still-locked note
// @Tags vault
// @Produce json
// @Security BearerAuth
// @Param noteAddress path string true "Note address"
// @Param tokenID path int true "Token ID"
// @Success 200 {object} service.ClaimResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /notes/{noteAddress}/{tokenID}/claim [post]
func (h *VaultHandler) Claim(w http.ResponseWriter, r *http.Request) {
	noteAddress, tokenID, ok := notePathParams(w, r)
	if !ok {
		return
	}

	result, err := h.service.ClaimReward(r.Context(), GetSession(r.Context()), noteAddress, tokenID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// PendingActions godoc
// @Summary List the caller's in-flight actions
// @Description Get the dedup keys of the caller's actions currently awaiting confirmation
// @Tags vault
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PendingActionsResponse
// @Failure 401 {object} ErrorResponse
// @Router /actions/pending [get]
func (h *VaultHandler) PendingActions(w http.ResponseWriter, r *http.Request) {
	keys, err := h.service.PendingActions(r.Context(), GetSession(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, PendingActionsResponse{Pending: keys})
}

// PendingActionsResponse lists the caller's in-flight action keys.
type PendingActionsResponse struct {
	Pending []string `json:"pending"`
}

func notePathParams(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	noteAddress := chi.URLParam(r, "noteAddress")
	if noteAddress == "" {
		respondError(w, http.StatusBadRequest, "missing note address")
		return "", 0, false
	}

	tokenID, err := strconv.ParseInt(chi.URLParam(r, "tokenID"), 10, 64)
	if err != nil || tokenID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid token id")
		return "", 0, false
	}

	return noteAddress, tokenID, true
}
