package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vendaforte/cartela-reward-service/internal/usecase/reward"
	"github.com/vendaforte/cartela-reward-service/internal/usecase/settlement"
)

// Handler exposes the reward and settlement engines to back-office
// tooling. Authentication happens upstream; the gateway forwards the
// acting admin in the X-Admin-ID header.
type Handler struct {
	Rewards    reward.RewardUsecase
	Settlement settlement.SettlementUsecase
}

func NewHandler(rewards reward.RewardUsecase, settlementUC settlement.SettlementUsecase) *Handler {
	return &Handler{
		Rewards:    rewards,
		Settlement: settlementUC,
	}
}

func adminID(r *http.Request) string {
	if id := r.Header.Get("X-Admin-ID"); id != "" {
		return id
	}
	return "unknown"
}

func (h *Handler) ValidateSale(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "id")

	output, err := h.Rewards.ValidateSale(r.Context(), saleID, adminID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output)
}

type cascadeRequest struct {
	VendorID   string `json:"vendor_id"`
	CampaignID string `json:"campaign_id"`
	StartTier  int    `json:"start_tier"`
}

// RunCascade re-walks the tier ladder for one vendor. Used by operators
// after a manual data fix.
func (h *Handler) RunCascade(w http.ResponseWriter, r *http.Request) {
	var req cascadeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.VendorID == "" || req.CampaignID == "" || req.StartTier < 1 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "vendor_id, campaign_id and start_tier >= 1 are required"})
		return
	}

	output, err := h.Rewards.RunCascade(r.Context(), req.VendorID, req.CampaignID, req.StartTier)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output)
}

func (h *Handler) PreviewBalances(w http.ResponseWriter, r *http.Request) {
	output, err := h.Settlement.PreviewBalances(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output)
}

type generateBatchRequest struct {
	CutoffDate string `json:"cutoff_date"`
	Notes      string `json:"notes"`
}

func (h *Handler) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	var req generateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	cutoff := time.Now()
	if req.CutoffDate != "" {
		parsed, err := time.Parse("2006-01-02", req.CutoffDate)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "cutoff_date must be YYYY-MM-DD"})
			return
		}
		cutoff = parsed
	}

	output, err := h.Settlement.GenerateBatch(r.Context(), cutoff, req.Notes, adminID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, output)
}

func (h *Handler) GetBatch(w http.ResponseWriter, r *http.Request) {
	output, err := h.Settlement.GetBatch(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output)
}

type processBatchRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	var req processBatchRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
	}

	output, err := h.Settlement.ProcessBatch(r.Context(), chi.URLParam(r, "number"), req.Notes, adminID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output)
}

func (h *Handler) CancelBatch(w http.ResponseWriter, r *http.Request) {
	output, err := h.Settlement.CancelBatch(r.Context(), chi.URLParam(r, "number"), adminID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
