package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

type createCampaignRequest struct {
	AdvertiserID string `json:"advertiserId"`
	Title        string `json:"title"`
	Budget       int64  `json:"budget"`
}

type placeBidRequest struct {
	CreatorID string `json:"creatorId"`
	Amount    int64  `json:"amount"`
	Reasoning string `json:"reasoning"`
}

type selectWinnerRequest struct {
	BidID         string             `json:"bidId"`
	Tiers         []domain.TierBonus `json:"tiers"`
	AuditCriteria string             `json:"auditCriteria"`
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if !h.decode(w, r, &req) {
		return
	}
	camp, err := h.svc.CreateCampaign(r.Context(), port.CreateCampaignInput{
		AdvertiserID: req.AdvertiserID,
		Title:        req.Title,
		Budget:       req.Budget,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaign(*camp))
}

func (h *Handler) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	var req placeBidRequest
	if !h.decode(w, r, &req) {
		return
	}
	bid, err := h.svc.PlaceBid(r.Context(), port.PlaceBidInput{
		CampaignID: chi.URLParam(r, "campaignID"),
		CreatorID:  req.CreatorID,
		Amount:     req.Amount,
		Reasoning:  req.Reasoning,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toBid(*bid))
}

// handleSelectWinner accepts the named bid. A campaign that already has a
// contract, a bid that is no longer open or an exhausted budget answer 409.
func (h *Handler) handleSelectWinner(w http.ResponseWriter, r *http.Request) {
	var req selectWinnerRequest
	if !h.decode(w, r, &req) {
		return
	}
	sel, err := h.svc.SelectWinner(r.Context(), port.SelectWinnerInput{
		CampaignID:    chi.URLParam(r, "campaignID"),
		BidID:         req.BidID,
		Tiers:         req.Tiers,
		AuditCriteria: req.AuditCriteria,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, selectionResponse{
		ContractID: sel.Contract.ID,
		EscrowRef:  sel.Contract.EscrowRef,
		Rationale:  sel.Rationale,
	})
}
