package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dealflow/internal/core/port"
)

type appendRoundRequest struct {
	Price      int64  `json:"price"`
	Concession string `json:"concession"`
	Reasoning  string `json:"reasoning"`
}

func (h *Handler) handleAppendRound(w http.ResponseWriter, r *http.Request) {
	var req appendRoundRequest
	if !h.decode(w, r, &req) {
		return
	}
	round, err := h.svc.AppendRound(r.Context(), port.AppendRoundInput{
		BidID:      chi.URLParam(r, "bidID"),
		Price:      req.Price,
		Concession: req.Concession,
		Reasoning:  req.Reasoning,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toRound(*round))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.svc.History(r.Context(), chi.URLParam(r, "bidID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]roundResponse, 0, len(rounds))
	for _, rd := range rounds {
		out = append(out, toRound(rd))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCancelBid(w http.ResponseWriter, r *http.Request) {
	bid, err := h.svc.CancelBid(r.Context(), chi.URLParam(r, "bidID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toBid(*bid))
}
