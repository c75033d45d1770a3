package httpadapter

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

type submitWorkRequest struct {
	ContentRef string `json:"contentRef"`
}

type terminateRequest struct {
	Reason string `json:"reason"`
}

type settleRequest struct {
	AuditReportID string `json:"auditReportId"`
}

type recordAuditRequest struct {
	Score     float64 `json:"score"`
	Tier      int     `json:"tier"`
	Reasoning string  `json:"reasoning"`
}

func (h *Handler) handleGetContract(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetContract(r.Context(), chi.URLParam(r, "contractID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toContract(*c))
}

func (h *Handler) handleSubmitWork(w http.ResponseWriter, r *http.Request) {
	var req submitWorkRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.SubmitWork(r.Context(), chi.URLParam(r, "contractID"), req.ContentRef)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, submissionResponse{
		ContractID:   res.Contract.ID,
		SubmissionID: res.Submission.ID,
		Status:       string(res.Contract.Status),
	})
}

func (h *Handler) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.Submissions(r.Context(), chi.URLParam(r, "contractID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	type item struct {
		ID         string `json:"id"`
		ContentRef string `json:"contentRef"`
	}
	out := make([]item, 0, len(subs))
	for _, s := range subs {
		out = append(out, item{ID: s.ID, ContentRef: s.ContentRef})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleTerminate(w http.ResponseWriter, r *http.Request) {
	var req terminateRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.svc.Terminate(r.Context(), chi.URLParam(r, "contractID"), req.Reason)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toContract(*c))
}

func (h *Handler) handleRecordAudit(w http.ResponseWriter, r *http.Request) {
	var req recordAuditRequest
	if !h.decode(w, r, &req) {
		return
	}
	report, err := h.svc.RecordAudit(r.Context(), port.RecordAuditInput{
		SubmissionID: chi.URLParam(r, "submissionID"),
		Score:        req.Score,
		Tier:         req.Tier,
		Reasoning:    req.Reasoning,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toReport(*report))
}

func (h *Handler) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.AuditForSubmission(r.Context(), chi.URLParam(r, "submissionID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toReport(*report))
}

// handleSettle pays out a contract. A repeated request for a settled
// contract answers 409 with the existing settlement as body, so clients can
// retry blindly.
func (h *Handler) handleSettle(w http.ResponseWriter, r *http.Request) {
	var req settleRequest
	if !h.decode(w, r, &req) {
		return
	}
	st, err := h.svc.Settle(r.Context(), chi.URLParam(r, "contractID"), req.AuditReportID)
	switch {
	case errors.Is(err, domain.ErrAlreadySettled) && st != nil:
		h.writeJSON(w, http.StatusConflict, toSettlement(*st))
	case err != nil:
		h.writeError(w, r, err)
	default:
		h.writeJSON(w, http.StatusCreated, toSettlement(*st))
	}
}

func (h *Handler) handleGetSettlement(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.SettlementForContract(r.Context(), chi.URLParam(r, "contractID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toSettlement(*st))
}
