package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dealflow/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the deal usecase to execute business logic and a logger for
// structured logging. Routes are registered on a chi.Router.
type Handler struct {
	svc    port.DealUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.DealUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/campaigns", h.handleCreateCampaign)
		r.Post("/campaigns/{campaignID}/bids", h.handlePlaceBid)
		r.Post("/campaigns/{campaignID}/select", h.handleSelectWinner)

		r.Get("/bids/{bidID}/rounds", h.handleHistory)
		r.Post("/bids/{bidID}/rounds", h.handleAppendRound)
		r.Post("/bids/{bidID}/cancel", h.handleCancelBid)

		r.Get("/contracts/{contractID}", h.handleGetContract)
		r.Get("/contracts/{contractID}/submissions", h.handleListSubmissions)
		r.Post("/contracts/{contractID}/submissions", h.handleSubmitWork)
		r.Post("/contracts/{contractID}/terminate", h.handleTerminate)
		r.Post("/contracts/{contractID}/settle", h.handleSettle)
		r.Get("/contracts/{contractID}/settlement", h.handleGetSettlement)

		r.Get("/submissions/{submissionID}/audit", h.handleGetAudit)
		r.Post("/submissions/{submissionID}/audit", h.handleRecordAudit)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
