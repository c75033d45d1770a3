package usecase

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dealflow/internal/adapter/memory"
	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
	"dealflow/internal/core/port/mocks"
)

// fixture wires the usecase to the in-memory store and locker, a mocked
// payment rail and a publisher mock that records every transition.
type fixture struct {
	store *memory.Store
	rail  *mocks.MockPaymentRail
	uc    *DealUseCase

	mu     sync.Mutex
	events []domain.ContractEvent
}

func newFixture(t *testing.T, opts ...func(*Config)) *fixture {
	t.Helper()
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	f := &fixture{
		store: memory.NewStore(),
		rail:  mocks.NewMockPaymentRail(t),
	}
	pub := mocks.NewMockEventPublisher(t)
	pub.EXPECT().
		Publish(mock.Anything, mock.Anything).
		Run(func(_ context.Context, ev domain.ContractEvent) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.events = append(f.events, ev)
		}).
		Return(nil).
		Maybe()

	f.uc = NewDealUseCase(f.store, f.rail, pub, memory.NewLocker(), cfg, slog.New(slog.DiscardHandler))

	var (
		clockMu sync.Mutex
		now     = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	)
	f.uc.nowFn = func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		now = now.Add(time.Millisecond)
		return now
	}
	return f
}

func (f *fixture) published() []domain.ContractStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ContractStatus, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.To)
	}
	return out
}

func (f *fixture) campaign(t *testing.T, budget int64) *domain.Campaign {
	t.Helper()
	c, err := f.uc.CreateCampaign(context.Background(), port.CreateCampaignInput{
		AdvertiserID: "adv-1",
		Title:        "spring launch",
		Budget:       budget,
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) bid(t *testing.T, campaignID string, amount int64) *domain.AutoBid {
	t.Helper()
	b, err := f.uc.PlaceBid(context.Background(), port.PlaceBidInput{
		CampaignID: campaignID,
		CreatorID:  "creator-1",
		Amount:     amount,
		Reasoning:  "audience fit",
	})
	require.NoError(t, err)
	return b
}

// contract forms an escrow-funded contract with the given base payout.
func (f *fixture) contract(t *testing.T, base int64, tiers []domain.TierBonus) domain.Contract {
	t.Helper()
	camp := f.campaign(t, 10_000)
	b := f.bid(t, camp.ID, base)
	sel, err := f.uc.SelectWinner(context.Background(), port.SelectWinnerInput{
		CampaignID:    camp.ID,
		BidID:         b.ID,
		Tiers:         tiers,
		AuditCriteria: "brand mention in first 10s",
	})
	require.NoError(t, err)
	return sel.Contract
}

func (f *fixture) submit(t *testing.T, contractID, ref string) port.SubmitResult {
	t.Helper()
	res, err := f.uc.SubmitWork(context.Background(), contractID, ref)
	require.NoError(t, err)
	return *res
}

func (f *fixture) audit(t *testing.T, submissionID string, score float64, tier int) domain.AuditReport {
	t.Helper()
	r, err := f.uc.RecordAudit(context.Background(), port.RecordAuditInput{
		SubmissionID: submissionID,
		Score:        score,
		Tier:         tier,
		Reasoning:    "checked against criteria",
	})
	require.NoError(t, err)
	return *r
}

// audited returns a work_submitted contract together with an audit report
// of its current submission.
func (f *fixture) audited(t *testing.T, base int64, tiers []domain.TierBonus, score float64, tier int) (domain.Contract, domain.AuditReport) {
	t.Helper()
	c := f.contract(t, base, tiers)
	res := f.submit(t, c.ID, "https://cdn.example/v/1.mp4")
	return res.Contract, f.audit(t, res.Submission.ID, score, tier)
}

func (f *fixture) status(t *testing.T, contractID string) domain.ContractStatus {
	t.Helper()
	c, err := f.uc.GetContract(context.Background(), contractID)
	require.NoError(t, err)
	return c.Status
}

func (f *fixture) expectPayment(amount int64, receipt string) *mocks.MockPaymentRail_ExecutePayment_Call {
	f.rail.EXPECT().
		CreatePaymentRequest(mock.Anything, amount, "USD").
		Return(port.PaymentRequest{Header: "hdr", Amount: amount, Currency: "USD"}, nil).
		Maybe()
	return f.rail.EXPECT().
		ExecutePayment(mock.Anything, mock.MatchedBy(func(o port.PaymentOrder) bool {
			return o.Amount == amount && o.Request.Header == "hdr"
		})).
		Return(receipt, nil)
}

// hookStore runs a one-shot callback inside selected store calls so tests
// can land a concurrent write at an exact point of an operation.
type hookStore struct {
	*memory.Store

	mu          sync.Mutex
	onRounds    func()
	onAuditSave func()
}

// hooked swaps the fixture's store for a hookStore over the same data.
func (f *fixture) hooked() *hookStore {
	h := &hookStore{Store: f.store}
	f.uc.store = h
	return h
}

func (h *hookStore) take(fn *func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := *fn
	*fn = nil
	return out
}

func (h *hookStore) ListRounds(ctx context.Context, bidID string) ([]domain.NegotiationRound, error) {
	if fn := h.take(&h.onRounds); fn != nil {
		fn()
	}
	return h.Store.ListRounds(ctx, bidID)
}

func (h *hookStore) CreateAuditReport(ctx context.Context, r domain.AuditReport) error {
	if fn := h.take(&h.onAuditSave); fn != nil {
		fn()
	}
	return h.Store.CreateAuditReport(ctx, r)
}
