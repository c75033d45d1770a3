package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

// Store implements port.Store in memory. A single mutex guards all
// collections so every multi-record write is atomic. Records are copied on
// the way in and out.
type Store struct {
	mu sync.Mutex

	campaigns   map[string]domain.Campaign
	bids        map[string]domain.AutoBid
	rounds      map[string][]domain.NegotiationRound
	contracts   map[string]domain.Contract
	submissions map[string]domain.ContentSubmission
	reports     map[string]domain.AuditReport
	settlements map[string]domain.Settlement

	// unique indexes
	contractByCampaign   map[string]string
	contractByBid        map[string]string
	reportBySubmission   map[string]string
	settlementByContract map[string]string
}

var _ port.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		campaigns:            make(map[string]domain.Campaign),
		bids:                 make(map[string]domain.AutoBid),
		rounds:               make(map[string][]domain.NegotiationRound),
		contracts:            make(map[string]domain.Contract),
		submissions:          make(map[string]domain.ContentSubmission),
		reports:              make(map[string]domain.AuditReport),
		settlements:          make(map[string]domain.Settlement),
		contractByCampaign:   make(map[string]string),
		contractByBid:        make(map[string]string),
		reportBySubmission:   make(map[string]string),
		settlementByContract: make(map[string]string),
	}
}

func (s *Store) CreateCampaign(_ context.Context, c domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[c.ID]; ok {
		return fmt.Errorf("%w: campaign %s exists", domain.ErrConflict, c.ID)
	}
	s.campaigns[c.ID] = c
	return nil
}

func (s *Store) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *Store) AdjustCommitment(_ context.Context, campaignID string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[campaignID]
	if !ok {
		return fmt.Errorf("%w: campaign %s", domain.ErrNotFound, campaignID)
	}
	c.Committed += delta
	if c.Committed < 0 {
		c.Committed = 0
	}
	s.campaigns[campaignID] = c
	return nil
}

func (s *Store) CreateBid(_ context.Context, bid domain.AutoBid, ask domain.NegotiationRound) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bids[bid.ID]; ok {
		return fmt.Errorf("%w: bid %s exists", domain.ErrConflict, bid.ID)
	}
	s.bids[bid.ID] = bid
	s.rounds[bid.ID] = []domain.NegotiationRound{ask}
	return nil
}

func (s *Store) GetBid(_ context.Context, id string) (*domain.AutoBid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bids[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *Store) ListBids(_ context.Context, campaignID string) ([]domain.AutoBid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.AutoBid
	for _, b := range s.bids {
		if b.CampaignID == campaignID {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b domain.AutoBid) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (s *Store) UpdateBid(_ context.Context, bid domain.AutoBid, expected domain.BidVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.casBid(bid, expected)
}

func (s *Store) AppendRound(_ context.Context, round domain.NegotiationRound, bid domain.AutoBid, expected domain.BidVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := s.rounds[round.BidID]
	if round.Round != len(log)+1 {
		return fmt.Errorf("%w: round %d already recorded for bid %s", domain.ErrConflict, round.Round, round.BidID)
	}
	if err := s.casBid(bid, expected); err != nil {
		return err
	}
	s.rounds[round.BidID] = append(log, round)
	return nil
}

func (s *Store) ListRounds(_ context.Context, bidID string) ([]domain.NegotiationRound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.rounds[bidID]), nil
}

func (s *Store) CreateContract(_ context.Context, c domain.Contract, bid domain.AutoBid, expected domain.BidVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contractByCampaign[c.CampaignID]; ok {
		return fmt.Errorf("%w: campaign %s already has a contract", domain.ErrConflict, c.CampaignID)
	}
	if _, ok := s.contractByBid[c.AutoBidID]; ok {
		return fmt.Errorf("%w: bid %s already has a contract", domain.ErrConflict, c.AutoBidID)
	}
	camp, ok := s.campaigns[c.CampaignID]
	if !ok {
		return fmt.Errorf("%w: campaign %s", domain.ErrNotFound, c.CampaignID)
	}
	if camp.Remaining() < c.BasePayout {
		return domain.ErrBudgetExceeded
	}
	if err := s.casBid(bid, expected); err != nil {
		return err
	}
	camp.Committed += c.BasePayout
	s.campaigns[camp.ID] = camp
	c.Tiers = slices.Clone(c.Tiers)
	s.contracts[c.ID] = c
	s.contractByCampaign[c.CampaignID] = c.ID
	s.contractByBid[c.AutoBidID] = c.ID
	return nil
}

func (s *Store) GetContract(_ context.Context, id string) (*domain.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contract(id), nil
}

func (s *Store) GetContractByCampaign(_ context.Context, campaignID string) (*domain.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.contractByCampaign[campaignID]
	if !ok {
		return nil, nil
	}
	return s.contract(id), nil
}

func (s *Store) UpdateContract(_ context.Context, c domain.Contract, expected domain.ContractStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.casContract(c, expected)
}

func (s *Store) RecordSubmission(_ context.Context, sub domain.ContentSubmission, c domain.Contract, expected domain.ContractStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.submissions[sub.ID]; ok {
		return fmt.Errorf("%w: submission %s exists", domain.ErrConflict, sub.ID)
	}
	if err := s.casContract(c, expected); err != nil {
		return err
	}
	s.submissions[sub.ID] = sub
	return nil
}

func (s *Store) GetSubmission(_ context.Context, id string) (*domain.ContentSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (s *Store) ListSubmissions(_ context.Context, contractID string) ([]domain.ContentSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ContentSubmission
	for _, sub := range s.submissions {
		if sub.ContractID == contractID {
			out = append(out, sub)
		}
	}
	slices.SortFunc(out, func(a, b domain.ContentSubmission) int { return a.SubmittedAt.Compare(b.SubmittedAt) })
	return out, nil
}

func (s *Store) CreateAuditReport(_ context.Context, r domain.AuditReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reportBySubmission[r.SubmissionID]; ok {
		return fmt.Errorf("%w: submission %s already audited", domain.ErrConflict, r.SubmissionID)
	}
	s.reports[r.ID] = r
	s.reportBySubmission[r.SubmissionID] = r.ID
	return nil
}

func (s *Store) GetAuditReport(_ context.Context, id string) (*domain.AuditReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *Store) GetAuditReportBySubmission(_ context.Context, submissionID string) (*domain.AuditReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.reportBySubmission[submissionID]
	if !ok {
		return nil, nil
	}
	r := s.reports[id]
	return &r, nil
}

func (s *Store) CreateSettlement(_ context.Context, st domain.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.settlementByContract[st.ContractID]; ok {
		return fmt.Errorf("%w: contract %s already has a settlement", domain.ErrConflict, st.ContractID)
	}
	s.settlements[st.ID] = st
	s.settlementByContract[st.ContractID] = st.ID
	return nil
}

func (s *Store) GetSettlementByContract(_ context.Context, contractID string) (*domain.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.settlementByContract[contractID]
	if !ok {
		return nil, nil
	}
	st := s.settlements[id]
	return &st, nil
}

// CountSettlements returns the number of settlements stored for a contract.
func (s *Store) CountSettlements(contractID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, st := range s.settlements {
		if st.ContractID == contractID {
			n++
		}
	}
	return n
}

func (s *Store) contract(id string) *domain.Contract {
	c, ok := s.contracts[id]
	if !ok {
		return nil
	}
	c.Tiers = slices.Clone(c.Tiers)
	return &c
}

func (s *Store) casBid(bid domain.AutoBid, expected domain.BidVersion) error {
	cur, ok := s.bids[bid.ID]
	if !ok {
		return fmt.Errorf("%w: bid %s", domain.ErrNotFound, bid.ID)
	}
	if cur.Version() != expected {
		return fmt.Errorf("%w: bid %s is %s at %d, expected %s at %d",
			domain.ErrConflict, bid.ID, cur.Status, cur.Amount, expected.Status, expected.Amount)
	}
	s.bids[bid.ID] = bid
	return nil
}

func (s *Store) casContract(c domain.Contract, expected domain.ContractStatus) error {
	cur, ok := s.contracts[c.ID]
	if !ok {
		return fmt.Errorf("%w: contract %s", domain.ErrNotFound, c.ID)
	}
	if cur.Status != expected {
		return fmt.Errorf("%w: contract %s is %s, expected %s", domain.ErrConflict, c.ID, cur.Status, expected)
	}
	c.Tiers = slices.Clone(c.Tiers)
	s.contracts[c.ID] = c
	return nil
}
