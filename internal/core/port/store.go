package port

import (
	"context"

	"dealflow/internal/core/domain"
)

// Store is the entity store shared by every component. It is an outbound
// port in hexagonal architecture. Getters return nil, nil when the record does
// not exist. Implementations must be concurrency-safe and enforce the
// uniqueness constraints documented on each method atomically; a violated
// constraint or a failed status compare-and-set is reported as
// domain.ErrConflict.
type Store interface {
	CampaignStore
	BidStore
	ContractStore
	SubmissionStore
	SettlementStore
}

// CampaignStore persists campaigns and their budget bookkeeping.
type CampaignStore interface {
	CreateCampaign(ctx context.Context, c domain.Campaign) error
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// AdjustCommitment adds delta to the committed amount of a campaign.
	AdjustCommitment(ctx context.Context, campaignID string, delta int64) error
}

// BidStore persists bids and their negotiation logs.
type BidStore interface {
	// CreateBid stores a new bid together with its initial ask as round 1.
	CreateBid(ctx context.Context, bid domain.AutoBid, ask domain.NegotiationRound) error
	GetBid(ctx context.Context, id string) (*domain.AutoBid, error)
	ListBids(ctx context.Context, campaignID string) ([]domain.AutoBid, error)
	// UpdateBid replaces the bid if its stored status and amount still equal
	// expected.
	UpdateBid(ctx context.Context, bid domain.AutoBid, expected domain.BidVersion) error
	// AppendRound inserts round and replaces the bid in one write. The round
	// number is unique per bid and the bid is compared against expected.
	AppendRound(ctx context.Context, round domain.NegotiationRound, bid domain.AutoBid, expected domain.BidVersion) error
	// ListRounds returns the negotiation log ordered by round number.
	ListRounds(ctx context.Context, bidID string) ([]domain.NegotiationRound, error)
}

// ContractStore persists contracts.
type ContractStore interface {
	// CreateContract inserts the contract, moves bid to its new status (compared
	// against expected) and commits the base payout against the campaign
	// budget in one write. Campaign id and bid id are unique across contracts.
	// An exhausted budget is reported as domain.ErrBudgetExceeded.
	CreateContract(ctx context.Context, c domain.Contract, bid domain.AutoBid, expected domain.BidVersion) error
	GetContract(ctx context.Context, id string) (*domain.Contract, error)
	GetContractByCampaign(ctx context.Context, campaignID string) (*domain.Contract, error)
	// UpdateContract replaces the contract if its stored status still equals
	// expected.
	UpdateContract(ctx context.Context, c domain.Contract, expected domain.ContractStatus) error
}

// SubmissionStore persists content submissions and their audit reports.
type SubmissionStore interface {
	// RecordSubmission inserts s and replaces the owning contract (compared on
	// expected status) in one write.
	RecordSubmission(ctx context.Context, s domain.ContentSubmission, c domain.Contract, expected domain.ContractStatus) error
	GetSubmission(ctx context.Context, id string) (*domain.ContentSubmission, error)
	ListSubmissions(ctx context.Context, contractID string) ([]domain.ContentSubmission, error)
	// CreateAuditReport inserts r. Submission id is unique across reports.
	CreateAuditReport(ctx context.Context, r domain.AuditReport) error
	GetAuditReport(ctx context.Context, id string) (*domain.AuditReport, error)
	GetAuditReportBySubmission(ctx context.Context, submissionID string) (*domain.AuditReport, error)
}

// SettlementStore persists settlements.
type SettlementStore interface {
	// CreateSettlement inserts s. Contract id is unique across settlements.
	CreateSettlement(ctx context.Context, s domain.Settlement) error
	GetSettlementByContract(ctx context.Context, contractID string) (*domain.Settlement, error)
}
