package port

import (
	"context"

	"dealflow/internal/core/domain"
)

// DealUseCase defines the business operations exposed by the deal engine.
// This interface represents the primary port into the application domain
// and is what the HTTP adapter depends on.
type DealUseCase interface {
	// CreateCampaign registers an active campaign for an advertiser.
	CreateCampaign(ctx context.Context, in CreateCampaignInput) (*domain.Campaign, error)

	// PlaceBid records a creator's offer against a campaign. The initial ask
	// becomes round 1 of the negotiation log.
	PlaceBid(ctx context.Context, in PlaceBidInput) (*domain.AutoBid, error)

	// CancelBid withdraws an open bid.
	CancelBid(ctx context.Context, bidID string) (*domain.AutoBid, error)

	// AppendRound appends the next negotiation round to an open bid.
	AppendRound(ctx context.Context, in AppendRoundInput) (*domain.NegotiationRound, error)

	// History returns the full negotiation log of a bid ordered by round.
	History(ctx context.Context, bidID string) ([]domain.NegotiationRound, error)

	// SelectWinner accepts a bid and forms the escrow-funded contract for its
	// campaign. It fails with domain.ErrConflict when the campaign already
	// has a contract, the bid is not selectable or the budget is exhausted.
	SelectWinner(ctx context.Context, in SelectWinnerInput) (*Selection, error)

	// GetContract returns the current state of a contract.
	GetContract(ctx context.Context, contractID string) (*domain.Contract, error)

	// SubmitWork records a content submission and drives the contract to
	// work_submitted. Resubmission replaces the current submission.
	SubmitWork(ctx context.Context, contractID, contentRef string) (*SubmitResult, error)

	// Submissions returns every submission recorded for a contract.
	Submissions(ctx context.Context, contractID string) ([]domain.ContentSubmission, error)

	// Terminate cancels a contract that has not reached a terminal state.
	Terminate(ctx context.Context, contractID, reason string) (*domain.Contract, error)

	// RecordAudit stores the immutable audit report of a submission.
	RecordAudit(ctx context.Context, in RecordAuditInput) (*domain.AuditReport, error)

	// AuditForSubmission returns the audit report of a submission.
	AuditForSubmission(ctx context.Context, submissionID string) (*domain.AuditReport, error)

	// Settle pays out an audited contract exactly once. When the contract was
	// already settled the existing settlement is returned together with
	// domain.ErrAlreadySettled.
	Settle(ctx context.Context, contractID, auditReportID string) (*domain.Settlement, error)

	// SettlementForContract returns the settlement of a contract.
	SettlementForContract(ctx context.Context, contractID string) (*domain.Settlement, error)
}

type CreateCampaignInput struct {
	AdvertiserID string
	Title        string
	Budget       int64
}

type PlaceBidInput struct {
	CampaignID string
	CreatorID  string
	Amount     int64
	Reasoning  string
}

type AppendRoundInput struct {
	BidID      string
	Price      int64
	Concession string
	Reasoning  string
}

// SelectWinnerInput names the winning bid and the terms frozen into the new
// contract.
type SelectWinnerInput struct {
	CampaignID    string
	BidID         string
	Tiers         []domain.TierBonus
	AuditCriteria string
}

// Selection is returned by SelectWinner. Rationale is a human readable
// summary of why the bid could be accepted.
type Selection struct {
	Contract  domain.Contract
	Rationale string
}

type SubmitResult struct {
	Contract   domain.Contract
	Submission domain.ContentSubmission
}

type RecordAuditInput struct {
	SubmissionID string
	Score        float64
	Tier         int
	Reasoning    string
}
