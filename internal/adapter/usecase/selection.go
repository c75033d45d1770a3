package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

// SelectWinner accepts bid in.BidID for campaign in.CampaignID and forms its
// contract. The bid acceptance, the contract insert and the budget
// commitment are a single store write; the store's unique index on the
// contract's campaign makes a concurrent second selection fail with
// domain.ErrConflict. The bid write is compared against the version read
// here, so a negotiation round that lands in between also fails the
// selection with domain.ErrConflict instead of being overwritten.
func (u *DealUseCase) SelectWinner(ctx context.Context, in port.SelectWinnerInput) (*port.Selection, error) {
	camp, err := u.store.GetCampaign(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if camp == nil {
		return nil, fmt.Errorf("%w: campaign %s", domain.ErrNotFound, in.CampaignID)
	}
	if camp.Status != domain.CampaignActive {
		return nil, fmt.Errorf("%w: campaign %s is %s", domain.ErrInvalidState, camp.ID, camp.Status)
	}
	existing, err := u.store.GetContractByCampaign(ctx, camp.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: campaign %s already has contract %s", domain.ErrConflict, camp.ID, existing.ID)
	}
	bid, err := u.store.GetBid(ctx, in.BidID)
	if err != nil {
		return nil, err
	}
	if bid == nil || bid.CampaignID != camp.ID {
		return nil, fmt.Errorf("%w: bid %s in campaign %s", domain.ErrNotFound, in.BidID, camp.ID)
	}
	if !bid.Open() {
		return nil, fmt.Errorf("%w: bid %s is %s", domain.ErrConflict, bid.ID, bid.Status)
	}
	tiers, err := domain.NormalizeTiers(in.Tiers)
	if err != nil {
		return nil, err
	}
	if bid.Amount > camp.Remaining() {
		return nil, fmt.Errorf("%w: bid %d exceeds remaining %d", domain.ErrBudgetExceeded, bid.Amount, camp.Remaining())
	}
	rounds, err := u.store.ListRounds(ctx, bid.ID)
	if err != nil {
		return nil, err
	}

	now := u.nowFn()
	contract := domain.Contract{
		ID:            u.newID(),
		CampaignID:    camp.ID,
		AutoBidID:     bid.ID,
		AdvertiserID:  camp.AdvertiserID,
		CreatorID:     bid.CreatorID,
		BasePayout:    bid.Amount,
		Tiers:         tiers,
		AuditCriteria: in.AuditCriteria,
		Status:        domain.ContractDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// Escrow is confirmed synchronously with creation, so the draft state is
	// left before the contract is ever persisted.
	ev, err := contract.Transition(domain.ContractEscrowFunded, now)
	if err != nil {
		return nil, err
	}
	contract.EscrowRef = "esc_" + u.newID()

	prev := bid.Version()
	accepted := *bid
	accepted.Status = domain.BidAccepted
	accepted.UpdatedAt = now
	if err = u.store.CreateContract(ctx, contract, accepted, prev); err != nil {
		return nil, err
	}
	u.publish(ctx, ev)

	if u.cfg.SiblingPolicy == SiblingCancel {
		if err = u.cancelSiblings(ctx, camp.ID, bid.ID); err != nil {
			u.logger.Warn("cancel sibling bids",
				slog.String("campaign_id", camp.ID),
				slog.Any("error", err))
		}
	}

	u.logger.Info("contract formed",
		slog.String("contract_id", contract.ID),
		slog.String("campaign_id", camp.ID),
		slog.String("bid_id", bid.ID),
		slog.Int64("base_payout", contract.BasePayout))

	return &port.Selection{
		Contract: contract,
		Rationale: fmt.Sprintf("bid %s accepted at %d after %d negotiation round(s); %d of budget %d remains uncommitted",
			bid.ID, bid.Amount, len(rounds), camp.Remaining()-bid.Amount, camp.Budget),
	}, nil
}
