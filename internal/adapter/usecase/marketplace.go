package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

// CreateCampaign registers an active campaign.
func (u *DealUseCase) CreateCampaign(ctx context.Context, in port.CreateCampaignInput) (*domain.Campaign, error) {
	if strings.TrimSpace(in.AdvertiserID) == "" {
		return nil, fmt.Errorf("%w: advertiser id is required", domain.ErrInvalidInput)
	}
	if in.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must not be negative", domain.ErrInvalidInput)
	}
	now := u.nowFn()
	c := domain.Campaign{
		ID:           u.newID(),
		AdvertiserID: in.AdvertiserID,
		Title:        in.Title,
		Budget:       in.Budget,
		Status:       domain.CampaignActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.store.CreateCampaign(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// PlaceBid records a creator's offer. The offered amount is stored as the
// first negotiation round, the initial ask.
func (u *DealUseCase) PlaceBid(ctx context.Context, in port.PlaceBidInput) (*domain.AutoBid, error) {
	if strings.TrimSpace(in.CreatorID) == "" {
		return nil, fmt.Errorf("%w: creator id is required", domain.ErrInvalidInput)
	}
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
		return nil, fmt.Errorf("%w: campaign %s already has a contract", domain.ErrConflict, camp.ID)
	}

	now := u.nowFn()
	bid := domain.AutoBid{
		ID:         u.newID(),
		CampaignID: camp.ID,
		CreatorID:  in.CreatorID,
		Amount:     in.Amount,
		Status:     domain.BidProposed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	ask, err := domain.NextRound(nil, bid.ID, in.Amount, "initial ask", in.Reasoning, now)
	if err != nil {
		return nil, err
	}
	if err = u.store.CreateBid(ctx, bid, ask); err != nil {
		return nil, err
	}
	return &bid, nil
}

// CancelBid withdraws an open bid. Accepted and cancelled bids cannot be
// cancelled.
func (u *DealUseCase) CancelBid(ctx context.Context, bidID string) (*domain.AutoBid, error) {
	bid, err := u.store.GetBid(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid == nil {
		return nil, fmt.Errorf("%w: bid %s", domain.ErrNotFound, bidID)
	}
	if !bid.Open() {
		return nil, fmt.Errorf("%w: bid %s is %s", domain.ErrInvalidState, bid.ID, bid.Status)
	}
	prev := bid.Version()
	bid.Status = domain.BidCancelled
	bid.UpdatedAt = u.nowFn()
	if err = u.store.UpdateBid(ctx, *bid, prev); err != nil {
		return nil, err
	}
	return bid, nil
}

// cancelSiblings cancels the open bids of a campaign other than winnerID.
// Bids that changed state concurrently are skipped.
func (u *DealUseCase) cancelSiblings(ctx context.Context, campaignID, winnerID string) error {
	bids, err := u.store.ListBids(ctx, campaignID)
	if err != nil {
		return err
	}
	for _, b := range bids {
		if b.ID == winnerID || !b.Open() {
			continue
		}
		prev := b.Version()
		b.Status = domain.BidCancelled
		b.UpdatedAt = u.nowFn()
		if err = u.store.UpdateBid(ctx, b, prev); err != nil && !errors.Is(err, domain.ErrConflict) {
			return err
		}
	}
	return nil
}
