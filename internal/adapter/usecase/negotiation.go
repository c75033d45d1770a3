package usecase

import (
	"context"
	"fmt"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

// AppendRound appends the next round to the bid's negotiation log and makes
// its price the current bid amount. Concurrent appends for the same bid race
// on the round number and the bid version; the loser gets domain.ErrConflict
// and may retry.
func (u *DealUseCase) AppendRound(ctx context.Context, in port.AppendRoundInput) (*domain.NegotiationRound, error) {
	bid, err := u.store.GetBid(ctx, in.BidID)
	if err != nil {
		return nil, err
	}
	if bid == nil {
		return nil, fmt.Errorf("%w: bid %s", domain.ErrNotFound, in.BidID)
	}
	if !bid.Open() {
		return nil, fmt.Errorf("%w: bid %s is %s", domain.ErrInvalidState, bid.ID, bid.Status)
	}
	history, err := u.store.ListRounds(ctx, bid.ID)
	if err != nil {
		return nil, err
	}
	if err = domain.ValidateRounds(history); err != nil {
		return nil, err
	}

	now := u.nowFn()
	round, err := domain.NextRound(history, bid.ID, in.Price, in.Concession, in.Reasoning, now)
	if err != nil {
		return nil, err
	}
	prev := bid.Version()
	bid.Amount = round.Price
	bid.Status = domain.StatusAfterRound(prev.Status, round.Round)
	bid.UpdatedAt = now
	if err = u.store.AppendRound(ctx, round, *bid, prev); err != nil {
		return nil, err
	}
	return &round, nil
}

// History returns the negotiation log of a bid ordered by round number.
func (u *DealUseCase) History(ctx context.Context, bidID string) ([]domain.NegotiationRound, error) {
	bid, err := u.store.GetBid(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid == nil {
		return nil, fmt.Errorf("%w: bid %s", domain.ErrNotFound, bidID)
	}
	return u.store.ListRounds(ctx, bidID)
}
