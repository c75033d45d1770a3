package domain

import (
	"fmt"
	"time"
)

// NegotiationRound is one entry of a bid's append-only negotiation log.
type NegotiationRound struct {
	BidID      string
	Round      int
	Price      int64
	Concession string
	Reasoning  string
	CreatedAt  time.Time
}

// NextRound builds the round that follows history. Round numbers start at 1
// and are contiguous; history must already satisfy ValidateRounds.
func NextRound(history []NegotiationRound, bidID string, price int64, concession, reasoning string, at time.Time) (NegotiationRound, error) {
	if price <= 0 {
		return NegotiationRound{}, fmt.Errorf("%w: round price must be positive", ErrInvalidInput)
	}
	return NegotiationRound{
		BidID:      bidID,
		Round:      len(history) + 1,
		Price:      price,
		Concession: concession,
		Reasoning:  reasoning,
		CreatedAt:  at,
	}, nil
}

// ValidateRounds checks that rounds are numbered 1..n without gaps or
// duplicates and all belong to the same bid.
func ValidateRounds(rounds []NegotiationRound) error {
	for i, r := range rounds {
		if r.Round != i+1 {
			return fmt.Errorf("%w: round %d at position %d", ErrInvalidState, r.Round, i+1)
		}
		if r.BidID != rounds[0].BidID {
			return fmt.Errorf("%w: round %d belongs to bid %s", ErrInvalidState, r.Round, r.BidID)
		}
	}
	return nil
}

// StatusAfterRound returns the bid status once round has been appended. The
// first round is the initial ask; anything beyond it moves a proposed bid into
// negotiation.
func StatusAfterRound(current BidStatus, round int) BidStatus {
	if current == BidProposed && round > 1 {
		return BidNegotiating
	}
	return current
}
