package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

// GetContract returns the current state of a contract.
func (u *DealUseCase) GetContract(ctx context.Context, contractID string) (*domain.Contract, error) {
	c, err := u.store.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: contract %s", domain.ErrNotFound, contractID)
	}
	return c, nil
}

// SubmitWork records a content submission. An escrow-funded contract moves
// to work_submitted; a contract already in work_submitted only has its
// current submission replaced. Earlier submissions stay in the store.
func (u *DealUseCase) SubmitWork(ctx context.Context, contractID, contentRef string) (*port.SubmitResult, error) {
	if strings.TrimSpace(contentRef) == "" {
		return nil, fmt.Errorf("%w: content reference is required", domain.ErrInvalidInput)
	}
	unlock, err := u.lockContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := u.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	now := u.nowFn()
	prev := c.Status
	var events []domain.ContractEvent
	switch c.Status {
	case domain.ContractEscrowFunded:
		ev, err := c.Transition(domain.ContractWorkSubmitted, now)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	case domain.ContractWorkSubmitted:
		c.UpdatedAt = now
	default:
		return nil, fmt.Errorf("%w: contract %s is %s and accepts no submissions", domain.ErrInvalidState, c.ID, c.Status)
	}

	sub := domain.ContentSubmission{
		ID:          u.newID(),
		ContractID:  c.ID,
		ContentRef:  contentRef,
		SubmittedAt: now,
	}
	c.SubmissionID = sub.ID
	if err = u.store.RecordSubmission(ctx, sub, *c, prev); err != nil {
		return nil, err
	}
	u.publish(ctx, events...)
	return &port.SubmitResult{Contract: *c, Submission: sub}, nil
}

// Submissions returns every submission of a contract, oldest first.
func (u *DealUseCase) Submissions(ctx context.Context, contractID string) ([]domain.ContentSubmission, error) {
	if _, err := u.GetContract(ctx, contractID); err != nil {
		return nil, err
	}
	return u.store.ListSubmissions(ctx, contractID)
}

// Terminate cancels a non-terminal contract and returns its base payout to
// the campaign budget. It waits for any settlement in flight on the same
// contract; a contract settled meanwhile can no longer be terminated.
func (u *DealUseCase) Terminate(ctx context.Context, contractID, reason string) (*domain.Contract, error) {
	unlock, err := u.lockContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := u.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	prev := c.Status
	ev, err := c.Transition(domain.ContractTerminated, u.nowFn())
	if err != nil {
		return nil, err
	}
	ev.Reason = reason
	if err = u.store.UpdateContract(ctx, *c, prev); err != nil {
		return nil, err
	}
	// Released contracts have already paid out; their commitment is spent.
	if prev == domain.ContractReleased {
		u.publish(ctx, ev)
		return c, nil
	}
	if err = u.store.AdjustCommitment(ctx, c.CampaignID, -c.BasePayout); err != nil {
		u.logger.Error("release campaign commitment",
			slog.String("contract_id", c.ID),
			slog.String("campaign_id", c.CampaignID),
			slog.Any("error", err))
	}
	u.publish(ctx, ev)
	return c, nil
}
