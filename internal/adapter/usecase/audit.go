package usecase

import (
	"context"
	"fmt"
	"math"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

// RecordAudit stores the audit report of a submission. It only enforces the
// gating contract (one immutable report per submission of a live contract);
// whether the report authorizes a payout is decided by Settle. The contract
// lock is held from the status check to the insert so a concurrent
// Terminate cannot slip in between.
func (u *DealUseCase) RecordAudit(ctx context.Context, in port.RecordAuditInput) (*domain.AuditReport, error) {
	if math.IsNaN(in.Score) || in.Score < 0 || in.Score > 1 {
		return nil, fmt.Errorf("%w: score %v outside [0,1]", domain.ErrInvalidInput, in.Score)
	}
	if in.Tier < 0 {
		return nil, fmt.Errorf("%w: tier %d is negative", domain.ErrInvalidInput, in.Tier)
	}
	sub, err := u.store.GetSubmission(ctx, in.SubmissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("%w: submission %s", domain.ErrNotFound, in.SubmissionID)
	}
	unlock, err := u.lockContract(ctx, sub.ContractID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := u.GetContract(ctx, sub.ContractID)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.ContractWorkSubmitted {
		return nil, fmt.Errorf("%w: contract %s is %s", domain.ErrInvalidState, c.ID, c.Status)
	}

	report := domain.AuditReport{
		ID:           u.newID(),
		SubmissionID: sub.ID,
		Score:        in.Score,
		Tier:         in.Tier,
		Reasoning:    in.Reasoning,
		GeneratedAt:  u.nowFn(),
	}
	if err = u.store.CreateAuditReport(ctx, report); err != nil {
		return nil, err
	}
	return &report, nil
}

// AuditForSubmission returns the report recorded for a submission.
func (u *DealUseCase) AuditForSubmission(ctx context.Context, submissionID string) (*domain.AuditReport, error) {
	r, err := u.store.GetAuditReportBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: audit report for submission %s", domain.ErrNotFound, submissionID)
	}
	return r, nil
}
