package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

// Settle pays out an audited contract exactly once.
//
// Preconditions are checked in order: the contract is work_submitted, the
// audit report belongs to its current submission, no settlement exists and
// the audit score reaches the minimum. The payment request is then built
// (phase A) before anything is mutated. Under the per-contract lock all
// preconditions are re-read, the transfer is executed (phase B) under a
// timeout, and only on success is the settlement written and the contract
// moved to released and settled.
//
// A contract that already has a settlement yields that settlement together
// with domain.ErrAlreadySettled, which makes retries safe. A failed
// execution leaves no settlement behind and the contract in work_submitted.
func (u *DealUseCase) Settle(ctx context.Context, contractID, auditReportID string) (*domain.Settlement, error) {
	c, err := u.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	switch c.Status {
	case domain.ContractWorkSubmitted:
	case domain.ContractReleased, domain.ContractSettled:
		return u.existingSettlement(ctx, contractID)
	default:
		return nil, fmt.Errorf("%w: contract %s is %s", domain.ErrInvalidState, c.ID, c.Status)
	}

	report, err := u.settleableReport(ctx, c, auditReportID)
	if err != nil {
		return nil, err
	}
	existing, err := u.store.GetSettlementByContract(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return u.existingSettlement(ctx, contractID)
	}
	if report.Score < u.cfg.MinScore {
		u.logger.Info("payout rejected",
			slog.String("contract_id", c.ID),
			slog.String("audit_report_id", report.ID),
			slog.Float64("score", report.Score),
			slog.Float64("min_score", u.cfg.MinScore))
		return nil, fmt.Errorf("%w: score %.2f < %.2f, resubmission remains open", domain.ErrScoreTooLow, report.Score, u.cfg.MinScore)
	}

	total := domain.Payout(c.BasePayout, c.Tiers, report.Tier)
	req, err := u.rail.CreatePaymentRequest(ctx, total, u.cfg.Currency)
	if err != nil {
		return nil, payoutFailed(c.ID, "payment request", err)
	}

	unlock, err := u.lockContract(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err = u.GetContract(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	existing, err = u.store.GetSettlementByContract(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return u.alreadySettledLocked(ctx, c, existing)
	}
	switch {
	case c.Status == domain.ContractTerminated:
		return nil, fmt.Errorf("%w: contract %s was terminated during settlement", domain.ErrConflict, c.ID)
	case c.Status != domain.ContractWorkSubmitted:
		return nil, fmt.Errorf("%w: contract %s is %s", domain.ErrInvalidState, c.ID, c.Status)
	case c.SubmissionID != report.SubmissionID:
		return nil, fmt.Errorf("%w: contract %s was resubmitted during settlement", domain.ErrInvalidState, c.ID)
	}

	execCtx, cancel := context.WithTimeout(ctx, u.cfg.PaymentTimeout)
	defer cancel()
	receipt, err := u.rail.ExecutePayment(execCtx, port.PaymentOrder{
		Payer:          c.AdvertiserID,
		Payee:          c.CreatorID,
		Amount:         total,
		Request:        req,
		IdempotencyKey: idempotencyKey(c.ID),
	})
	if err == nil && execCtx.Err() != nil {
		err = execCtx.Err()
	}
	if err != nil {
		u.logger.Warn("payout execution failed",
			slog.String("contract_id", c.ID),
			slog.Int64("amount", total),
			slog.Any("error", err))
		return nil, payoutFailed(c.ID, "execute payment", err)
	}

	reportID := report.ID
	st := domain.Settlement{
		ID:              u.newID(),
		ContractID:      c.ID,
		AuditReportID:   &reportID,
		HandshakeHeader: req.Header,
		Receipt:         receipt,
		TotalPaid:       total,
		Currency:        u.cfg.Currency,
		Status:          domain.SettlementSettled,
		CreatedAt:       u.nowFn(),
	}
	if err = u.store.CreateSettlement(ctx, st); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			if existing, _ = u.store.GetSettlementByContract(ctx, c.ID); existing != nil {
				return u.alreadySettledLocked(ctx, c, existing)
			}
		}
		u.logger.Error("record settlement after successful payment",
			slog.String("contract_id", c.ID),
			slog.String("receipt", receipt),
			slog.Any("error", err))
		return nil, err
	}
	if err = u.completeRelease(ctx, c, st); err != nil {
		return &st, err
	}

	u.logger.Info("contract settled",
		slog.String("contract_id", c.ID),
		slog.String("settlement_id", st.ID),
		slog.Int64("total_paid", st.TotalPaid))
	return &st, nil
}

// SettlementForContract returns the settlement recorded for a contract.
func (u *DealUseCase) SettlementForContract(ctx context.Context, contractID string) (*domain.Settlement, error) {
	if _, err := u.GetContract(ctx, contractID); err != nil {
		return nil, err
	}
	st, err := u.store.GetSettlementByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("%w: settlement for contract %s", domain.ErrNotFound, contractID)
	}
	return st, nil
}

// settleableReport loads the audit report and checks that it evaluates the
// contract's current submission.
func (u *DealUseCase) settleableReport(ctx context.Context, c *domain.Contract, auditReportID string) (*domain.AuditReport, error) {
	report, err := u.store.GetAuditReport(ctx, auditReportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, fmt.Errorf("%w: audit report %s", domain.ErrNotFound, auditReportID)
	}
	sub, err := u.store.GetSubmission(ctx, report.SubmissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.ContractID != c.ID {
		return nil, fmt.Errorf("%w: audit report %s for contract %s", domain.ErrNotFound, report.ID, c.ID)
	}
	if sub.ID != c.SubmissionID {
		return nil, fmt.Errorf("%w: audit report %s evaluates superseded submission %s", domain.ErrInvalidState, report.ID, sub.ID)
	}
	return report, nil
}

// existingSettlement returns the settlement of a contract that is past the
// payment step, finishing any transition left behind by an interrupted run.
func (u *DealUseCase) existingSettlement(ctx context.Context, contractID string) (*domain.Settlement, error) {
	unlock, err := u.lockContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := u.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	st, err := u.store.GetSettlementByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("%w: contract %s is %s without a settlement", domain.ErrInvalidState, c.ID, c.Status)
	}
	return u.alreadySettledLocked(ctx, c, st)
}

func (u *DealUseCase) alreadySettledLocked(ctx context.Context, c *domain.Contract, st *domain.Settlement) (*domain.Settlement, error) {
	if err := u.completeRelease(ctx, c, *st); err != nil {
		return st, err
	}
	return st, fmt.Errorf("%w: contract %s settlement %s", domain.ErrAlreadySettled, c.ID, st.ID)
}

// completeRelease walks a paid contract through released and settled. Both
// steps are skipped when already taken. The caller holds the contract lock.
func (u *DealUseCase) completeRelease(ctx context.Context, c *domain.Contract, st domain.Settlement) error {
	if c.Status == domain.ContractWorkSubmitted {
		c.ReleaseRef = st.Receipt
		if err := u.step(ctx, c, domain.ContractReleased); err != nil {
			return err
		}
	}
	if c.Status == domain.ContractReleased {
		if err := u.step(ctx, c, domain.ContractSettled); err != nil {
			return err
		}
	}
	return nil
}

func (u *DealUseCase) step(ctx context.Context, c *domain.Contract, to domain.ContractStatus) error {
	prev := c.Status
	ev, err := c.Transition(to, u.nowFn())
	if err != nil {
		return err
	}
	if err = u.store.UpdateContract(ctx, *c, prev); err != nil {
		return err
	}
	u.publish(ctx, ev)
	return nil
}

// idempotencyKey is stable for a contract so the rail can deduplicate
// retried transfers.
func idempotencyKey(contractID string) string {
	return "settle-" + contractID
}

func payoutFailed(contractID, phase string, err error) error {
	if errors.Is(err, domain.ErrPayoutExecutionFailed) {
		return fmt.Errorf("contract %s: %s: %w", contractID, phase, err)
	}
	return fmt.Errorf("%w: contract %s: %s: %w", domain.ErrPayoutExecutionFailed, contractID, phase, err)
}
