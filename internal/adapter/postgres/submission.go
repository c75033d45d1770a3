package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"dealflow/internal/core/domain"
)

// RecordSubmission inserts the submission and repoints the contract at it in
// one transaction.
func (s *Store) RecordSubmission(ctx context.Context, sub domain.ContentSubmission, c domain.Contract, expected domain.ContractStatus) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO content_submissions (id, contract_id, content_ref, submitted_at) VALUES ($1,$2,$3,$4)`,
			sub.ID, sub.ContractID, sub.ContentRef, sub.SubmittedAt)
		if err != nil {
			return err
		}
		return updateContract(ctx, tx, c, expected)
	})
}

// GetSubmission returns a submission by id.
func (s *Store) GetSubmission(ctx context.Context, id string) (*domain.ContentSubmission, error) {
	var sub domain.ContentSubmission
	err := s.pool.QueryRow(ctx, `SELECT id, contract_id, content_ref, submitted_at FROM content_submissions WHERE id = $1`, id).
		Scan(&sub.ID, &sub.ContractID, &sub.ContentRef, &sub.SubmittedAt)
	return noRows(&sub, err)
}

// ListSubmissions returns the submissions of a contract, oldest first.
func (s *Store) ListSubmissions(ctx context.Context, contractID string) ([]domain.ContentSubmission, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, contract_id, content_ref, submitted_at FROM content_submissions WHERE contract_id = $1 ORDER BY submitted_at, id`, contractID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ContentSubmission, error) {
		var sub domain.ContentSubmission
		err := row.Scan(&sub.ID, &sub.ContractID, &sub.ContentRef, &sub.SubmittedAt)
		return sub, err
	})
}

const reportColumns = `id, submission_id, score, tier, reasoning, generated_at`

// CreateAuditReport inserts a report; the unique submission_id rejects a
// second report for the same submission.
func (s *Store) CreateAuditReport(ctx context.Context, r domain.AuditReport) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO audit_reports (`+reportColumns+`) VALUES ($1,$2,$3,$4,$5,$6)`,
		r.ID, r.SubmissionID, r.Score, r.Tier, r.Reasoning, r.GeneratedAt)
	return mapError(err)
}

// GetAuditReport returns a report by id.
func (s *Store) GetAuditReport(ctx context.Context, id string) (*domain.AuditReport, error) {
	return scanReport(s.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM audit_reports WHERE id = $1`, id))
}

// GetAuditReportBySubmission returns the report of a submission.
func (s *Store) GetAuditReportBySubmission(ctx context.Context, submissionID string) (*domain.AuditReport, error) {
	return scanReport(s.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM audit_reports WHERE submission_id = $1`, submissionID))
}

func scanReport(row pgx.Row) (*domain.AuditReport, error) {
	var r domain.AuditReport
	err := row.Scan(&r.ID, &r.SubmissionID, &r.Score, &r.Tier, &r.Reasoning, &r.GeneratedAt)
	return noRows(&r, err)
}
