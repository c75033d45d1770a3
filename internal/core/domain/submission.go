package domain

import "time"

// ContentSubmission is a creator-submitted artifact for a contract. Earlier
// submissions are kept when a contract is resubmitted.
type ContentSubmission struct {
	ID          string
	ContractID  string
	ContentRef  string
	SubmittedAt time.Time
}

// AuditReport is the immutable outcome of evaluating one submission.
type AuditReport struct {
	ID           string
	SubmissionID string
	Score        float64
	Tier         int
	Reasoning    string
	GeneratedAt  time.Time
}
