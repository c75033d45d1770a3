package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

func TestRecordAuditOncePerSubmission(t *testing.T) {
	f := newFixture(t)
	c := f.contract(t, 500, nil)
	res := f.submit(t, c.ID, "ref-1")
	f.audit(t, res.Submission.ID, 0.8, 1)

	_, err := f.uc.RecordAudit(context.Background(), port.RecordAuditInput{SubmissionID: res.Submission.ID, Score: 0.9})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRecordAuditValidation(t *testing.T) {
	f := newFixture(t)
	c := f.contract(t, 500, nil)
	res := f.submit(t, c.ID, "ref-1")

	for name, in := range map[string]port.RecordAuditInput{
		"score above one": {SubmissionID: res.Submission.ID, Score: 1.5},
		"negative score":  {SubmissionID: res.Submission.ID, Score: -0.1},
		"nan score":       {SubmissionID: res.Submission.ID, Score: math.NaN()},
		"negative tier":   {SubmissionID: res.Submission.ID, Score: 0.5, Tier: -1},
	} {
		_, err := f.uc.RecordAudit(context.Background(), in)
		assert.ErrorIsf(t, err, domain.ErrInvalidInput, name)
	}

	_, err := f.uc.RecordAudit(context.Background(), port.RecordAuditInput{SubmissionID: "missing", Score: 0.5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuditForSubmission(t *testing.T) {
	f := newFixture(t)
	c := f.contract(t, 500, nil)
	res := f.submit(t, c.ID, "ref-1")

	_, err := f.uc.AuditForSubmission(context.Background(), res.Submission.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	want := f.audit(t, res.Submission.ID, 0.7, 1)
	got, err := f.uc.AuditForSubmission(context.Background(), res.Submission.ID)
	assert.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestRecordAuditHoldsContractLock(t *testing.T) {
	f := newFixture(t)
	c := f.contract(t, 500, nil)
	res := f.submit(t, c.ID, "ref-1")

	var terminateErr error
	h := f.hooked()
	h.onAuditSave = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, terminateErr = f.uc.Terminate(ctx, c.ID, "advertiser withdrew")
	}

	f.audit(t, res.Submission.ID, 0.9, 1)
	assert.ErrorIs(t, terminateErr, context.DeadlineExceeded)
	assert.Equal(t, domain.ContractWorkSubmitted, f.status(t, c.ID))
}
