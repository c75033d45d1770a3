package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

func TestSubmitWorkTransitionsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.contract(t, 500, nil)

	first := f.submit(t, c.ID, "ref-1")
	assert.Equal(t, domain.ContractWorkSubmitted, first.Contract.Status)
	assert.Equal(t, first.Submission.ID, first.Contract.SubmissionID)

	second := f.submit(t, c.ID, "ref-2")
	assert.Equal(t, domain.ContractWorkSubmitted, second.Contract.Status)
	assert.Equal(t, second.Submission.ID, second.Contract.SubmissionID)

	subs, err := f.uc.Submissions(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "ref-1", subs[0].ContentRef)
	assert.Equal(t, "ref-2", subs[1].ContentRef)

	assert.Equal(t, []domain.ContractStatus{
		domain.ContractEscrowFunded,
		domain.ContractWorkSubmitted,
	}, f.published(), "resubmission must not emit a transition")
}

func TestSubmitWorkValidation(t *testing.T) {
	f := newFixture(t)
	c := f.contract(t, 500, nil)

	_, err := f.uc.SubmitWork(context.Background(), c.ID, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.SubmitWork(context.Background(), "missing", "ref")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTerminateReleasesCommitment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.contract(t, 500, nil)
	res := f.submit(t, c.ID, "ref-1")

	terminated, err := f.uc.Terminate(ctx, c.ID, "creator withdrew")
	require.NoError(t, err)
	assert.Equal(t, domain.ContractTerminated, terminated.Status)

	camp, err := f.store.GetCampaign(ctx, c.CampaignID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), camp.Committed)

	_, err = f.uc.Terminate(ctx, c.ID, "again")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.uc.SubmitWork(ctx, c.ID, "ref-2")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.uc.RecordAudit(ctx, port.RecordAuditInput{SubmissionID: res.Submission.ID, Score: 0.9})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	f.mu.Lock()
	last := f.events[len(f.events)-1]
	f.mu.Unlock()
	assert.Equal(t, domain.ContractTerminated, last.To)
	assert.Equal(t, "creator withdrew", last.Reason)
}

func TestTerminateSettledContractFails(t *testing.T) {
	f := newFixture(t)
	c, report := f.audited(t, 500, nil, 0.9, 0)
	f.expectPayment(500, "rcpt_1").Once()

	_, err := f.uc.Settle(context.Background(), c.ID, report.ID)
	require.NoError(t, err)

	_, err = f.uc.Terminate(context.Background(), c.ID, "too late")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, domain.ContractSettled, f.status(t, c.ID))
}
