package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port"
)

func TestSelectWinnerFormsEscrowFundedContract(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	camp := f.campaign(t, 5000)
	b := f.bid(t, camp.ID, 1200)

	sel, err := f.uc.SelectWinner(ctx, port.SelectWinnerInput{
		CampaignID: camp.ID,
		BidID:      b.ID,
		Tiers:      []domain.TierBonus{{Tier: 2, Bonus: 200}, {Tier: 1, Bonus: 50}},
	})
	require.NoError(t, err)

	c := sel.Contract
	assert.Equal(t, domain.ContractEscrowFunded, c.Status)
	assert.NotEmpty(t, c.EscrowRef)
	assert.Equal(t, int64(1200), c.BasePayout)
	assert.Equal(t, []domain.TierBonus{{Tier: 1, Bonus: 50}, {Tier: 2, Bonus: 200}}, c.Tiers)
	assert.Contains(t, sel.Rationale, b.ID)

	bid, err := f.store.GetBid(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BidAccepted, bid.Status)

	updated, err := f.store.GetCampaign(ctx, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), updated.Committed)

	assert.Equal(t, []domain.ContractStatus{domain.ContractEscrowFunded}, f.published())
}

func TestSelectWinnerBudgetExceeded(t *testing.T) {
	f := newFixture(t)
	camp := f.campaign(t, 1000)
	b := f.bid(t, camp.ID, 1200)

	_, err := f.uc.SelectWinner(context.Background(), port.SelectWinnerInput{CampaignID: camp.ID, BidID: b.ID})
	assert.ErrorIs(t, err, domain.ErrBudgetExceeded)
	assert.Equal(t, domain.ErrConflict, domain.KindOf(err))

	c, err := f.store.GetContractByCampaign(context.Background(), camp.ID)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestSelectWinnerOnlyOncePerCampaign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	camp := f.campaign(t, 5000)
	first := f.bid(t, camp.ID, 1000)
	second := f.bid(t, camp.ID, 900)

	_, err := f.uc.SelectWinner(ctx, port.SelectWinnerInput{CampaignID: camp.ID, BidID: first.ID})
	require.NoError(t, err)

	_, err = f.uc.SelectWinner(ctx, port.SelectWinnerInput{CampaignID: camp.ID, BidID: second.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.PlaceBid(ctx, port.PlaceBidInput{CampaignID: camp.ID, CreatorID: "late", Amount: 10})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSelectWinnerRejectsUnselectableBids(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	camp := f.campaign(t, 5000)
	other := f.campaign(t, 5000)
	foreign := f.bid(t, other.ID, 100)
	cancelled := f.bid(t, camp.ID, 100)
	_, err := f.uc.CancelBid(ctx, cancelled.ID)
	require.NoError(t, err)

	_, err = f.uc.SelectWinner(ctx, port.SelectWinnerInput{CampaignID: "missing", BidID: foreign.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.SelectWinner(ctx, port.SelectWinnerInput{CampaignID: camp.ID, BidID: foreign.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.SelectWinner(ctx, port.SelectWinnerInput{CampaignID: camp.ID, BidID: cancelled.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)

	live := f.bid(t, camp.ID, 100)
	_, err = f.uc.SelectWinner(ctx, port.SelectWinnerInput{
		CampaignID: camp.ID,
		BidID:      live.ID,
		Tiers:      []domain.TierBonus{{Tier: 0, Bonus: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSiblingPolicy(t *testing.T) {
	tests := []struct {
		policy SiblingPolicy
		want   domain.BidStatus
	}{
		{SiblingKeep, domain.BidProposed},
		{SiblingCancel, domain.BidCancelled},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			f := newFixture(t, func(c *Config) { c.SiblingPolicy = tt.policy })
			ctx := context.Background()
			camp := f.campaign(t, 5000)
			winner := f.bid(t, camp.ID, 1000)
			sibling := f.bid(t, camp.ID, 900)

			_, err := f.uc.SelectWinner(ctx, port.SelectWinnerInput{CampaignID: camp.ID, BidID: winner.ID})
			require.NoError(t, err)

			got, err := f.store.GetBid(ctx, sibling.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestSelectWinnerRejectsRoundAppendedMeanwhile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	camp := f.campaign(t, 5000)
	b := f.bid(t, camp.ID, 450)

	h := f.hooked()
	h.onRounds = func() {
		_, err := f.uc.AppendRound(ctx, port.AppendRoundInput{BidID: b.ID, Price: 900, Concession: "raise"})
		require.NoError(t, err)
	}

	_, err := f.uc.SelectWinner(ctx, port.SelectWinnerInput{CampaignID: camp.ID, BidID: b.ID})
	require.ErrorIs(t, err, domain.ErrConflict)

	bid, err := f.store.GetBid(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BidNegotiating, bid.Status)
	assert.Equal(t, int64(900), bid.Amount)
	c, err := f.store.GetContractByCampaign(ctx, camp.ID)
	require.NoError(t, err)
	assert.Nil(t, c)
	updated, err := f.store.GetCampaign(ctx, camp.ID)
	require.NoError(t, err)
	assert.Zero(t, updated.Committed)

	sel, err := f.uc.SelectWinner(ctx, port.SelectWinnerInput{CampaignID: camp.ID, BidID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(900), sel.Contract.BasePayout)
	rounds, err := f.uc.History(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, sel.Contract.BasePayout, rounds[len(rounds)-1].Price)
}
