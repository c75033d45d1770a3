package postgres

import (
	"context"
	"fmt"

	"dealflow/internal/core/domain"
)

const campaignColumns = `id, advertiser_id, title, budget, committed, status, created_at, updated_at`

// CreateCampaign inserts a campaign.
func (s *Store) CreateCampaign(ctx context.Context, c domain.Campaign) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO campaigns (`+campaignColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.AdvertiserID, c.Title, c.Budget, c.Committed, c.Status, c.CreatedAt, c.UpdatedAt)
	return mapError(err)
}

// GetCampaign returns a campaign by id.
func (s *Store) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	var c domain.Campaign
	err := s.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id).
		Scan(&c.ID, &c.AdvertiserID, &c.Title, &c.Budget, &c.Committed, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return noRows(&c, err)
}

// AdjustCommitment adds delta to the committed budget, never going below
// zero.
func (s *Store) AdjustCommitment(ctx context.Context, campaignID string, delta int64) error {
	tag, err := s.pool.Exec(ctx, `UPDATE campaigns SET committed = GREATEST(committed + $1, 0), updated_at = now() WHERE id = $2`, delta, campaignID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: campaign %s", domain.ErrNotFound, campaignID)
	}
	return nil
}
