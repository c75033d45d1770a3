package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dealflow/internal/core/domain"
)

const contractColumns = `id, campaign_id, auto_bid_id, advertiser_id, creator_id, base_payout, tiers, audit_criteria,
    status, escrow_ref, release_ref, submission_id, created_at, updated_at`

// CreateContract accepts the bid, commits the base payout against the
// campaign budget and inserts the contract in one transaction. The unique
// campaign_id and auto_bid_id columns reject a second contract.
func (s *Store) CreateContract(ctx context.Context, c domain.Contract, bid domain.AutoBid, expected domain.BidVersion) error {
	tiers, err := encodeTiers(c.Tiers)
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE campaigns SET committed = committed + $1, updated_at = $2
            WHERE id = $3 AND budget - committed >= $1`, c.BasePayout, c.CreatedAt, c.CampaignID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: campaign %s", domain.ErrBudgetExceeded, c.CampaignID)
		}
		if err = updateBid(ctx, tx, bid, expected); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `INSERT INTO contracts (`+contractColumns+`)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			c.ID, c.CampaignID, c.AutoBidID, c.AdvertiserID, c.CreatorID, c.BasePayout, tiers, c.AuditCriteria,
			c.Status, c.EscrowRef, c.ReleaseRef, c.SubmissionID, c.CreatedAt, c.UpdatedAt)
		return err
	})
}

// GetContract returns a contract by id.
func (s *Store) GetContract(ctx context.Context, id string) (*domain.Contract, error) {
	return scanContract(s.pool.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id))
}

// GetContractByCampaign returns the contract of a campaign.
func (s *Store) GetContractByCampaign(ctx context.Context, campaignID string) (*domain.Contract, error) {
	return scanContract(s.pool.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE campaign_id = $1`, campaignID))
}

// UpdateContract replaces the mutable contract fields if the stored status
// equals expected.
func (s *Store) UpdateContract(ctx context.Context, c domain.Contract, expected domain.ContractStatus) error {
	return updateContract(ctx, s.pool, c, expected)
}

func updateContract(ctx context.Context, db execer, c domain.Contract, expected domain.ContractStatus) error {
	tag, err := db.Exec(ctx, `UPDATE contracts SET status = $1, release_ref = $2, submission_id = $3, updated_at = $4
        WHERE id = $5 AND status = $6`,
		c.Status, c.ReleaseRef, c.SubmissionID, c.UpdatedAt, c.ID, expected)
	if err != nil {
		return mapError(err)
	}
	return expectOne(tag, "contract %s is no longer %s", c.ID, expected)
}

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var (
		c     domain.Contract
		tiers []byte
	)
	err := row.Scan(&c.ID, &c.CampaignID, &c.AutoBidID, &c.AdvertiserID, &c.CreatorID, &c.BasePayout, &tiers, &c.AuditCriteria,
		&c.Status, &c.EscrowRef, &c.ReleaseRef, &c.SubmissionID, &c.CreatedAt, &c.UpdatedAt)
	out, err := noRows(&c, err)
	if out == nil || err != nil {
		return out, err
	}
	if err = json.Unmarshal(tiers, &out.Tiers); err != nil {
		return nil, fmt.Errorf("decode tiers of contract %s: %w", c.ID, err)
	}
	return out, nil
}

func encodeTiers(tiers []domain.TierBonus) ([]byte, error) {
	if tiers == nil {
		tiers = []domain.TierBonus{}
	}
	return json.Marshal(tiers)
}
