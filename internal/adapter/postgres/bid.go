package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"dealflow/internal/core/domain"
)

const bidColumns = `id, campaign_id, creator_id, amount, status, created_at, updated_at`

// CreateBid inserts a bid and its initial ask in one transaction.
func (s *Store) CreateBid(ctx context.Context, bid domain.AutoBid, ask domain.NegotiationRound) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO auto_bids (`+bidColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			bid.ID, bid.CampaignID, bid.CreatorID, bid.Amount, bid.Status, bid.CreatedAt, bid.UpdatedAt)
		if err != nil {
			return err
		}
		return insertRound(ctx, tx, ask)
	})
}

// GetBid returns a bid by id.
func (s *Store) GetBid(ctx context.Context, id string) (*domain.AutoBid, error) {
	var b domain.AutoBid
	err := s.pool.QueryRow(ctx, `SELECT `+bidColumns+` FROM auto_bids WHERE id = $1`, id).
		Scan(&b.ID, &b.CampaignID, &b.CreatorID, &b.Amount, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return noRows(&b, err)
}

// ListBids returns the bids of a campaign, oldest first.
func (s *Store) ListBids(ctx context.Context, campaignID string) ([]domain.AutoBid, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+bidColumns+` FROM auto_bids WHERE campaign_id = $1 ORDER BY created_at, id`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AutoBid, error) {
		var b domain.AutoBid
		err := row.Scan(&b.ID, &b.CampaignID, &b.CreatorID, &b.Amount, &b.Status, &b.CreatedAt, &b.UpdatedAt)
		return b, err
	})
}

// UpdateBid replaces amount and status if the stored status and amount
// equal expected.
func (s *Store) UpdateBid(ctx context.Context, bid domain.AutoBid, expected domain.BidVersion) error {
	return updateBid(ctx, s.pool, bid, expected)
}

// AppendRound inserts the round and updates the bid in one transaction. The
// (bid_id, round) primary key rejects a duplicate round number.
func (s *Store) AppendRound(ctx context.Context, round domain.NegotiationRound, bid domain.AutoBid, expected domain.BidVersion) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		if err := updateBid(ctx, tx, bid, expected); err != nil {
			return err
		}
		return insertRound(ctx, tx, round)
	})
}

// ListRounds returns the negotiation log ordered by round.
func (s *Store) ListRounds(ctx context.Context, bidID string) ([]domain.NegotiationRound, error) {
	rows, err := s.pool.Query(ctx, `SELECT bid_id, round, price, concession, reasoning, created_at FROM negotiation_rounds WHERE bid_id = $1 ORDER BY round`, bidID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.NegotiationRound, error) {
		var r domain.NegotiationRound
		err := row.Scan(&r.BidID, &r.Round, &r.Price, &r.Concession, &r.Reasoning, &r.CreatedAt)
		return r, err
	})
}

func insertRound(ctx context.Context, db execer, r domain.NegotiationRound) error {
	_, err := db.Exec(ctx, `INSERT INTO negotiation_rounds (bid_id, round, price, concession, reasoning, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		r.BidID, r.Round, r.Price, r.Concession, r.Reasoning, r.CreatedAt)
	return err
}

func updateBid(ctx context.Context, db execer, bid domain.AutoBid, expected domain.BidVersion) error {
	tag, err := db.Exec(ctx, `UPDATE auto_bids SET amount = $1, status = $2, updated_at = $3
        WHERE id = $4 AND status = $5 AND amount = $6`,
		bid.Amount, bid.Status, bid.UpdatedAt, bid.ID, expected.Status, expected.Amount)
	if err != nil {
		return mapError(err)
	}
	return expectOne(tag, "bid %s is no longer %s at %d", bid.ID, expected.Status, expected.Amount)
}
