package domain

import "time"

// BidStatus is the lifecycle state of an AutoBid.
type BidStatus string

const (
	BidProposed    BidStatus = "proposed"
	BidNegotiating BidStatus = "negotiating"
	BidAccepted    BidStatus = "accepted"
	BidCancelled   BidStatus = "cancelled"
)

// AutoBid is a creator's priced offer against a campaign. Amount tracks the
// latest negotiated price.
type AutoBid struct {
	ID         string
	CampaignID string
	CreatorID  string
	Amount     int64
	Status     BidStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Open reports whether the bid can still be negotiated or selected.
func (b AutoBid) Open() bool {
	return b.Status == BidProposed || b.Status == BidNegotiating
}

// BidVersion is what a bid write compares against the stored bid. A round
// appended since the read changes the amount even when the status stays
// negotiating.
type BidVersion struct {
	Status BidStatus
	Amount int64
}

func (b AutoBid) Version() BidVersion {
	return BidVersion{Status: b.Status, Amount: b.Amount}
}
