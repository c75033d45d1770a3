package domain

import "time"

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

// Campaign represents an advertiser's request for creator content.
// Budgets are stored in integer units (e.g. cents).
type Campaign struct {
	ID           string
	AdvertiserID string
	Title        string
	Budget       int64
	Committed    int64 // base payouts of live contracts
	Status       CampaignStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Remaining returns the part of the budget not yet committed to a contract.
func (c Campaign) Remaining() int64 {
	return c.Budget - c.Committed
}
