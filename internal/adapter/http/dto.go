package httpadapter

import (
	"time"

	"dealflow/internal/core/domain"
)

type campaignResponse struct {
	ID           string    `json:"id"`
	AdvertiserID string    `json:"advertiserId"`
	Title        string    `json:"title"`
	Budget       int64     `json:"budget"`
	Committed    int64     `json:"committed"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type bidResponse struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaignId"`
	CreatorID  string `json:"creatorId"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
}

type roundResponse struct {
	Round      int       `json:"round"`
	Price      int64     `json:"price"`
	Concession string    `json:"concession"`
	Reasoning  string    `json:"reasoning"`
	CreatedAt  time.Time `json:"createdAt"`
}

type contractResponse struct {
	ID            string             `json:"id"`
	CampaignID    string             `json:"campaignId"`
	AutoBidID     string             `json:"autoBidId"`
	AdvertiserID  string             `json:"advertiserId"`
	CreatorID     string             `json:"creatorId"`
	BasePayout    int64              `json:"basePayout"`
	Tiers         []domain.TierBonus `json:"tiers"`
	AuditCriteria string             `json:"auditCriteria"`
	Status        string             `json:"status"`
	EscrowRef     string             `json:"escrowRef"`
	ReleaseRef    string             `json:"releaseRef,omitempty"`
	SubmissionID  string             `json:"submissionId,omitempty"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

type selectionResponse struct {
	ContractID string `json:"contractId"`
	EscrowRef  string `json:"escrowRef"`
	Rationale  string `json:"rationale"`
}

type submissionResponse struct {
	ContractID   string `json:"contractId"`
	SubmissionID string `json:"submissionId"`
	Status       string `json:"status"`
}

type reportResponse struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submissionId"`
	Score        float64   `json:"score"`
	Tier         int       `json:"tier"`
	Reasoning    string    `json:"reasoning"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

type settlementResponse struct {
	SettlementID string    `json:"settlementId"`
	ContractID   string    `json:"contractId"`
	TotalPaid    int64     `json:"totalPaid"`
	Currency     string    `json:"currency"`
	Receipt      string    `json:"receipt"`
	ReleaseRef   string    `json:"releaseRef"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toCampaign(c domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:           c.ID,
		AdvertiserID: c.AdvertiserID,
		Title:        c.Title,
		Budget:       c.Budget,
		Committed:    c.Committed,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
	}
}

func toBid(b domain.AutoBid) bidResponse {
	return bidResponse{ID: b.ID, CampaignID: b.CampaignID, CreatorID: b.CreatorID, Amount: b.Amount, Status: string(b.Status)}
}

func toRound(r domain.NegotiationRound) roundResponse {
	return roundResponse{Round: r.Round, Price: r.Price, Concession: r.Concession, Reasoning: r.Reasoning, CreatedAt: r.CreatedAt}
}

func toContract(c domain.Contract) contractResponse {
	tiers := c.Tiers
	if tiers == nil {
		tiers = []domain.TierBonus{}
	}
	return contractResponse{
		ID:            c.ID,
		CampaignID:    c.CampaignID,
		AutoBidID:     c.AutoBidID,
		AdvertiserID:  c.AdvertiserID,
		CreatorID:     c.CreatorID,
		BasePayout:    c.BasePayout,
		Tiers:         tiers,
		AuditCriteria: c.AuditCriteria,
		Status:        string(c.Status),
		EscrowRef:     c.EscrowRef,
		ReleaseRef:    c.ReleaseRef,
		SubmissionID:  c.SubmissionID,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toReport(r domain.AuditReport) reportResponse {
	return reportResponse{ID: r.ID, SubmissionID: r.SubmissionID, Score: r.Score, Tier: r.Tier, Reasoning: r.Reasoning, GeneratedAt: r.GeneratedAt}
}

// toSettlement uses the receipt as release reference, which is what the
// contract records when it moves to released.
func toSettlement(s domain.Settlement) settlementResponse {
	return settlementResponse{
		SettlementID: s.ID,
		ContractID:   s.ContractID,
		TotalPaid:    s.TotalPaid,
		Currency:     s.Currency,
		Receipt:      s.Receipt,
		ReleaseRef:   s.Receipt,
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt,
	}
}
