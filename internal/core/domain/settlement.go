package domain

import "time"

// SettlementStatus mirrors the escrow lifecycle of a payout.
type SettlementStatus string

const (
	SettlementWaiting  SettlementStatus = "waiting"
	SettlementEscrowed SettlementStatus = "escrowed"
	SettlementReleased SettlementStatus = "released"
	SettlementSettled  SettlementStatus = "settled"
)

// Settlement is the single authoritative record of a completed payout for a
// contract. It is written once, after the payment rail returned a receipt,
// and never updated.
type Settlement struct {
	ID              string
	ContractID      string
	AuditReportID   *string
	HandshakeHeader string
	Receipt         string
	TotalPaid       int64
	Currency        string
	Status          SettlementStatus
	CreatedAt       time.Time
}
