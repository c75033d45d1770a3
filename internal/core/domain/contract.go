package domain

import (
	"fmt"
	"time"
)

// ContractStatus is the authoritative lifecycle state of a contract.
type ContractStatus string

const (
	ContractDraft         ContractStatus = "draft"
	ContractEscrowFunded  ContractStatus = "escrow_funded"
	ContractWorkSubmitted ContractStatus = "work_submitted"
	ContractReleased      ContractStatus = "released"
	ContractSettled       ContractStatus = "settled"
	ContractTerminated    ContractStatus = "terminated"
)

// transitions lists the happy-path edge out of each state. Termination is
// handled separately since it is legal from every non-terminal state.
var transitions = map[ContractStatus]ContractStatus{
	ContractDraft:         ContractEscrowFunded,
	ContractEscrowFunded:  ContractWorkSubmitted,
	ContractWorkSubmitted: ContractReleased,
	ContractReleased:      ContractSettled,
}

// Terminal reports whether no further transitions are possible.
func (s ContractStatus) Terminal() bool {
	return s == ContractSettled || s == ContractTerminated
}

// Valid reports whether s is a known status.
func (s ContractStatus) Valid() bool {
	_, ok := transitions[s]
	return ok || s.Terminal()
}

// CanTransition reports whether from → to is an edge of the contract graph.
func CanTransition(from, to ContractStatus) bool {
	if from.Terminal() || !from.Valid() {
		return false
	}
	if to == ContractTerminated {
		return true
	}
	return transitions[from] == to
}

// Contract is the binding agreement created from exactly one accepted bid.
type Contract struct {
	ID            string
	CampaignID    string
	AutoBidID     string
	AdvertiserID  string
	CreatorID     string
	BasePayout    int64
	Tiers         []TierBonus
	AuditCriteria string
	Status        ContractStatus
	EscrowRef     string
	ReleaseRef    string
	SubmissionID  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Transition moves the contract to status to, returning the event describing
// the change. Illegal edges fail with ErrInvalidState and leave c untouched.
func (c *Contract) Transition(to ContractStatus, at time.Time) (ContractEvent, error) {
	if !CanTransition(c.Status, to) {
		return ContractEvent{}, fmt.Errorf("%w: contract %s cannot move from %s to %s", ErrInvalidState, c.ID, c.Status, to)
	}
	ev := ContractEvent{
		ContractID: c.ID,
		From:       c.Status,
		To:         to,
		At:         at,
	}
	c.Status = to
	c.UpdatedAt = at
	return ev, nil
}
