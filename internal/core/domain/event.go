package domain

import (
	"time"
)

// ContractEvent records a single state transition of a contract. It is
// published to the transition hook after the new state has been persisted.
type ContractEvent struct {
	ContractID string         `json:"contract_id"`
	From       ContractStatus `json:"from"`
	To         ContractStatus `json:"to"`
	Reason     string         `json:"reason,omitempty"`
	At         time.Time      `json:"at"`
}
