package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kind of ledger notification.
type EventType string

const (
	EventTransferCompleted EventType = "TRANSFER_COMPLETED"
	EventUnsettledSpent    EventType = "UNSETTLED_RECORD_SPENT"
	EventFreezeApplied     EventType = "FREEZE_APPLIED"
	EventCaseClosed        EventType = "CASE_CLOSED"
	EventMinted            EventType = "MINTED"
	EventBurned            EventType = "BURNED"
)

// LedgerEvent is a notification emitted by the ledger as a side effect
// of a completed operation. Events are only emitted after the operation
// has fully applied; a failed batch emits nothing.
type LedgerEvent struct {
	ID           uuid.UUID  `json:"id"`
	Type         EventType  `json:"type"`
	Account      uuid.UUID  `json:"account"`
	Counterparty *uuid.UUID `json:"counterparty,omitempty"`
	Amount       int64      `json:"amount"`
	// Settled/Unsettled split the Amount of TRANSFER_COMPLETED and
	// CASE_CLOSED events by whether the value had passed its window.
	SettledAmount   int64     `json:"settled_amount"`
	UnsettledAmount int64     `json:"unsettled_amount"`
	RecordIndex     uint64    `json:"record_index,omitempty"`
	Recovered       bool      `json:"recovered,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// Suspension identifies a frozen (or to-be-frozen) sub-amount of a
// single record. It is an argument descriptor, not a stored entity.
type Suspension struct {
	Account     uuid.UUID `json:"account"`
	RecordIndex uint64    `json:"record_index"`
	Amount      int64     `json:"amount"`
}
