package domain

import (
	"time"

	"github.com/google/uuid"
)

// OperatorStatus represents the state of an operator account.
type OperatorStatus string

const (
	OperatorStatusActive      OperatorStatus = "ACTIVE"
	OperatorStatusSuspended   OperatorStatus = "SUSPENDED"
	OperatorStatusDeactivated OperatorStatus = "DEACTIVATED"
)

// Operator represents a registered holder of a ledger account. The
// operator's ID doubles as the account identity in the ledger.
type Operator struct {
	ID           uuid.UUID      `json:"id"`
	Username     string         `json:"username"`
	PasswordHash string         `json:"-"` // Never expose
	DisplayName  string         `json:"display_name"`
	AccessKey    string         `json:"access_key"`
	SecretKeyEnc string         `json:"-"` // Encrypted, never expose
	Status       OperatorStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// IsActive returns true if the operator account is active.
func (o *Operator) IsActive() bool {
	return o.Status == OperatorStatusActive
}

// BuildTransferIdempotencyKey constructs the idempotency cache key for a
// transfer request. Format: "account_id:reference_id".
func BuildTransferIdempotencyKey(accountID uuid.UUID, referenceID string) string {
	return accountID.String() + ":" + referenceID
}
