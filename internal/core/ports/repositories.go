package ports

import (
	"context"
	"time"

	"recoverable-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// OperatorRepository defines persistence operations for operators.
type OperatorRepository interface {
	Create(ctx context.Context, operator *domain.Operator) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error)
	GetByUsername(ctx context.Context, username string) (*domain.Operator, error)
}

// EventRepository is the append-only journal of ledger notifications.
type EventRepository interface {
	Append(ctx context.Context, event *domain.LedgerEvent) error
	List(ctx context.Context, params EventListParams) ([]domain.LedgerEvent, int64, error)
}

// EventListParams holds filter + pagination for listing ledger events.
type EventListParams struct {
	Account  uuid.UUID
	Type     *domain.EventType
	From     *int64 // Unix timestamp
	To       *int64 // Unix timestamp
	Page     int
	PageSize int
}

// IdempotencyCache is the Redis-layer transfer idempotency check.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NonceStore manages nonce uniqueness for replay attack prevention on
// the authority's HMAC-signed custody requests.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, callerID string, nonce string, ttl time.Duration) (bool, error)
}
