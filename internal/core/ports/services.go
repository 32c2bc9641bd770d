package ports

import (
	"context"
	"time"

	"recoverable-ledger/internal/core/domain"
	"recoverable-ledger/internal/core/ledger"

	"github.com/google/uuid"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
	BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(operatorID uuid.UUID, accessKey string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	OperatorID uuid.UUID
	AccessKey  string
}

// --- Service Ports (Business Logic) ---

// LedgerService exposes the settlement ledger: balance queries,
// transfers, and the authority's custody operations.
type LedgerService interface {
	Transfer(ctx context.Context, req TransferRequest) (*ledger.TransferResult, error)
	BalanceOf(ctx context.Context, account uuid.UUID, includeUnsettled bool) int64
	SpendableBalanceOf(ctx context.Context, account uuid.UUID, includeUnsettled bool) int64
	AccountState(ctx context.Context, account uuid.UUID) (*AccountStateView, error)
	Freeze(ctx context.Context, suspensions []domain.Suspension) error
	CloseCase(ctx context.Context, recoverFunds bool, victim uuid.UUID, suspensions []domain.Suspension) error
	ListEvents(ctx context.Context, params EventListParams) ([]domain.LedgerEvent, int64, error)
}

// TransferRequest holds validated input for a transfer.
type TransferRequest struct {
	From             uuid.UUID
	To               uuid.UUID
	Amount           int64
	IncludeUnsettled bool
	ReferenceID      string // idempotency key within the sender's scope
}

// AccountStateView is the full balance picture of one account.
type AccountStateView struct {
	Account          uuid.UUID `json:"account"`
	Balance          int64     `json:"balance"`
	SettledBalance   int64     `json:"settled_balance"`
	Unsettled        int64     `json:"unsettled"`
	FrozenTotal      int64     `json:"frozen_total"`
	Spendable        int64     `json:"spendable"`
	SpendableSettled int64     `json:"spendable_settled"`
	Nonce            uint64    `json:"nonce"`
}

// AssetService is the token-compatibility facade over the ledger:
// mint/burn plus delegated transfers via allowances.
type AssetService interface {
	Mint(ctx context.Context, to uuid.UUID, amount int64) error
	Burn(ctx context.Context, from uuid.UUID, amount int64) error
	Transfer(ctx context.Context, from, to uuid.UUID, amount int64, includeUnsettled bool) (*ledger.TransferResult, error)
	TransferFrom(ctx context.Context, spender, from, to uuid.UUID, amount int64, includeUnsettled bool) (*ledger.TransferResult, error)
	Approve(ctx context.Context, owner, spender uuid.UUID, amount int64) error
	Allowance(ctx context.Context, owner, spender uuid.UUID) int64
}

// AuthService defines operator authentication business logic.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// RegisterRequest holds input for operator registration.
type RegisterRequest struct {
	Username    string
	Password    string
	DisplayName string
}

// RegisterResponse holds the registration result shown once.
type RegisterResponse struct {
	OperatorID uuid.UUID
	AccessKey  string
	SecretKey  string // Plaintext, shown only at registration
}

// CaseNotifier delivers custody notifications (freeze-applied,
// case-closed) to an external monitoring endpoint.
type CaseNotifier interface {
	Notify(ctx context.Context, event domain.LedgerEvent) error
}
