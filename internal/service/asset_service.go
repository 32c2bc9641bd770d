package service

import (
	"context"
	"sync"

	"recoverable-ledger/internal/core/ledger"
	"recoverable-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AssetServiceImpl implements ports.AssetService: the token-style
// facade over the ledger with mint/burn and delegated transfers.
// Allowances live in memory alongside the ledger they guard.
type AssetServiceImpl struct {
	ledger *ledger.Ledger
	log    zerolog.Logger

	mu         sync.Mutex
	allowances map[allowanceKey]int64
}

type allowanceKey struct {
	owner   uuid.UUID
	spender uuid.UUID
}

// NewAssetService creates a new AssetServiceImpl.
func NewAssetService(l *ledger.Ledger, log zerolog.Logger) *AssetServiceImpl {
	return &AssetServiceImpl{
		ledger:     l,
		allowances: make(map[allowanceKey]int64),
		log:        log,
	}
}

// Mint creates new settled value in the destination account.
func (s *AssetServiceImpl) Mint(_ context.Context, to uuid.UUID, amount int64) error {
	if err := s.ledger.Mint(to, amount); err != nil {
		return err
	}
	s.log.Info().Str("to", to.String()).Int64("amount", amount).Msg("minted")
	return nil
}

// Burn destroys settled, unfrozen value from the account.
func (s *AssetServiceImpl) Burn(_ context.Context, from uuid.UUID, amount int64) error {
	if err := s.ledger.Burn(from, amount); err != nil {
		return err
	}
	s.log.Info().Str("from", from.String()).Int64("amount", amount).Msg("burned")
	return nil
}

// Transfer moves funds directly between accounts.
func (s *AssetServiceImpl) Transfer(_ context.Context, from, to uuid.UUID, amount int64, includeUnsettled bool) (*ledger.TransferResult, error) {
	return s.ledger.Transfer(from, to, amount, includeUnsettled)
}

// TransferFrom moves funds out of the owner's account on behalf of an
// approved spender, drawing down the spender's allowance. The allowance
// is only consumed when the underlying transfer succeeds.
func (s *AssetServiceImpl) TransferFrom(_ context.Context, spender, from, to uuid.UUID, amount int64, includeUnsettled bool) (*ledger.TransferResult, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount("transfer amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := allowanceKey{owner: from, spender: spender}
	allowed := s.allowances[key]
	if allowed < amount {
		return nil, apperror.ErrInsufficientFunds(allowed, amount)
	}

	res, err := s.ledger.Transfer(from, to, amount, includeUnsettled)
	if err != nil {
		return nil, err
	}
	s.allowances[key] = allowed - amount
	return res, nil
}

// Approve sets the spender's allowance over the owner's account.
// A zero amount revokes it.
func (s *AssetServiceImpl) Approve(_ context.Context, owner, spender uuid.UUID, amount int64) error {
	if amount < 0 {
		return apperror.ErrInvalidAmount("allowance must not be negative")
	}
	if spender == uuid.Nil {
		return apperror.ErrInvalidDestination()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if amount == 0 {
		delete(s.allowances, allowanceKey{owner: owner, spender: spender})
	} else {
		s.allowances[allowanceKey{owner: owner, spender: spender}] = amount
	}
	return nil
}

// Allowance returns the spender's remaining allowance over the owner's
// account.
func (s *AssetServiceImpl) Allowance(_ context.Context, owner, spender uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allowances[allowanceKey{owner: owner, spender: spender}]
}
