package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recoverable-ledger/internal/core/domain"
	"recoverable-ledger/internal/core/ledger"
	"recoverable-ledger/internal/core/ports"
	"recoverable-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const idempotencyTTL = 24 * time.Hour

// LedgerServiceImpl implements ports.LedgerService on top of the
// in-memory ledger core. The core is authoritative for balances;
// this layer adds transfer idempotency (Redis) and the event journal
// (Postgres, fed through the fan-out sink).
type LedgerServiceImpl struct {
	ledger     *ledger.Ledger
	eventRepo  ports.EventRepository
	idempCache ports.IdempotencyCache
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	l *ledger.Ledger,
	eventRepo ports.EventRepository,
	idempCache ports.IdempotencyCache,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		ledger:     l,
		eventRepo:  eventRepo,
		idempCache: idempCache,
		log:        log,
	}
}

// Transfer moves funds between accounts. A repeated reference_id from
// the same sender replays the original result instead of moving funds
// twice.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (*ledger.TransferResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount("transfer amount must be positive")
	}

	idempKey := domain.BuildTransferIdempotencyKey(req.From, req.ReferenceID)

	cached, err := s.idempCache.Get(ctx, idempKey)
	if err != nil {
		s.log.Warn().Err(err).Str("key", idempKey).Msg("redis idempotency check failed, proceeding without replay")
	}
	if cached != nil {
		return s.unmarshalCachedResult(cached)
	}

	res, err := s.ledger.Transfer(req.From, req.To, req.Amount, req.IncludeUnsettled)
	if err != nil {
		return nil, err
	}

	// Post-process: cache in Redis (best-effort)
	respJSON, err := json.Marshal(res)
	if err != nil {
		s.log.Error().Err(err).Str("key", idempKey).Msg("failed to marshal transfer result")
	} else if err := s.idempCache.Set(ctx, idempKey, respJSON, idempotencyTTL); err != nil {
		s.log.Warn().Err(err).Str("key", idempKey).Msg("failed to cache transfer result in redis")
	}

	s.log.Info().
		Str("from", req.From.String()).
		Str("to", req.To.String()).
		Int64("amount", req.Amount).
		Int64("unsettled_spent", res.UnsettledSpent).
		Uint64("record_index", res.RecordIndex).
		Msg("transfer completed")

	return res, nil
}

// BalanceOf returns the account's total or settled-only balance.
func (s *LedgerServiceImpl) BalanceOf(_ context.Context, account uuid.UUID, includeUnsettled bool) int64 {
	return s.ledger.BalanceOf(account, includeUnsettled)
}

// SpendableBalanceOf returns the balance the account can spend right now.
func (s *LedgerServiceImpl) SpendableBalanceOf(_ context.Context, account uuid.UUID, includeUnsettled bool) int64 {
	return s.ledger.SpendableBalanceOf(account, includeUnsettled)
}

// AccountState assembles the full balance picture of one account.
func (s *LedgerServiceImpl) AccountState(_ context.Context, account uuid.UUID) (*ports.AccountStateView, error) {
	unsettled, _ := s.ledger.UnsettledBalanceOf(account)
	return &ports.AccountStateView{
		Account:          account,
		Balance:          s.ledger.BalanceOf(account, true),
		SettledBalance:   s.ledger.BalanceOf(account, false),
		Unsettled:        unsettled,
		FrozenTotal:      s.ledger.FrozenTotal(account),
		Spendable:        s.ledger.SpendableBalanceOf(account, true),
		SpendableSettled: s.ledger.SpendableBalanceOf(account, false),
		Nonce:            s.ledger.Nonce(account),
	}, nil
}

// Freeze suspends sub-amounts of unsettled records. The batch applies
// atomically: one bad suspension rejects the whole request.
func (s *LedgerServiceImpl) Freeze(_ context.Context, suspensions []domain.Suspension) error {
	if len(suspensions) == 0 {
		return apperror.ErrInvalidAmount("freeze batch must not be empty")
	}
	if err := s.ledger.Freeze(suspensions); err != nil {
		return err
	}
	s.log.Info().Int("suspensions", len(suspensions)).Msg("freeze applied")
	return nil
}

// CloseCase resolves frozen suspensions, optionally recovering the
// funds to the victim account.
func (s *LedgerServiceImpl) CloseCase(_ context.Context, recoverFunds bool, victim uuid.UUID, suspensions []domain.Suspension) error {
	if len(suspensions) == 0 {
		return apperror.ErrInvalidAmount("close-case batch must not be empty")
	}
	if err := s.ledger.CloseCase(recoverFunds, victim, suspensions); err != nil {
		return err
	}
	s.log.Info().
		Bool("recovered", recoverFunds).
		Str("victim", victim.String()).
		Int("suspensions", len(suspensions)).
		Msg("case closed")
	return nil
}

// ListEvents pages through the journal.
func (s *LedgerServiceImpl) ListEvents(ctx context.Context, params ports.EventListParams) ([]domain.LedgerEvent, int64, error) {
	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list events: %w", err))
	}
	return events, total, nil
}

// unmarshalCachedResult deserializes a cached transfer result.
func (s *LedgerServiceImpl) unmarshalCachedResult(data []byte) (*ledger.TransferResult, error) {
	res := &ledger.TransferResult{}
	if err := json.Unmarshal(data, res); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached transfer: %w", err))
	}
	return res, nil
}
