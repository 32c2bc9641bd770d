package ledger

import (
	"sync"
	"time"

	"recoverable-ledger/internal/core/domain"
	"recoverable-ledger/pkg/apperror"

	"github.com/google/uuid"
)

// Clock is the monotonic time source consumed by the ledger. Time is an
// external input: it is sampled once per operation and may jump forward
// by arbitrary non-negative amounts between operations.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// EventSink receives notifications raised as side effects of completed
// ledger operations. A failed operation emits nothing.
type EventSink interface {
	Publish(event domain.LedgerEvent)
}

// Config holds the fixed construction-time ledger parameters.
type Config struct {
	// SettlementWindow is how long a received batch stays unsettled.
	SettlementWindow time.Duration
	// CleanupMaxSteps bounds the records processed per cleanup pass.
	CleanupMaxSteps int
}

const (
	DefaultSettlementWindow = 24 * time.Hour
	DefaultCleanupMaxSteps  = 16
)

// accountState is the per-account ledger state. balance is the single
// source of truth for owned value (settled + unsettled); the settled
// part is derived as balance minus the unsettled total.
type accountState struct {
	balance         int64
	nonce           uint64
	frozenTotal     int64 // across all records, including detached ones
	cachedUnsettled int64 // valid up to queue.cacheIndex
	cachedFrozen    int64 // frozen-but-unsettled portion of the cache
	queue           *recordQueue
}

// Ledger tracks, per account, batches of incoming value that stay
// provisional for a settlement window, during which a designated
// authority may freeze sub-amounts and later release or recover them.
// Every logical operation runs to completion under a single mutex, so
// operations from different accounts may interleave in any order but
// never overlap.
type Ledger struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*accountState
	window   int64 // settlement window, seconds
	maxSteps int
	clock    Clock
	sink     EventSink
}

// New creates a Ledger. A nil sink disables notifications.
func New(cfg Config, clock Clock, sink EventSink) *Ledger {
	if cfg.SettlementWindow <= 0 {
		cfg.SettlementWindow = DefaultSettlementWindow
	}
	if cfg.CleanupMaxSteps <= 0 {
		cfg.CleanupMaxSteps = DefaultCleanupMaxSteps
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Ledger{
		accounts: make(map[uuid.UUID]*accountState),
		window:   int64(cfg.SettlementWindow / time.Second),
		maxSteps: cfg.CleanupMaxSteps,
		clock:    clock,
		sink:     sink,
	}
}

func (l *Ledger) account(id uuid.UUID) *accountState {
	a, ok := l.accounts[id]
	if !ok {
		a = &accountState{queue: newRecordQueue()}
		l.accounts[id] = a
	}
	return a
}

func (l *Ledger) nowUnix() int64 { return l.clock.Now().Unix() }

func (l *Ledger) publish(events []domain.LedgerEvent) {
	if l.sink == nil {
		return
	}
	for _, e := range events {
		l.sink.Publish(e)
	}
}

func (l *Ledger) newEvent(typ domain.EventType, account uuid.UUID) domain.LedgerEvent {
	return domain.LedgerEvent{
		ID:         uuid.New(),
		Type:       typ,
		Account:    account,
		OccurredAt: l.clock.Now().UTC(),
	}
}

// ---- Queries ----

// BalanceOf returns the account's balance, optionally excluding the
// still-unsettled portion. Pure query.
func (l *Ledger) BalanceOf(id uuid.UUID, includeUnsettled bool) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.accounts[id]
	if a == nil {
		return 0
	}
	if includeUnsettled {
		return a.balance
	}
	total, _ := l.unsettled(a, l.nowUnix())
	return a.balance - total
}

// SpendableBalanceOf returns the balance net of frozen amounts and,
// unless includeUnsettled is set, net of the unfrozen unsettled portion.
func (l *Ledger) SpendableBalanceOf(id uuid.UUID, includeUnsettled bool) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.accounts[id]
	if a == nil {
		return 0
	}
	return l.spendable(a, includeUnsettled, l.nowUnix())
}

func (l *Ledger) spendable(a *accountState, includeUnsettled bool, now int64) int64 {
	s := a.balance - a.frozenTotal
	if !includeUnsettled {
		total, frozen := l.unsettled(a, now)
		s -= total - frozen
	}
	return s
}

// UnsettledBalanceOf returns the account's total unsettled amount and
// the frozen portion of it. Pure query.
func (l *Ledger) UnsettledBalanceOf(id uuid.UUID) (total, frozen int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.accounts[id]
	if a == nil {
		return 0, 0
	}
	return l.unsettled(a, l.nowUnix())
}

// Nonce returns the account's transfer counter.
func (l *Ledger) Nonce(id uuid.UUID) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a := l.accounts[id]; a != nil {
		return a.nonce
	}
	return 0
}

// FrozenTotal returns the running sum of frozen sub-amounts across all
// of the account's records, including records that have settled while
// still frozen.
func (l *Ledger) FrozenTotal(id uuid.UUID) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a := l.accounts[id]; a != nil {
		return a.frozenTotal
	}
	return 0
}

// RecordAt returns the record at index for the account, and whether it
// exists. Detached (settled-but-frozen) records are still addressable.
func (l *Ledger) RecordAt(id uuid.UUID, index uint64) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.accounts[id]
	if a == nil {
		return Record{}, false
	}
	rec := a.queue.getAt(index)
	return rec, rec.Exists()
}

// unsettled computes (total, frozen) unsettled amounts without mutating
// anything. It combines the cached aggregates with a backward walk over
// records appended since the last cleanup, then corrects for cached
// records whose window has passed but which cleanup has not yet retired.
func (l *Ledger) unsettled(a *accountState, now int64) (total, frozen int64) {
	q := a.queue
	total, frozen = a.cachedUnsettled, a.cachedFrozen

	// Records past the cache boundary. Settlement times are
	// non-decreasing along the queue, so the walk can stop at the first
	// settled record.
	idx := q.tail
	for idx != 0 && idx > q.cacheIndex {
		rec, ok := q.records[idx]
		if !ok || rec.SettleTime <= now {
			break
		}
		total += rec.Amount
		frozen += rec.Frozen
		idx = rec.Prev
	}

	// Cached records that have settled since the last cleanup must not
	// count as unsettled.
	cur := q.head
	for cur != 0 && cur <= q.cacheIndex {
		rec := q.records[cur]
		if rec.SettleTime > now {
			break
		}
		total -= rec.Amount
		frozen -= rec.Frozen
		cur = rec.Next
	}
	return total, frozen
}

// ---- Settlement maintenance ----

// Cleanup retires settled records from the head of the account's queue
// and extends the cache boundary, bounded by the configured step budget.
// Repeated invocations with no intervening transfers never change a
// subsequent balance query's result.
func (l *Ledger) Cleanup(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a := l.accounts[id]; a != nil {
		l.cleanup(a, l.nowUnix())
	}
}

func (l *Ledger) cleanup(a *accountState, now int64) {
	steps := l.maxSteps
	q := a.queue

	// Phase 1: retire settled records at the head. Records with a
	// frozen remainder are detached without destroying their storage:
	// they must stay addressable until the authority resolves them.
	for steps > 0 && q.head != 0 {
		idx := q.head
		rec := *q.records[idx]
		if rec.SettleTime > now {
			break
		}
		withinCache := idx <= q.cacheIndex
		_, _, _ = q.dequeueHead(rec.Frozen == 0)
		if withinCache {
			a.cachedUnsettled -= rec.Amount
			a.cachedFrozen -= rec.Frozen
		} else {
			q.cacheIndex = idx
		}
		steps--
	}

	if q.head == 0 {
		q.cacheIndex = 0
		a.cachedUnsettled = 0
		a.cachedFrozen = 0
		return
	}

	// Phase 2: fold not-yet-cached records into the aggregates with the
	// remaining budget. The boundary record, when at or past head, is
	// always live; a boundary below head means nothing live is cached
	// yet, so the walk starts at head.
	cur := q.head
	if q.cacheIndex >= q.head {
		cur = q.records[q.cacheIndex].Next
	}
	for steps > 0 && cur != 0 {
		rec := q.records[cur]
		a.cachedUnsettled += rec.Amount
		a.cachedFrozen += rec.Frozen
		q.cacheIndex = cur
		cur = rec.Next
		steps--
	}
}

// ---- Mint / Burn ----

// Mint credits amount directly into the account's settled balance; no
// record is opened and no grace period applies.
func (l *Ledger) Mint(to uuid.UUID, amount int64) error {
	if to == uuid.Nil {
		return apperror.ErrInvalidDestination()
	}
	if amount <= 0 {
		return apperror.ErrInvalidAmount("mint amount must be positive")
	}
	l.mu.Lock()
	a := l.account(to)
	a.balance += amount
	a.nonce++
	evt := l.newEvent(domain.EventMinted, to)
	evt.Amount = amount
	evt.SettledAmount = amount
	l.mu.Unlock()

	l.publish([]domain.LedgerEvent{evt})
	return nil
}

// Burn destroys amount of the account's settled, unfrozen value.
// Provisional value cannot be burned: an owner must not be able to
// destroy a disputed batch before the authority can act on it.
func (l *Ledger) Burn(from uuid.UUID, amount int64) error {
	if amount <= 0 {
		return apperror.ErrInvalidAmount("burn amount must be positive")
	}
	l.mu.Lock()
	a := l.account(from)
	now := l.nowUnix()
	l.cleanup(a, now)
	spendable := l.spendable(a, false, now)
	if spendable < amount {
		l.mu.Unlock()
		return apperror.ErrInsufficientFunds(spendable, amount)
	}
	a.balance -= amount
	a.nonce++
	evt := l.newEvent(domain.EventBurned, from)
	evt.Amount = amount
	evt.SettledAmount = amount
	l.mu.Unlock()

	l.publish([]domain.LedgerEvent{evt})
	return nil
}

// ---- Transfer / Spend ----

// TransferResult reports how a completed transfer drew its funds.
type TransferResult struct {
	UnsettledSpent int64  `json:"unsettled_spent"`
	SettledSpent   int64  `json:"settled_spent"`
	RecordIndex    uint64 `json:"record_index"` // receiver's new record
	FromNonce      uint64 `json:"from_nonce"`
	ToNonce        uint64 `json:"to_nonce"`
}

// Transfer moves amount from one account to another. With
// includeUnsettled the sender's unsettled records are consumed first,
// newest to oldest; any shortfall comes from settled value. The
// receiver always gets a fresh unsettled record for the full amount:
// every hop resets the recoverable window.
func (l *Ledger) Transfer(from, to uuid.UUID, amount int64, includeUnsettled bool) (*TransferResult, error) {
	if to == uuid.Nil {
		return nil, apperror.ErrInvalidDestination()
	}
	if to == from {
		return nil, apperror.ErrSelfTransfer()
	}
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount("transfer amount must be positive")
	}

	l.mu.Lock()
	src := l.account(from)
	dst := l.account(to)
	now := l.nowUnix()

	l.cleanup(src, now)
	l.cleanup(dst, now)

	spendable := l.spendable(src, includeUnsettled, now)
	if spendable < amount {
		l.mu.Unlock()
		return nil, apperror.ErrInsufficientFunds(spendable, amount)
	}

	var events []domain.LedgerEvent
	var unsettledSpent int64
	if includeUnsettled {
		unsettledSpent = l.spendUnsettled(src, from, amount, now, &events)
	}

	src.balance -= amount
	dst.balance += amount
	idx := dst.queue.enqueue(amount, now+l.window)
	src.nonce++
	dst.nonce++

	evt := l.newEvent(domain.EventTransferCompleted, from)
	evt.Counterparty = &to
	evt.Amount = amount
	evt.UnsettledAmount = unsettledSpent
	evt.SettledAmount = amount - unsettledSpent
	evt.RecordIndex = idx
	events = append(events, evt)

	res := &TransferResult{
		UnsettledSpent: unsettledSpent,
		SettledSpent:   amount - unsettledSpent,
		RecordIndex:    idx,
		FromNonce:      src.nonce,
		ToNonce:        dst.nonce,
	}
	l.mu.Unlock()

	l.publish(events)
	return res, nil
}

// spendUnsettled draws up to amount from the account's unsettled
// records, walking backward from the tail so the newest, least-certain
// funds are consumed before older ones. Returns the amount actually
// drawn; the shortfall, if any, is the caller's to take from settled
// value.
func (l *Ledger) spendUnsettled(a *accountState, id uuid.UUID, amount, now int64, events *[]domain.LedgerEvent) int64 {
	q := a.queue
	remaining := amount
	idx := q.tail
	for remaining > 0 && idx != 0 {
		rec, ok := q.records[idx]
		if !ok || rec.SettleTime <= now {
			break
		}
		prev := rec.Prev
		if avail := rec.Amount - rec.Frozen; avail > 0 {
			take := min(avail, remaining)
			withinCache := idx <= q.cacheIndex
			if take == rec.Amount && rec.Frozen == 0 {
				atBoundary := idx == q.cacheIndex
				_ = q.deleteAt(idx)
				if atBoundary {
					// The boundary record is gone; the nearest
					// surviving older record takes its place so the
					// cached aggregates stay exact.
					q.cacheIndex = prev
				}
			} else {
				rec.Amount -= take
			}
			if withinCache {
				a.cachedUnsettled -= take
			}
			remaining -= take

			evt := l.newEvent(domain.EventUnsettledSpent, id)
			evt.Amount = take
			evt.UnsettledAmount = take
			evt.RecordIndex = idx
			*events = append(*events, evt)
		}
		idx = prev
	}
	if q.head == 0 {
		q.cacheIndex = 0
		a.cachedUnsettled = 0
		a.cachedFrozen = 0
	}
	return amount - remaining
}

// ---- Freeze / Recovery ----

// Freeze suspends the referenced sub-amounts. The batch is atomic: any
// failing suspension aborts the whole call with no mutation. Only
// still-unsettled records may be frozen.
func (l *Ledger) Freeze(suspensions []domain.Suspension) error {
	l.mu.Lock()
	now := l.nowUnix()

	// Validation pass. Cumulative headroom per record so duplicate
	// references within one batch cannot over-freeze.
	pending := make(map[suspensionKey]int64, len(suspensions))
	for _, s := range suspensions {
		if s.Amount <= 0 {
			l.mu.Unlock()
			return apperror.ErrInvalidAmount("freeze amount must be positive")
		}
		a := l.accounts[s.Account]
		if a == nil {
			l.mu.Unlock()
			return apperror.ErrRecordNotFound()
		}
		rec := a.queue.getAt(s.RecordIndex)
		if !rec.Exists() {
			l.mu.Unlock()
			return apperror.ErrRecordNotFound()
		}
		if rec.SettleTime <= now {
			l.mu.Unlock()
			return apperror.ErrAlreadySettled()
		}
		k := suspensionKey{s.Account, s.RecordIndex}
		pending[k] += s.Amount
		if pending[k] > rec.Amount-rec.Frozen {
			l.mu.Unlock()
			return apperror.ErrInvalidAmount("freeze exceeds unfrozen record amount")
		}
	}

	// Apply pass; cannot fail after validation.
	events := make([]domain.LedgerEvent, 0, len(suspensions))
	for _, s := range suspensions {
		a := l.accounts[s.Account]
		_ = a.queue.freeze(s.RecordIndex, s.Amount)
		a.frozenTotal += s.Amount
		if s.RecordIndex <= a.queue.cacheIndex {
			a.cachedFrozen += s.Amount
		}
		evt := l.newEvent(domain.EventFreezeApplied, s.Account)
		evt.Amount = s.Amount
		evt.RecordIndex = s.RecordIndex
		events = append(events, evt)
	}
	l.mu.Unlock()

	l.publish(events)
	return nil
}

type suspensionKey struct {
	account uuid.UUID
	index   uint64
}

// CloseCase resolves frozen sub-amounts, either releasing them back to
// their owner (recover=false) or moving them to the victim account
// (recover=true). The batch is atomic. A recovered amount always opens
// a fresh unsettled record at the victim; the emitted notification
// classifies the value as settled or unsettled by whether the original
// record had passed its window.
func (l *Ledger) CloseCase(recoverFunds bool, victim uuid.UUID, suspensions []domain.Suspension) error {
	if recoverFunds && victim == uuid.Nil {
		return apperror.ErrInvalidDestination()
	}

	l.mu.Lock()
	now := l.nowUnix()

	// Validation pass.
	pending := make(map[suspensionKey]int64, len(suspensions))
	for _, s := range suspensions {
		if s.Amount <= 0 {
			l.mu.Unlock()
			return apperror.ErrInvalidAmount("resolution amount must be positive")
		}
		a := l.accounts[s.Account]
		if a == nil {
			l.mu.Unlock()
			return apperror.ErrRecordNotFound()
		}
		rec := a.queue.getAt(s.RecordIndex)
		if !rec.Exists() {
			l.mu.Unlock()
			return apperror.ErrRecordNotFound()
		}
		k := suspensionKey{s.Account, s.RecordIndex}
		pending[k] += s.Amount
		if pending[k] > rec.Frozen {
			l.mu.Unlock()
			return apperror.ErrInvalidAmount("unfreeze exceeds frozen record amount")
		}
	}

	var vic *accountState
	if recoverFunds {
		vic = l.account(victim)
	}

	events := make([]domain.LedgerEvent, 0, len(suspensions))
	for _, s := range suspensions {
		a := l.accounts[s.Account]
		q := a.queue
		rec := q.getAt(s.RecordIndex)

		// A record before head (or with the queue empty) is outside the
		// active window, kept alive purely for this bookkeeping; its
		// storage goes away once the last frozen sub-amount resolves.
		outside := s.RecordIndex < q.head || q.head == 0
		destroy := outside && rec.Frozen == s.Amount
		_ = q.unfreeze(s.RecordIndex, s.Amount, destroy)
		a.frozenTotal -= s.Amount
		if !outside && s.RecordIndex <= q.cacheIndex {
			a.cachedFrozen -= s.Amount
		}

		evt := l.newEvent(domain.EventCaseClosed, s.Account)
		evt.Amount = s.Amount
		evt.Recovered = recoverFunds
		evt.RecordIndex = s.RecordIndex

		if recoverFunds {
			wasSettled := rec.SettleTime <= now
			if !destroy {
				_ = q.decrementAmount(s.RecordIndex, s.Amount)
				if !outside && s.RecordIndex <= q.cacheIndex {
					a.cachedUnsettled -= s.Amount
				}
				if after := q.getAt(s.RecordIndex); !outside && after.Exists() &&
					after.Amount == 0 && after.Frozen == 0 {
					atBoundary := s.RecordIndex == q.cacheIndex
					_ = q.deleteAt(s.RecordIndex)
					if atBoundary {
						q.cacheIndex = after.Prev
					}
					if q.head == 0 {
						q.cacheIndex = 0
						a.cachedUnsettled = 0
						a.cachedFrozen = 0
					}
				}
			}
			a.balance -= s.Amount
			vic.balance += s.Amount
			a.nonce++
			vic.nonce++
			vidx := vic.queue.enqueue(s.Amount, now+l.window)

			evt.Counterparty = &victim
			evt.RecordIndex = vidx
			if wasSettled {
				evt.SettledAmount = s.Amount
			} else {
				evt.UnsettledAmount = s.Amount
			}
		}
		events = append(events, evt)
	}
	l.mu.Unlock()

	l.publish(events)
	return nil
}
