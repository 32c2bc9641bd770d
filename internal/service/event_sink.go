package service

import (
	"context"
	"time"

	"recoverable-ledger/internal/core/domain"
	"recoverable-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

const sinkTimeout = 5 * time.Second

// EventFanout implements ledger.EventSink. Every event is logged and
// journaled; custody events (freeze-applied, case-closed) additionally
// go to the notifier. The ledger publishes outside its lock, so this
// may block on I/O without stalling other accounts.
type EventFanout struct {
	eventRepo ports.EventRepository
	notifier  ports.CaseNotifier // optional
	log       zerolog.Logger
}

// NewEventFanout creates the fan-out sink. notifier may be nil when no
// monitoring endpoint is configured.
func NewEventFanout(eventRepo ports.EventRepository, notifier ports.CaseNotifier, log zerolog.Logger) *EventFanout {
	return &EventFanout{
		eventRepo: eventRepo,
		notifier:  notifier,
		log:       log,
	}
}

// Publish delivers one ledger event to all sinks. Delivery is
// best-effort: the ledger state change has already committed, so
// failures are logged, never propagated back.
func (f *EventFanout) Publish(evt domain.LedgerEvent) {
	f.log.Info().
		Str("event_id", evt.ID.String()).
		Str("type", string(evt.Type)).
		Str("account", evt.Account.String()).
		Int64("amount", evt.Amount).
		Uint64("record_index", evt.RecordIndex).
		Msg("ledger event")

	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()

	if err := f.eventRepo.Append(ctx, &evt); err != nil {
		f.log.Error().Err(err).Str("event_id", evt.ID.String()).Msg("failed to journal ledger event")
	}

	if f.notifier == nil {
		return
	}
	switch evt.Type {
	case domain.EventFreezeApplied, domain.EventCaseClosed:
		if err := f.notifier.Notify(ctx, evt); err != nil {
			f.log.Warn().Err(err).Str("event_id", evt.ID.String()).Msg("custody notification failed")
		}
	}
}
