package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"recoverable-ledger/internal/core/domain"
	"recoverable-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// notifyRetryIntervals defines the delivery retry schedule.
var notifyRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// NotificationPayload is the JSON structure POSTed to the monitoring
// endpoint for custody events.
type NotificationPayload struct {
	EventType string                  `json:"event_type"`
	Data      NotificationPayloadData `json:"data"`
	Signature string                  `json:"signature"`
}

// NotificationPayloadData holds the custody event details.
type NotificationPayloadData struct {
	EventID         string `json:"event_id"`
	Account         string `json:"account"`
	Counterparty    string `json:"counterparty,omitempty"`
	Amount          int64  `json:"amount"`
	SettledAmount   int64  `json:"settled_amount"`
	UnsettledAmount int64  `json:"unsettled_amount"`
	RecordIndex     uint64 `json:"record_index"`
	Recovered       bool   `json:"recovered"`
	Timestamp       int64  `json:"timestamp"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// webhookNotifier implements ports.CaseNotifier by POSTing signed
// payloads to a configured monitoring endpoint.
type webhookNotifier struct {
	url        string
	secretKey  string
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewWebhookNotifier creates a new webhook-based case notifier.
func NewWebhookNotifier(
	url string,
	secretKey string,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	log zerolog.Logger,
) ports.CaseNotifier {
	return &webhookNotifier{
		url:        url,
		secretKey:  secretKey,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		log:        log,
	}
}

// Notify sends the custody event to the monitoring endpoint
// asynchronously with retries.
func (s *webhookNotifier) Notify(_ context.Context, event domain.LedgerEvent) error {
	if s.url == "" {
		s.log.Debug().Str("event_id", event.ID.String()).Msg("notify: no monitoring URL configured, skipping")
		return nil
	}

	data := NotificationPayloadData{
		EventID:         event.ID.String(),
		Account:         event.Account.String(),
		Amount:          event.Amount,
		SettledAmount:   event.SettledAmount,
		UnsettledAmount: event.UnsettledAmount,
		RecordIndex:     event.RecordIndex,
		Recovered:       event.Recovered,
		Timestamp:       event.OccurredAt.Unix(),
	}
	if event.Counterparty != nil {
		data.Counterparty = event.Counterparty.String()
	}

	dataBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal notification data: %w", err)
	}
	signature := s.sigSvc.Sign(s.secretKey, string(dataBytes))

	payload := NotificationPayload{
		EventType: string(event.Type),
		Data:      data,
		Signature: signature,
	}

	// Fire async with retries
	go s.deliverWithRetries(payload, event.ID.String())

	return nil
}

// deliverWithRetries attempts to deliver the notification with backoff.
func (s *webhookNotifier) deliverWithRetries(payload NotificationPayload, eventID string) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		s.log.Error().Err(err).Str("event_id", eventID).Msg("notify: failed to marshal payload")
		return
	}

	for attempt := 0; attempt <= len(notifyRetryIntervals); attempt++ {
		if attempt > 0 {
			time.Sleep(notifyRetryIntervals[attempt-1])
		}

		req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(payloadBytes))
		if err != nil {
			s.log.Error().Err(err).Str("event_id", eventID).Int("attempt", attempt+1).Msg("notify: failed to create request")
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			s.log.Warn().Err(err).Str("event_id", eventID).Int("attempt", attempt+1).Msg("notify: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			s.log.Info().Str("event_id", eventID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: delivered successfully")
			return
		}

		s.log.Warn().Str("event_id", eventID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: non-2xx response, retrying")
	}

	s.log.Error().Str("event_id", eventID).Msg("notify: all retry attempts exhausted")
}
