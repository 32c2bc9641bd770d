package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"recoverable-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureClient records the first delivered request and signals done.
type captureClient struct {
	requests chan *http.Request
	bodies   chan []byte
}

func newCaptureClient() *captureClient {
	return &captureClient{
		requests: make(chan *http.Request, 1),
		bodies:   make(chan []byte, 1),
	}
}

func (c *captureClient) Do(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)
	c.requests <- req
	c.bodies <- body
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func TestWebhookNotifier_DeliversSignedPayload(t *testing.T) {
	client := newCaptureClient()
	sigSvc := NewHMACSignatureService()
	notifier := NewWebhookNotifier("http://monitor.example/custody", "secret", sigSvc, client, zerolog.Nop())

	victim := uuid.New()
	evt := domain.LedgerEvent{
		ID:              uuid.New(),
		Type:            domain.EventCaseClosed,
		Account:         uuid.New(),
		Counterparty:    &victim,
		Amount:          40,
		UnsettledAmount: 40,
		RecordIndex:     3,
		Recovered:       true,
		OccurredAt:      time.Now().UTC(),
	}

	require.NoError(t, notifier.Notify(context.Background(), evt))

	select {
	case body := <-client.bodies:
		var payload NotificationPayload
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "CASE_CLOSED", payload.EventType)
		assert.Equal(t, evt.ID.String(), payload.Data.EventID)
		assert.Equal(t, victim.String(), payload.Data.Counterparty)
		assert.True(t, payload.Data.Recovered)

		// Signature must verify against the data portion.
		dataBytes, err := json.Marshal(payload.Data)
		require.NoError(t, err)
		assert.True(t, sigSvc.Verify("secret", string(dataBytes), payload.Signature))
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}
}

func TestWebhookNotifier_NoURLConfigured(t *testing.T) {
	client := newCaptureClient()
	notifier := NewWebhookNotifier("", "secret", NewHMACSignatureService(), client, zerolog.Nop())

	err := notifier.Notify(context.Background(), domain.LedgerEvent{ID: uuid.New(), Type: domain.EventFreezeApplied})
	require.NoError(t, err)

	select {
	case <-client.requests:
		t.Fatal("no delivery expected without a configured URL")
	case <-time.After(50 * time.Millisecond):
	}
}
