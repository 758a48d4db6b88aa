package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shenikar/safezone_notifier/internal/config"
	"github.com/shenikar/safezone_notifier/internal/observability"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T, url string) *WebhookWorker {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "secret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	return NewWebhookWorker(nil, logger, cfg, observability.NewMetricsForTesting(), clockwork.NewRealClock())
}

func testEvent(t *testing.T) (NotificationEvent, []byte) {
	t.Helper()
	event := NotificationEvent{
		ID:     uuid.New(),
		UserID: "user-1",
		Report: ReportSummary{
			ID:          42,
			Category:    "flood",
			Description: "Banjir setinggi lutut",
			Latitude:    -6.2,
			Longitude:   106.8,
			Address:     "Jl. Sudirman, Jakarta",
		},
		Timestamp: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return event, payload
}

func TestWebhookWorker_DeliverSignsPayload(t *testing.T) {
	event, payload := testEvent(t)

	var gotBody []byte
	var gotSignature, gotEventID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get("X-Webhook-Signature")
		gotEventID = r.Header.Get("X-Webhook-Event-ID")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	worker := newTestWorker(t, server.URL)
	require.NoError(t, worker.deliver(context.Background(), event, payload))

	assert.JSONEq(t, string(payload), string(gotBody))
	assert.Equal(t, generateHMACSHA256(payload, "secret"), gotSignature)
	assert.Equal(t, event.ID.String(), gotEventID)
}

func TestWebhookWorker_RetriesUntilSuccess(t *testing.T) {
	event, payload := testEvent(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	worker := newTestWorker(t, server.URL)
	require.NoError(t, worker.deliver(context.Background(), event, payload))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestWebhookWorker_GivesUpAfterMaxRetries(t *testing.T) {
	event, payload := testEvent(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	worker := newTestWorker(t, server.URL)
	worker.processEvent(context.Background(), event, payload)

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, 1.0, testutil.ToFloat64(worker.metrics.WebhookDeliveries.WithLabelValues("failed")))
}

func TestWebhookWorker_SkipsWithoutURL(t *testing.T) {
	event, payload := testEvent(t)

	worker := newTestWorker(t, "")
	worker.processEvent(context.Background(), event, payload)

	assert.Equal(t, 1.0, testutil.ToFloat64(worker.metrics.WebhookDeliveries.WithLabelValues("skipped")))
}

func TestWebhookWorker_StopsOnCancel(t *testing.T) {
	event, payload := testEvent(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	worker := newTestWorker(t, server.URL)
	worker.cfg.WebhookBaseDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := worker.deliver(ctx, event, payload)
	assert.ErrorIs(t, err, context.Canceled)
}
