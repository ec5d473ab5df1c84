package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/event_dispatch/internal/config"
	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(url string) *WebhookWorker {
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "s3cret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	return NewWebhookWorker(nil, log, cfg)
}

func testPayload(t *testing.T) (DispatchEvent, string) {
	t.Helper()
	inc := &models.Incident{ID: 11, EventID: 2, IncidentNumber: 4, State: models.IncidentActive}
	ev := NewDispatchEvent(EventIncidentCreated, inc, nil)
	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	return ev, string(raw)
}

func TestWebhookWorker_DeliversSignedPayload(t *testing.T) {
	ev, raw := testPayload(t)

	var gotSig, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotSig = r.Header.Get(signatureHeader)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w := newTestWorker(srv.URL)
	ok := w.processWebhookEvent(context.Background(), ev, raw)

	assert.True(t, ok)
	assert.Equal(t, raw, gotBody)
	assert.Equal(t, generateHMACSHA256(raw, "s3cret"), gotSig)
}

func TestWebhookWorker_RetriesUntilSuccess(t *testing.T) {
	ev, raw := testPayload(t)

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ok := newTestWorker(srv.URL).processWebhookEvent(context.Background(), ev, raw)

	assert.True(t, ok)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestWebhookWorker_GivesUpAfterMaxRetries(t *testing.T) {
	ev, raw := testPayload(t)

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ok := newTestWorker(srv.URL).processWebhookEvent(context.Background(), ev, raw)

	assert.False(t, ok)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestWebhookWorker_SkipsWithoutURL(t *testing.T) {
	ev, raw := testPayload(t)
	assert.False(t, newTestWorker("").processWebhookEvent(context.Background(), ev, raw))
}

func TestNewDispatchEvent_Assignment(t *testing.T) {
	label := "Ambulance 2"
	inc := &models.Incident{ID: 5, EventID: 1, IncidentNumber: 9, State: models.IncidentStandby}
	a := &models.Assignment{ID: 3, IncidentID: 5, ServiceLabel: &label, State: models.AssignmentEnRoute}

	ev := NewDispatchEvent(EventAssignmentStateChanged, inc, a)

	assert.Equal(t, EventAssignmentStateChanged, ev.Type)
	assert.EqualValues(t, 1, ev.EventID)
	assert.EqualValues(t, 9, ev.IncidentNumber)
	require.NotNil(t, ev.AssignmentID)
	assert.EqualValues(t, 3, *ev.AssignmentID)
	assert.Equal(t, "Ambulance 2", ev.Target)
	assert.Equal(t, "en-route", ev.State)
}
