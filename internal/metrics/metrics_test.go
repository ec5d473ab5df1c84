package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_MiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, err := NewCollector(nil)
	require.NoError(t, err)

	router := gin.New()
	router.Use(c.Middleware())
	router.GET("/events/:eventID", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	for _, path := range []string{"/events/1", "/events/2", "/nowhere"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requestTotal.WithLabelValues("GET", "/events/:eventID", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requestTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestCollector_HubCounters(t *testing.T) {
	c, err := NewCollector(nil)
	require.NoError(t, err)

	c.ClientConnected()
	c.ClientConnected()
	c.ClientDisconnected()
	c.MessageSent("location")
	c.MessageSent("location")
	c.MessageSent("text")
	c.ClientDropped()
	c.HistoryRowSkipped()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.connections))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dropped))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.skippedRows))

	expected := `
# HELP event_dispatch_hub_messages_total Messages persisted and fanned out, by content type.
# TYPE event_dispatch_hub_messages_total counter
event_dispatch_hub_messages_total{content_type="location"} 2
event_dispatch_hub_messages_total{content_type="text"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(c.messages, strings.NewReader(expected)))
}

func TestCollector_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	require.NoError(t, err)
	second, err := NewCollector(reg)
	require.NoError(t, err)

	first.MessageSent("text")
	assert.Equal(t, 1.0, testutil.ToFloat64(second.messages.WithLabelValues("text")))
}

func TestCollector_Handler(t *testing.T) {
	c, err := NewCollector(nil)
	require.NoError(t, err)
	c.ClientConnected()

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "event_dispatch_hub_connections 1")
}
