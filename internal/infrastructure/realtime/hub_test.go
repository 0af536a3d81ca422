//go:build unit
// +build unit

package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/events"
	"github.com/eskiturk2021/api-gateway/internal/pkg/testutil"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hubFixture struct {
	hub    *Hub
	gauge  prometheus.Gauge
	server *httptest.Server
}

func setupHub(t *testing.T) *hubFixture {
	t.Helper()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_websocket_clients"})
	hub := NewHub(testutil.SetupTestLogger(t), gauge, nil)
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r)
	}))

	t.Cleanup(func() {
		server.Close()
		_ = hub.Close()
	})

	return &hubFixture{hub: hub, gauge: gauge, server: server}
}

func (f *hubFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) events.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event events.Event
	require.NoError(t, json.Unmarshal(payload, &event))
	return event
}

func TestHub_GreetsAndBroadcasts(t *testing.T) {
	fixture := setupHub(t)

	first := fixture.dial(t)
	second := fixture.dial(t)

	assert.Equal(t, ConnectionEstablished, readEvent(t, first).Name)
	assert.Equal(t, ConnectionEstablished, readEvent(t, second).Name)

	require.Eventually(t, func() bool {
		return promtestutil.ToFloat64(fixture.gauge) == 2
	}, 5*time.Second, 10*time.Millisecond)

	event := events.New(events.CustomerCreated, map[string]interface{}{"id": "CUST-1234ABCD"})
	require.NoError(t, fixture.hub.Publish(context.Background(), event))

	for _, conn := range []*websocket.Conn{first, second} {
		received := readEvent(t, conn)
		assert.Equal(t, events.CustomerCreated, received.Name)
		assert.Equal(t, "CUST-1234ABCD", received.Data["id"])
	}
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	fixture := setupHub(t)

	conn := fixture.dial(t)
	readEvent(t, conn)
	require.Eventually(t, func() bool {
		return promtestutil.ToFloat64(fixture.gauge) == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return promtestutil.ToFloat64(fixture.gauge) == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestHub_Close(t *testing.T) {
	fixture := setupHub(t)

	conn := fixture.dial(t)
	readEvent(t, conn)

	require.NoError(t, fixture.hub.Close())
	require.NoError(t, fixture.hub.Close())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	err = fixture.hub.Publish(context.Background(), events.New(events.DocumentDeleted, nil))
	assert.ErrorIs(t, err, ErrHubClosed)
}
