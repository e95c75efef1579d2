package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/content"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/registry"
)

func dialFeed(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitForClients blocks until the hub has registered n clients. The
// dialer's handshake completes slightly before the server adds the
// client to the hub, so tests wait before mutating.
func waitForClients(t *testing.T, h *FeedHub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.mu.Lock()
		got := len(h.clients)
		h.mu.Unlock()
		if got >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("feed clients never reached %d", n)
}

func readEvent(t *testing.T, conn *websocket.Conn) FeedEvent {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var ev FeedEvent
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("unmarshal %q: %v", msg, err)
	}
	return ev
}

func TestFeedBroadcastsMutations(t *testing.T) {
	s, c := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dialFeed(t, ts)
	waitForClients(t, s.hub, 1)

	c.Props.Register("feed-prop", content.Prop{ID: "feed-prop", Name: "P", Category: content.CategoryTech}, registry.AsMod("pack"))

	ev := readEvent(t, conn)
	if ev.Kind != content.KindProps {
		t.Errorf("kind = %q, want props", ev.Kind)
	}
	if ev.Size != c.Props.Len() {
		t.Errorf("size = %d, want %d", ev.Size, c.Props.Len())
	}

	c.Props.Unregister("feed-prop")
	ev = readEvent(t, conn)
	if ev.Size != c.Props.Len() {
		t.Errorf("size after unregister = %d, want %d", ev.Size, c.Props.Len())
	}
}

func TestFeedMultipleClients(t *testing.T) {
	s, c := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	first := dialFeed(t, ts)
	second := dialFeed(t, ts)
	waitForClients(t, s.hub, 2)

	c.Environments.Register("feed-env", content.Environment{
		ID: "feed-env", Name: "E", SkyColor: "#000000", FloorColor: "#111111", AmbientIntensity: 0.5,
	}, registry.AsMod("pack"))

	for _, conn := range []*websocket.Conn{first, second} {
		ev := readEvent(t, conn)
		if ev.Kind != content.KindEnvironments {
			t.Errorf("kind = %q, want environments", ev.Kind)
		}
	}
}

func TestFeedCloseDisconnectsClients(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dialFeed(t, ts)
	waitForClients(t, s.hub, 1)
	s.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected read to fail after hub close")
	}
}
