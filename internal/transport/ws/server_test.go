package ws

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"shapenav/internal/nav"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv, err := NewServer(Options{
		Config:     nav.DefaultConfig(),
		FPS:        120,
		FrameEvery: 1,
		Logger:     log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket server: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until one of type typ arrives.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Error waiting for %q: %v", typ, err)
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Server sent invalid JSON %q: %v", data, err)
		}
		if msg["type"] == typ {
			return msg
		}
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body["status"])
	}
}

func TestSessionStreamsFrames(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)

	msg := readUntil(t, conn, MessageTypeFrame)
	rot, ok := msg["rotation"].([]any)
	if !ok || len(rot) != 4 {
		t.Errorf("Expected a 4-component rotation, got %v", msg["rotation"])
	}
	if msg["phase"] != "autoRotating" {
		t.Errorf("Expected autoRotating, got %v", msg["phase"])
	}
}

func TestCloseIsEchoed(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)

	if err := conn.WriteJSON(map[string]string{"type": MessageTypeClose}); err != nil {
		t.Fatal(err)
	}
	readUntil(t, conn, MessageTypeNavigateClose)

	msg := readUntil(t, conn, MessageTypeFrame)
	if msg["phase"] != "transitioning" {
		t.Errorf("Expected transitioning after close, got %v", msg["phase"])
	}
}

func TestMalformedMessagesGetErrors(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	readUntil(t, conn, MessageTypeError)

	if err := conn.WriteJSON(map[string]string{"type": "teleport"}); err != nil {
		t.Fatal(err)
	}
	msg := readUntil(t, conn, MessageTypeError)
	if s, _ := msg["message"].(string); !strings.Contains(s, "teleport") {
		t.Errorf("Expected the error to name the type, got %q", s)
	}

	// The session survives bad input.
	if err := conn.WriteJSON(map[string]string{"type": MessageTypeKey, "key": "d"}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if readUntil(t, conn, MessageTypeFrame)["debug"] == true {
			return
		}
	}
	t.Error("Expected debug mode to show in frames after the key message")
}

func TestDecodeInbound(t *testing.T) {
	m, err := DecodeInbound([]byte(`{"type":"pointermove","x":12.5,"y":40}`))
	if err != nil {
		t.Fatalf("DecodeInbound failed: %v", err)
	}
	if m.Type != MessageTypePointerMove || m.X != 12.5 || m.Y != 40 {
		t.Errorf("Unexpected message %+v", m)
	}

	if _, err := DecodeInbound([]byte(`{"x":1}`)); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("Expected ErrUnknownMessage for a missing type, got %v", err)
	}
	if _, err := DecodeInbound([]byte(`[1,2]`)); err == nil || errors.Is(err, ErrUnknownMessage) {
		t.Errorf("Expected a decode error, got %v", err)
	}
}

func TestApplyDrivesNavigator(t *testing.T) {
	n, err := nav.New(nav.DefaultConfig(), nil, nav.WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatal(err)
	}

	msgs := []Inbound{
		{Type: MessageTypePointerDown, X: 100, Y: 100},
		{Type: MessageTypePointerMove, X: 160, Y: 100},
	}
	for _, m := range msgs {
		if err := m.Apply(n); err != nil {
			t.Fatalf("Apply(%s) failed: %v", m.Type, err)
		}
	}
	if n.Snapshot().Phase != nav.PhaseDragging {
		t.Errorf("Expected dragging, got %s", n.Snapshot().Phase)
	}

	if err := (Inbound{Type: MessageTypeResize}).Apply(n); err == nil {
		t.Error("Expected an error for an empty resize")
	}
	if err := (Inbound{Type: MessageTypeKey, Key: "Enter"}).Apply(n); err != nil {
		t.Errorf("Expected unbound keys to be ignored, got %v", err)
	}
}
