package telemetry

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-runner/internal/core"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubWelcomeAndPublish(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ws := dial(t, srv)
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))

	var welcome Welcome
	if err := ws.ReadJSON(&welcome); err != nil {
		t.Fatalf("reading welcome failed: %v", err)
	}
	if welcome.Type != MsgWelcome {
		t.Errorf("welcome type = %q, want %q", welcome.Type, MsgWelcome)
	}
	if _, err := uuid.Parse(welcome.ID); err != nil {
		t.Errorf("welcome id %q is not a uuid: %v", welcome.ID, err)
	}

	waitFor(t, func() bool { return hub.Count() == 1 })

	stats := core.RunStats{Tick: 42, Score: 10, Donuts: 1, Distance: 3.5, Laps: 1}
	if err := hub.Publish(NewFrame("s1", "normal", core.GameState{Score: 10}, stats)); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}

	var frame Frame
	if err := ws.ReadJSON(&frame); err != nil {
		t.Fatalf("reading frame failed: %v", err)
	}
	if frame.Type != MsgFrame || frame.Mode != "normal" || frame.State != "playing" {
		t.Errorf("frame header = %+v", frame)
	}
	if frame.Stats != stats {
		t.Errorf("frame stats = %+v, want %+v", frame.Stats, stats)
	}
}

func TestHubDropsClosedObservers(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	a := dial(t, srv)
	dial(t, srv)
	waitFor(t, func() bool { return hub.Count() == 2 })

	a.Close()
	waitFor(t, func() bool { return hub.Count() == 1 })
}

func TestHubPublishRejectsUnencodable(t *testing.T) {
	hub := NewHub(nil)
	if err := hub.Publish(map[string]any{"bad": make(chan int)}); err == nil {
		t.Error("Publish() of a channel should fail")
	}
}

func TestNewFrameState(t *testing.T) {
	tests := []struct {
		state core.GameState
		want  string
	}{
		{core.GameState{}, "playing"},
		{core.GameState{Paused: true}, "paused"},
		{core.GameState{GameOver: true, Paused: true}, "game_over"},
	}
	for _, tt := range tests {
		if got := NewFrame("", "", tt.state, core.RunStats{}).State; got != tt.want {
			t.Errorf("NewFrame(%+v).State = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe() did not return after cancel")
	}
}

func TestFrameJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(NewFrame("s", "hard", core.GameState{}, core.RunStats{MaxHeight: 1}))
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	for _, field := range []string{`"t":"frame"`, `"max_height":1`, `"mode":"hard"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("frame JSON %s missing %s", data, field)
		}
	}
}

func TestHubDropsStalledObserver(t *testing.T) {
	hub := NewHub(nil)
	hub.writeWait = 20 * time.Millisecond
	srv := httptest.NewServer(hub)
	defer srv.Close()

	// The observer never reads, so its socket buffers fill up
	dial(t, srv)
	waitFor(t, func() bool { return hub.Count() == 1 })

	payload := map[string]string{"pad": strings.Repeat("x", 256<<10)}
	for i := 0; i < 400 && hub.Count() > 0; i++ {
		start := time.Now()
		if err := hub.Publish(payload); err != nil {
			t.Fatalf("Publish() failed: %v", err)
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Fatalf("Publish() blocked for %v", elapsed)
		}
	}
	if hub.Count() != 0 {
		t.Errorf("Count() = %d, expected the stalled observer to be dropped", hub.Count())
	}
}
