package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/celebration/internal/core"
	"github.com/vovakirdan/celebration/internal/diag"
)

type eventLog struct {
	mu     sync.Mutex
	events []diag.Event
}

func (l *eventLog) Record(e diag.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) kinds() []diag.Kind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]diag.Kind, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Kind)
	}
	return out
}

func newTestServer(t *testing.T, rec diag.Recorder) *httptest.Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 3
	cfg.Game.TickMS = 20
	cfg.Game.FrameRate = 100

	srv := NewServer(cfg, rec, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg any) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

// readUntil reads snapshots until match returns true or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(snapshotMessage) bool) snapshotMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("no matching snapshot: %v", err)
		}
		var snap snapshotMessage
		if err := json.Unmarshal(payload, &snap); err != nil {
			t.Fatalf("bad snapshot JSON: %v", err)
		}
		if match(snap) {
			return snap
		}
	}
}

func TestIndexServesPage(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Happy Birthday") {
		t.Error("page does not contain the greeting")
	}

	missing, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path status = %d, expected 404", missing.StatusCode)
	}
}

func TestWebSessionPlay(t *testing.T) {
	rec := &eventLog{}
	ts := newTestServer(t, rec)
	conn := dial(t, ts, "?w=40&h=12")

	first := readUntil(t, conn, func(snapshotMessage) bool { return true })
	if first.State != "idle" || first.Disabled || len(first.Entities) != 0 {
		t.Fatalf("initial snapshot = %+v", first)
	}

	send(t, conn, clientMessage{Type: "start"})
	withBalloon := readUntil(t, conn, func(s snapshotMessage) bool {
		return s.State == "running" && len(s.Entities) > 0
	})

	target := withBalloon.Entities[0]
	if target.X+target.W > 40 || target.Y+target.H > 12 {
		t.Errorf("balloon outside the requested area: %+v", target)
	}
	if target.Color == "" || target.ExpiresInMS <= 0 {
		t.Errorf("balloon missing color or lifetime: %+v", target)
	}

	send(t, conn, clientMessage{Type: "click", ID: target.ID})
	scored := readUntil(t, conn, func(s snapshotMessage) bool { return s.Score == 1 })
	for _, e := range scored.Entities {
		if e.ID == target.ID {
			t.Error("popped balloon still in snapshot")
		}
	}

	send(t, conn, clientMessage{Type: "reset"})
	reset := readUntil(t, conn, func(s snapshotMessage) bool { return s.State == "stopped" })
	if reset.Score != 0 || len(reset.Entities) != 0 {
		t.Errorf("reset snapshot = %+v", reset)
	}

	kinds := rec.kinds()
	if len(kinds) != 2 || kinds[0] != diag.KindStarted || kinds[1] != diag.KindReset {
		t.Errorf("recorded events = %v", kinds)
	}
}

func TestWebMalformedMessagesAreIgnored(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "?w=40&h=12")
	readUntil(t, conn, func(snapshotMessage) bool { return true })

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	send(t, conn, clientMessage{Type: "dance"})
	send(t, conn, clientMessage{Type: "click", ID: "not-a-uuid"})
	send(t, conn, clientMessage{Type: "start"})

	snap := readUntil(t, conn, func(s snapshotMessage) bool { return s.State == "running" })
	if snap.Score != 0 {
		t.Errorf("malformed input changed the score: %d", snap.Score)
	}
}

func TestWebWithoutDimensionsIsDisabled(t *testing.T) {
	rec := &eventLog{}
	ts := newTestServer(t, rec)
	conn := dial(t, ts, "")

	snap := readUntil(t, conn, func(snapshotMessage) bool { return true })
	if !snap.Disabled {
		t.Fatalf("session without dimensions should be disabled: %+v", snap)
	}

	send(t, conn, clientMessage{Type: "start"})
	send(t, conn, clientMessage{Type: "reset"})

	// Commands on a disabled session change nothing, so no snapshot follows.
	_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("disabled session pushed a snapshot after a command")
	}

	kinds := rec.kinds()
	if len(kinds) != 1 || kinds[0] != diag.KindDisabled {
		t.Errorf("recorded events = %v", kinds)
	}
}

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    core.Command
		wantErr bool
	}{
		{"start", `{"type":"start"}`, core.Command{Action: core.ActionStart}, false},
		{"reset", `{"type":"reset"}`, core.Command{Action: core.ActionReset}, false},
		{"click", `{"type":"click","id":"abc"}`, core.Command{Action: core.ActionClaim, Target: "abc"}, false},
		{"resize", `{"type":"resize","w":30,"h":10}`, core.Command{Action: core.ActionResize, Width: 30, Height: 10}, false},
		{"click without id", `{"type":"click"}`, core.Command{}, true},
		{"zero resize", `{"type":"resize","w":0,"h":10}`, core.Command{}, true},
		{"unknown type", `{"type":"quit"}`, core.Command{}, true},
		{"not json", `{`, core.Command{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeCommand([]byte(tc.payload))
			if tc.wantErr {
				if !errors.Is(err, errMalformed) {
					t.Errorf("decodeCommand() error = %v, expected errMalformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeCommand() failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("decodeCommand() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}
