package audit

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	l := NewLogger(t.TempDir(), "userfile")
	if err := l.SetKey([]byte("0123456789abcdef")); err != nil {
		t.Fatalf("SetKey failed: %v", err)
	}
	return l
}

func TestLogAndEvents(t *testing.T) {
	l := newTestLogger(t)

	if err := l.Log(OpUserCreate, "alice", "", ResultSuccess); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if err := l.Log(OpRecordAdd, "alice", "example.com", ResultSuccess); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := l.Events(0)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Operation != OpUserCreate {
		t.Errorf("event 0 op = %s, want %s", events[0].Operation, OpUserCreate)
	}
	if events[1].Domain != "example.com" {
		t.Errorf("event 1 domain = %s, want example.com", events[1].Domain)
	}
	if events[0].Chain.Prev != "" {
		t.Error("first event should have empty predecessor link")
	}
	if events[1].Chain.Prev != events[0].Chain.HMAC {
		t.Error("second event should link to first event's HMAC")
	}
}

func TestEventsLimit(t *testing.T) {
	l := newTestLogger(t)
	for i := 0; i < 5; i++ {
		if err := l.Log(OpRecordAdd, "alice", "d", ResultSuccess); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	events, err := l.Events(2)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events with limit, got %d", len(events))
	}
}

func TestVerify(t *testing.T) {
	l := newTestLogger(t)
	for i := 0; i < 3; i++ {
		if err := l.Log(OpRecordAdd, "alice", "d", ResultSuccess); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	n, err := l.Verify()
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 verified events, got %d", n)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	l := newTestLogger(t)
	for i := 0; i < 3; i++ {
		if err := l.Log(OpRecordAdd, "alice", "d", ResultSuccess); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	// Flip the user of the second event.
	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("read audit file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	var ev Event
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	ev.User = "mallory"
	tampered, _ := json.Marshal(ev)
	lines[1] = string(tampered)
	if err := os.WriteFile(l.Path(), []byte(strings.Join(lines, "\n")+"\n"), 0600); err != nil {
		t.Fatalf("write audit file: %v", err)
	}

	n, err := l.Verify()
	if !errors.Is(err, ErrChainBroken) {
		t.Errorf("expected ErrChainBroken, got %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 verified event before break, got %d", n)
	}
}

func TestVerifyDetectsDeletion(t *testing.T) {
	l := newTestLogger(t)
	for i := 0; i < 3; i++ {
		if err := l.Log(OpRecordAdd, "alice", "d", ResultSuccess); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("read audit file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Drop the middle event.
	kept := []string{lines[0], lines[2]}
	if err := os.WriteFile(l.Path(), []byte(strings.Join(kept, "\n")+"\n"), 0600); err != nil {
		t.Fatalf("write audit file: %v", err)
	}

	if _, err := l.Verify(); !errors.Is(err, ErrChainBroken) {
		t.Errorf("expected ErrChainBroken, got %v", err)
	}
}

func TestUnkeyedLoggerDropsEvents(t *testing.T) {
	l := NewLogger(t.TempDir(), "userfile")
	if err := l.Log(OpUserOpen, "alice", "", ResultSuccess); err != nil {
		t.Fatalf("unkeyed Log should be a no-op, got %v", err)
	}
	if _, err := os.Stat(l.Path()); !os.IsNotExist(err) {
		t.Error("unkeyed logger must not create an audit file")
	}

	var nilLogger *Logger
	if err := nilLogger.Log(OpUserOpen, "alice", "", ResultSuccess); err != nil {
		t.Errorf("nil logger Log should be a no-op, got %v", err)
	}
}
