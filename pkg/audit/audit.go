// Package audit provides a tamper-evident operation log with an HMAC
// chain. Each user gets one JSONL file under the data directory; every
// event carries an HMAC over its content and the previous event's HMAC,
// so deletion or alteration of any line breaks the chain.
//
// The HMAC key is derived (HKDF-SHA256) from a record key that is only
// available after a successful integrity gate, which means audit entries
// can neither be forged nor verified without the master password.
//
// Audit logging is best-effort: callers ignore logging errors, and a nil
// or unkeyed Logger silently drops events.
package audit

import (
	"bufio"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/hkdf"
)

// Operation types.
const (
	OpUserCreate    = "user.create"
	OpUserOpen      = "user.open"
	OpRecordAdd     = "record.add"
	OpRecordRemove  = "record.remove"
	OpRecordModify  = "record.modify"
	OpRecordsImport = "records.import"
	OpBackupExport  = "backup.export"
	OpBackupRestore = "backup.restore"
)

// Result indicates the outcome of an operation.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// hkdfInfo binds derived audit keys to this purpose and version.
const hkdfInfo = "pwkeep audit v1"

// keyLength is the derived HMAC key size in bytes.
const keyLength = 32

// Errors
var (
	ErrNoKey        = errors.New("audit: HMAC key not set")
	ErrChainBroken  = errors.New("audit: HMAC chain verification failed")
	ErrEventCorrupt = errors.New("audit: malformed event line")
)

// Event is a single audit record.
type Event struct {
	Version   int    `json:"v"`
	Timestamp string `json:"ts"` // RFC 3339 nanosecond precision
	Operation string `json:"op"`
	User      string `json:"user"`
	Domain    string `json:"domain,omitempty"`
	Result    string `json:"result"`
	Chain     Chain  `json:"chain"`
}

// Chain links an event to its predecessor for tamper detection.
type Chain struct {
	Prev string `json:"prev"` // hex HMAC of the previous event, "" for the first
	HMAC string `json:"hmac"` // hex HMAC of this event
}

// Logger appends HMAC-chained events to one user's audit file.
type Logger struct {
	mu   sync.Mutex
	dir  string
	file string
	key  []byte
}

// NewLogger returns a logger writing to dir/<userFile>.jsonl. The logger
// drops events until SetKey is called.
func NewLogger(dir, userFile string) *Logger {
	return &Logger{dir: dir, file: userFile + ".jsonl"}
}

// SetKey derives the HMAC key from a validated record key via
// HKDF-SHA256.
func (l *Logger) SetKey(recordKey []byte) error {
	if l == nil {
		return nil
	}
	if len(recordKey) == 0 {
		return ErrNoKey
	}
	key := make([]byte, keyLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, recordKey, nil, []byte(hkdfInfo)), key); err != nil {
		return fmt.Errorf("audit: key derivation failed: %w", err)
	}
	l.mu.Lock()
	l.key = key
	l.mu.Unlock()
	return nil
}

// Path returns the audit file location.
func (l *Logger) Path() string {
	return filepath.Join(l.dir, l.file)
}

// sign computes the chained HMAC for an event whose Chain.HMAC is empty.
func (l *Logger) sign(ev *Event) (string, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("audit: failed to marshal event: %w", err)
	}
	mac := hmac.New(sha256.New, l.key)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Log appends one event to the audit file. A nil or unkeyed logger drops
// the event without error.
func (l *Logger) Log(op, user, domain, result string) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.key == nil {
		return nil
	}

	prev, err := l.lastHMAC()
	if err != nil {
		return err
	}

	ev := Event{
		Version:   1,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Operation: op,
		User:      user,
		Domain:    domain,
		Result:    result,
		Chain:     Chain{Prev: prev},
	}
	sum, err := l.sign(&ev)
	if err != nil {
		return err
	}
	ev.Chain.HMAC = sum

	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("audit: failed to marshal event: %w", err)
	}

	if err := os.MkdirAll(l.dir, 0700); err != nil {
		return fmt.Errorf("audit: failed to create audit directory: %w", err)
	}
	f, err := os.OpenFile(l.Path(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("audit: failed to open audit file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("audit: failed to write event: %w", err)
	}
	return nil
}

// lastHMAC returns the chain HMAC of the final event in the file, or ""
// when the file does not exist or is empty.
func (l *Logger) lastHMAC() (string, error) {
	events, err := l.readAll()
	if err != nil {
		return "", err
	}
	if len(events) == 0 {
		return "", nil
	}
	return events[len(events)-1].Chain.HMAC, nil
}

// readAll parses every event line in the audit file.
func (l *Logger) readAll() ([]Event, error) {
	f, err := os.Open(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("audit: failed to open audit file: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEventCorrupt, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("audit: failed to read audit file: %w", err)
	}
	return events, nil
}

// Events returns up to limit most recent events, oldest first. A limit of
// zero or less returns everything.
func (l *Logger) Events(limit int) ([]Event, error) {
	if l == nil {
		return nil, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	events, err := l.readAll()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}

// Verify walks the full HMAC chain and returns the number of verified
// events. It fails with ErrChainBroken at the first event whose HMAC or
// predecessor link does not match.
func (l *Logger) Verify() (int, error) {
	if l == nil {
		return 0, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.key == nil {
		return 0, ErrNoKey
	}

	events, err := l.readAll()
	if err != nil {
		return 0, err
	}

	prev := ""
	for i := range events {
		ev := events[i]
		if ev.Chain.Prev != prev {
			return i, fmt.Errorf("%w: event %d has broken predecessor link", ErrChainBroken, i)
		}
		want := ev.Chain.HMAC
		ev.Chain.HMAC = ""
		sum, err := l.sign(&ev)
		if err != nil {
			return i, err
		}
		if !hmac.Equal([]byte(sum), []byte(want)) {
			return i, fmt.Errorf("%w: event %d has invalid HMAC", ErrChainBroken, i)
		}
		prev = want
	}
	return len(events), nil
}
