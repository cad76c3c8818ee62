package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// CaptureBuffer collects JSON log lines written by a test logger. It is safe
// for the concurrent writes made by handlers running under httptest.
type CaptureBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *CaptureBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *CaptureBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Entries decodes every captured line. A line that is not JSON is an error.
func (b *CaptureBuffer) Entries() ([]map[string]any, error) {
	var entries []map[string]any
	scanner := bufio.NewScanner(strings.NewReader(b.String()))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

// NewTestLogger returns a debug-level JSON logger and the buffer it writes to.
func NewTestLogger(t *testing.T) (*slog.Logger, *CaptureBuffer) {
	t.Helper()

	buf := &CaptureBuffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// AssertLogContains fails the test unless content appears somewhere in the output.
func AssertLogContains(t *testing.T, buf *CaptureBuffer, content string) {
	t.Helper()

	if logs := buf.String(); !strings.Contains(logs, content) {
		t.Errorf("log output does not contain %q:\n%s", content, logs)
	}
}

// AssertLogOmits fails the test if content appears anywhere in the output.
// Used to prove credentials and customer details never reach the logs.
func AssertLogOmits(t *testing.T, buf *CaptureBuffer, content string) {
	t.Helper()

	if logs := buf.String(); strings.Contains(logs, content) {
		t.Errorf("log output unexpectedly contains %q:\n%s", content, logs)
	}
}

// AssertLogField fails the test unless some entry has field equal to expected.
func AssertLogField(t *testing.T, buf *CaptureBuffer, field string, expected any) {
	t.Helper()

	entries, err := buf.Entries()
	if err != nil {
		t.Fatalf("parse log entries: %v", err)
	}
	for _, entry := range entries {
		if value, ok := entry[field]; ok && value == expected {
			return
		}
	}
	t.Errorf("no log entry has %s=%v (%d entries)", field, expected, len(entries))
}
