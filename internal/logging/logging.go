// Package logging appends errors and JSON trace entries to a log file. The
// terminal belongs to the UI, so nothing is written to stdout.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "menukit.log"

type sink struct {
	mu    sync.Mutex
	path  string
	trace bool
	seq   uint64
}

var std = &sink{path: defaultLogFile}

type entry struct {
	Time    time.Time   `json:"time"`
	Seq     uint64      `json:"seq"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	std.mu.Lock()
	defer std.mu.Unlock()
	path = strings.TrimSpace(path)
	if path == "" {
		std.path = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		std.path = defaultLogFile
		return
	}
	std.path = path
}

// Path returns the current log destination.
func Path() string {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.path
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	std.mu.Lock()
	std.trace = enabled
	std.mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.trace
}

// Error appends err to the log file.
func Error(err error) {
	if err == nil {
		return
	}
	std.write("logging failed", func(w io.Writer) error {
		log.New(w, "", log.LstdFlags).Println(err)
		return nil
	})
}

// Trace appends a JSON entry when tracing is enabled. Entries carry a
// sequence number so interleaved writers can be ordered afterwards.
func Trace(event string, payload interface{}) {
	std.mu.Lock()
	enabled := std.trace
	std.mu.Unlock()
	if !enabled {
		return
	}
	std.write("trace logging failed", func(w io.Writer) error {
		std.seq++
		return json.NewEncoder(w).Encode(entry{
			Time:    time.Now().UTC(),
			Seq:     std.seq,
			Event:   event,
			Payload: payload,
		})
	})
}

// write opens the log file for appending and hands it to fn while holding
// the sink's lock.
func (s *sink) write(failure string, fn func(io.Writer) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", failure, err)
		return
	}
	defer f.Close()
	if err := fn(f); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", failure, err)
	}
}
