// Package sink provides append-only CSV outputs for the collection run.
// Each sink is opened once, kept open for the whole run, and flushed after
// every append so external readers can observe output incrementally.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
)

// Record is anything that can render itself as one CSV row with a fixed
// column set.
type Record interface {
	Header() []string
	Row() []string
}

// Writer is an append-only CSV sink. The header row is written once, on
// the first append, and only if the destination held no data when the
// sink was opened — appending across process restarts never duplicates
// the header.
type Writer struct {
	mu          sync.Mutex
	file        *os.File
	csv         *csv.Writer
	path        string
	needsHeader bool
}

// NewWriter opens (or creates) the sink file for appending.
func NewWriter(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open sink %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat sink %s: %w", path, err)
	}

	return &Writer{
		file:        file,
		csv:         csv.NewWriter(file),
		path:        path,
		needsHeader: info.Size() == 0,
	}, nil
}

// Append writes one record, emitting the header first if needed. The
// underlying stream is flushed before returning, so a crash loses at most
// the in-flight record.
func (w *Writer) Append(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.needsHeader {
		if err := w.csv.Write(rec.Header()); err != nil {
			return fmt.Errorf("failed to write header to %s: %w", w.path, err)
		}
		w.needsHeader = false
	}

	if err := w.csv.Write(rec.Row()); err != nil {
		return fmt.Errorf("failed to write row to %s: %w", w.path, err)
	}

	w.csv.Flush()
	return w.csv.Error()
}

// Path returns the sink's file path.
func (w *Writer) Path() string {
	return w.path
}

// Close flushes and closes the sink.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
