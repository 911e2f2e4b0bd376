// Package file provides an append-only error sink for failed documents.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cdsupport/poscan/internal/core/ports/driven"
	"github.com/cdsupport/poscan/internal/logger"
)

// Ensure Sink implements the interface.
var _ driven.ErrorSink = (*Sink)(nil)

// Sink appends failed document records to a log file. Recording never
// fails the caller; a sink that cannot write only logs a warning.
type Sink struct {
	mu   sync.Mutex
	path string
}

// NewSink creates a sink writing to path, creating parent directories
// if needed.
func NewSink(path string) (*Sink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	return &Sink{path: path}, nil
}

// Record appends one failure line for the document.
func (s *Sink) Record(documentID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, openErr := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if openErr != nil {
		logger.Warn("opening error log: %v", openErr)
		return
	}
	defer f.Close()

	line := fmt.Sprintf("%s %s: %v\n", time.Now().UTC().Format(time.RFC3339), documentID, err)
	if _, writeErr := f.WriteString(line); writeErr != nil {
		logger.Warn("writing error log: %v", writeErr)
	}
}
