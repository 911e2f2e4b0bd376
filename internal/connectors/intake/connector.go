// Package intake reads purchase order documents from the drop
// directory.
//
// Each document is a plain text export of a purchase order. An optional
// TOML sidecar named <document>.meta.toml carries the envelope the
// export came from: recipients, received time, and subject. Documents
// without a sidecar still flow through the pipeline with an empty
// envelope.
package intake

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/cdsupport/poscan/internal/core/domain"
	"github.com/cdsupport/poscan/internal/core/ports/driven"
	"github.com/cdsupport/poscan/internal/logger"
)

const (
	metaSuffix = ".meta.toml"

	// processedDir is where consumed documents are parked, inside the
	// intake directory. The dot prefix keeps it out of List and Watch.
	processedDir = ".processed"

	// settleDelay is how long Watch waits after the last filesystem
	// event before signalling, so a document still being written is not
	// picked up half-finished.
	settleDelay = 300 * time.Millisecond
)

// Ensure Connector implements the interface.
var _ driven.Intake = (*Connector)(nil)

// Connector is a filesystem-backed intake.
type Connector struct {
	dir string
}

// NewConnector creates an intake over dir, creating the directory if
// needed.
func NewConnector(dir string) (*Connector, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating intake directory: %w", err)
	}
	return &Connector{dir: dir}, nil
}

// sidecar is the TOML envelope stored alongside a document.
type sidecar struct {
	Recipients []string  `toml:"recipients"`
	ReceivedAt time.Time `toml:"received_at"`
	Subject    string    `toml:"subject"`
}

// List returns a descriptor for every document in the intake directory,
// oldest received first. Sidecar and hidden files are skipped.
func (c *Connector) List(ctx context.Context) ([]domain.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("reading intake directory: %w", err)
	}

	var descriptors []domain.Descriptor
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasSuffix(name, metaSuffix) {
			continue
		}

		desc := domain.Descriptor{
			ExternalID: name,
			Location:   filepath.Join(c.dir, name),
		}

		if info, err := entry.Info(); err == nil {
			desc.ReceivedAt = info.ModTime()
		}

		if meta, ok := c.readSidecar(name); ok {
			desc.Recipients = meta.Recipients
			desc.Subject = meta.Subject
			if !meta.ReceivedAt.IsZero() {
				desc.ReceivedAt = meta.ReceivedAt
			}
		}

		descriptors = append(descriptors, desc)
	}

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].ReceivedAt.Before(descriptors[j].ReceivedAt)
	})
	return descriptors, nil
}

// Open reads and parses the document behind a descriptor.
func (c *Connector) Open(ctx context.Context, desc domain.Descriptor) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(desc.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnreadableDocument, err)
	}

	return Parse(string(data)), nil
}

// Consume moves a processed document and its sidecar into the
// processed subdirectory so the next List no longer returns it. The
// document file itself may already be gone when filing moved it; the
// sidecar is retired either way.
func (c *Connector) Consume(ctx context.Context, desc domain.Descriptor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dest := filepath.Join(c.dir, processedDir)
	if err := os.MkdirAll(dest, 0700); err != nil {
		return fmt.Errorf("creating processed directory: %w", err)
	}

	src := filepath.Join(c.dir, desc.ExternalID)
	if err := os.Rename(src, filepath.Join(dest, desc.ExternalID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("consuming %s: %w", desc.ExternalID, err)
	}

	meta := desc.ExternalID + metaSuffix
	if err := os.Rename(filepath.Join(c.dir, meta), filepath.Join(dest, meta)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("consuming sidecar for %s: %w", desc.ExternalID, err)
	}
	return nil
}

// Watch emits a signal whenever a document lands in the intake
// directory. Signals are held back until the directory has been quiet
// for settleDelay, so a file still being written settles before the
// next scan reads it. The channel closes when ctx is cancelled.
func (c *Connector) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(c.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching intake directory: %w", err)
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		defer watcher.Close()

		settle := time.NewTimer(settleDelay)
		if !settle.Stop() {
			<-settle.C
		}
		defer settle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				name := filepath.Base(event.Name)
				if strings.HasPrefix(name, ".") || strings.HasSuffix(name, metaSuffix) {
					continue
				}
				// Restart the quiet period on every qualifying event.
				if !settle.Stop() {
					select {
					case <-settle.C:
					default:
					}
				}
				settle.Reset(settleDelay)
			case <-settle.C:
				select {
				case events <- struct{}{}:
				default:
					// A signal is already pending.
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("intake watcher: %v", err)
			}
		}
	}()
	return events, nil
}

// readSidecar loads the TOML envelope for a document, if present.
func (c *Connector) readSidecar(name string) (sidecar, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir, name+metaSuffix))
	if err != nil {
		return sidecar{}, false
	}

	var meta sidecar
	if err := toml.Unmarshal(data, &meta); err != nil {
		logger.Warn("sidecar for %s: %v", name, err)
		return sidecar{}, false
	}
	return meta, true
}
