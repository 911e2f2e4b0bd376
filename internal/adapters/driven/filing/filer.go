// Package filing moves flagged purchase orders into per-entity folders.
package filing

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cdsupport/poscan/internal/core/ports/driven"
)

// Ensure Filer implements the interface.
var _ driven.Filer = (*Filer)(nil)

// Filer moves documents under a filing root, one subfolder per entity.
type Filer struct {
	root string
}

// NewFiler creates a filer rooted at dir, creating the directory if
// needed.
func NewFiler(dir string) (*Filer, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating filing root: %w", err)
	}
	return &Filer{root: dir}, nil
}

// File moves the document at location into the entity folder and
// returns the destination path. When a file of the same name already
// exists, the incoming one gets a timestamp suffix so nothing is
// overwritten.
func (f *Filer) File(location, folder string) (string, error) {
	destDir := filepath.Join(f.root, folder)
	if err := os.MkdirAll(destDir, 0700); err != nil {
		return "", fmt.Errorf("creating entity folder: %w", err)
	}

	name := filepath.Base(location)
	dest := filepath.Join(destDir, name)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		dest = filepath.Join(destDir, stem+"_"+time.Now().Format("20060102150405")+ext)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking destination: %w", err)
	}

	if err := os.Rename(location, dest); err != nil {
		return "", fmt.Errorf("moving document: %w", err)
	}
	return dest, nil
}

// Locate searches every entity folder for files whose name contains the
// PO number and returns at most one match per folder.
func (f *Filer) Locate(poNumber string) ([]string, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("reading filing root: %w", err)
	}

	var matches []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pattern := filepath.Join(f.root, entry.Name(), "*"+poNumber+"*")
		found, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", entry.Name(), err)
		}
		if len(found) > 0 {
			matches = append(matches, found[0])
		}
	}
	return matches, nil
}
