// Package file provides a CSV-backed supplier exclusion source.
//
// The exclusion file is maintained by the customs team as a plain CSV
// whose first column holds supplier names. A missing file is not an
// error, it just means nobody is excluded.
package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cdsupport/poscan/internal/core/domain"
	"github.com/cdsupport/poscan/internal/core/ports/driven"
	"github.com/cdsupport/poscan/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.ExclusionSource = (*Source)(nil)

// Source loads the exclusion set from a CSV file.
type Source struct {
	path string
}

// NewSource creates an exclusion source reading from path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load reads the exclusion file and builds the set. Rows may have any
// number of columns; only the first is read. A header row is treated
// like any other supplier name, so keep the file headerless.
func (s *Source) Load(_ context.Context) (domain.ExclusionSet, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("exclusion file %s not found, no suppliers excluded", s.path)
			return domain.NewExclusionSet(nil), nil
		}
		return domain.ExclusionSet{}, fmt.Errorf("opening exclusion file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return domain.ExclusionSet{}, fmt.Errorf("parsing exclusion file: %w", err)
	}

	names := make([]string, 0, len(records))
	for _, record := range records {
		if len(record) > 0 {
			names = append(names, record[0])
		}
	}

	set := domain.NewExclusionSet(names)
	logger.Debug("loaded %d excluded suppliers from %s", set.Len(), s.path)
	return set, nil
}
