package driven

import (
	"context"

	"github.com/cdsupport/poscan/internal/core/domain"
)

// ExclusionSource loads the external seller exclusion reference list.
// Load is called once per process; the returned set is immutable and is
// never refreshed mid-run.
type ExclusionSource interface {
	Load(ctx context.Context) (domain.ExclusionSet, error)
}
