package driven

import (
	"context"

	"github.com/cdsupport/poscan/internal/core/domain"
)

// Intake supplies the documents handed over by the ingestion
// collaborator. Acquisition from the mail source itself happens outside
// this boundary.
type Intake interface {
	// List returns descriptors for the current batch, in received order.
	List(ctx context.Context) ([]domain.Descriptor, error)

	// Open reads and parses one document. Failures wrap
	// domain.ErrUnreadableDocument.
	Open(ctx context.Context, desc domain.Descriptor) (*domain.Document, error)

	// Consume retires a processed document so later batches never see
	// it again. A document whose file was already moved elsewhere is
	// still consumed; only its envelope remains to clean up.
	Consume(ctx context.Context, desc domain.Descriptor) error

	// Watch emits an event whenever new documents arrive at the intake
	// location. The channel closes when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
