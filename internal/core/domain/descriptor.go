package domain

import "time"

// Descriptor identifies one raw document handed over by the ingestion
// collaborator. Descriptors are immutable input; the scanner reads each
// exactly once and never writes one back.
type Descriptor struct {
	// ExternalID is the identifier assigned on the ingestion side,
	// typically the original attachment file name.
	ExternalID string

	// Location is where the raw document can be opened.
	Location string

	// Recipients are the addresses the originating message was sent to.
	Recipients []string

	// ReceivedAt is when the originating message arrived.
	ReceivedAt time.Time

	// Subject is the originating message subject.
	Subject string
}
