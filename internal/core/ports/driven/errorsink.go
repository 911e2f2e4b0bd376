package driven

// ErrorSink records per-document failures for operators: one line per
// failed document, append-only. Recording never fails the caller.
type ErrorSink interface {
	Record(documentID string, err error)
}
