package domain

// Decision is the classification outcome for one purchase order.
type Decision string

const (
	// DecisionRequired marks a PO that needs customs-declaration support.
	DecisionRequired Decision = "Yes"

	// DecisionNotRequired marks a PO that needs no declaration support.
	DecisionNotRequired Decision = "No"

	// DecisionRevised marks a resubmission of a PO number already present
	// in the ledger or an outstanding shard. Revisions always surface for
	// manual review instead of silently re-applying the decision tree.
	DecisionRevised Decision = "Revised"
)

// IsValid returns true if the decision is recognised.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionRequired, DecisionNotRequired, DecisionRevised:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d Decision) String() string {
	return string(d)
}
