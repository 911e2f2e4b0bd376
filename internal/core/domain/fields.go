package domain

// Unknown is the sentinel for string fields the extractor could not
// resolve. Extraction never fails; an unresolved field always carries an
// explicit default instead of a null.
const Unknown = "Unknown"

// Fields holds the values extracted from one purchase-order document.
// Unresolved fields carry Unknown, except MaxUnitPrice (0) and
// EndUserEmail ("").
type Fields struct {
	PONumber     string
	BuyerRaw     string
	Seller       string
	VAT          string
	Currency     string
	UOM          string
	MaxUnitPrice float64
	EndUserEmail string
}
