package domain

import "strings"

// Entity is a canonical buyer entity. Pattern is the substring that
// identifies it in the heading line of a PO; Folder is its filing
// category in the filtered-document tree.
type Entity struct {
	Pattern string
	Name    string
	Folder  string
}

// Entities is the ordered match list for buyer classification. Order is
// load-bearing: a branch-qualified pattern must be checked before any
// pattern that is a textual prefix of its canonical name, otherwise the
// branch would silently match as its parent.
var Entities = []Entity{
	{
		Pattern: "GREEN PLANET",
		Name:    "GREEN PLANET DISTRIBUTION CENTRE COMPANY LIMITED",
		Folder:  "2. GREEN PLANET",
	},
	{
		Pattern: "TECHTRONIC TOOLS",
		Name:    "TECHTRONIC TOOLS (VIETNAM) COMPANY LIMITED",
		Folder:  "5. TTI TOOLS",
	},
	{
		Pattern: "TECHTRONIC PRODUCTS",
		Name:    "TECHTRONIC PRODUCTS (VIETNAM) COMPANY LIMITED",
		Folder:  "4. TTI PRODUCTS",
	},
	{
		Pattern: "BRANCH IN DAU GIAY",
		Name:    "TECHTRONIC INDUSTRIES VIETNAM MANUFACTURING COMPANY LIMITED – BRANCH IN DAU GIAY INDUSTRIAL PARK",
		Folder:  "3. TTIVN MFG - CNDG",
	},
	{
		Pattern: "TECHTRONIC INDUSTRIES VIETNAM",
		Name:    "TECHTRONIC INDUSTRIES VIETNAM MANUFACTURING COMPANY LIMITED",
		Folder:  "1. TTIVN MFG",
	},
}

// MatchEntity resolves raw buyer text against the ordered entity list.
// Matching is case-insensitive substring; the first pattern wins.
// Returns nil when no pattern matches.
func MatchEntity(raw string) *Entity {
	text := strings.ToUpper(raw)
	for i := range Entities {
		if strings.Contains(text, Entities[i].Pattern) {
			return &Entities[i]
		}
	}
	return nil
}
