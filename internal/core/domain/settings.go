package domain

// AppSettings holds the runtime configuration for a pipeline run.
type AppSettings struct {
	// Workers is the size of the document worker pool.
	Workers int

	// IntakeDir is the directory watched for incoming documents.
	IntakeDir string

	// FilingDir is the root under which flagged documents are filed
	// per entity.
	FilingDir string

	// DataDir holds the ledger database and run shards.
	DataDir string

	// ExclusionFile is the CSV of suppliers that never need
	// declaration support.
	ExclusionFile string

	// CorporateDomain is the email domain used to spot the end user
	// address inside a document.
	CorporateDomain string
}

// DefaultAppSettings returns the settings used when nothing is
// configured. Directory fields are left empty so the adapter layer can
// resolve them against the user's home directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Workers:         4,
		CorporateDomain: "ttigroup.com.vn",
	}
}
