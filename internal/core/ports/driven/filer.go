package driven

// Filer performs the filesystem side effects for documents flagged as
// requiring declaration support.
type Filer interface {
	// File moves the document at location into the folder's filing
	// subdirectory, creating it on demand. On a name collision the
	// destination name gains a timestamp suffix. Returns the final
	// destination path.
	File(location, folder string) (string, error)

	// Locate finds filed documents whose names contain the PO number,
	// at most one per filing subdirectory. Used by the notification
	// boundary to attach the PO to outbound requests.
	Locate(poNumber string) ([]string, error)
}
