// Package file provides a file-based implementation of the ConfigStore
// driven port. Settings are persisted as TOML under the user's config
// directory.
package file
