// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML configuration with a TEXTPREP_* environment overlay
//   - ProfileStore: one JSON document per tenant noise profile
package file
