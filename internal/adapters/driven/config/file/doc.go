// Package file provides file-based configuration persistence.
//
// Configuration is stored as TOML at ~/.askdoc/config.toml with
// restricted permissions. Nested tables are flattened to dot-notation
// keys on load.
package file
