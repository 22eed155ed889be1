// Package file provides file-based configuration: a TOML config file
// and a prompt store with embedded defaults, both living under the
// pagerag config directory (~/.pagerag by default).
package file
