// Package driving provides interfaces for application entry points
// (primary/inbound ports). The CLI and MCP adapters drive the core
// through these.
package driving
