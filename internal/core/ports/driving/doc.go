// Package driving defines the interfaces the CLI and MCP adapters use to
// run searches and manage configuration. Implementations live in
// internal/core/services.
package driving
