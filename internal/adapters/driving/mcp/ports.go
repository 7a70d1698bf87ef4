package mcp

import (
	"github.com/custodia-labs/codegrep/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search runs queries against the code-search service.
	Search driving.SearchService

	// Settings supplies the code host for links and the config resource.
	// Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
