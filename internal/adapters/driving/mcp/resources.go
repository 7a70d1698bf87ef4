package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// configURI is the resource exposing the effective configuration.
const configURI = "codegrep://config"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         configURI,
		Name:        "config",
		Description: "Effective codegrep configuration",
		MIMEType:    "application/json",
	}, s.handleConfigResource)
}

// handleConfigResource lists every config key with its value and origin.
func (s *Server) handleConfigResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type entry struct {
		Key    string `json:"key"`
		Value  string `json:"value"`
		Source string `json:"source"`
	}

	infos := []entry{}
	if s.ports.Settings != nil {
		entries, err := s.ports.Settings.Entries()
		if err != nil {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
		for _, e := range entries {
			source := "default"
			if e.FromFile {
				source = "file"
			}
			infos = append(infos, entry{Key: e.Key, Value: e.Value, Source: source})
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
