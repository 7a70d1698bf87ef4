// Package domain defines the core types of the codegrep result pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchParams: One request against the remote code-search service
//   - SearchResult: One page of results with its facets
//   - Hit: A matched file and its markup snippet
//   - Palette: Colour escape sequences used by the renderer and printer
//   - RenderedLine: One printable line produced from a snippet
//   - FilterSummary: Facet counts and total pages for filter mode
//   - Settings: Effective configuration and its known keys
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
