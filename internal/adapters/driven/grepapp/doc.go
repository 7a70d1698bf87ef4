// Package grepapp implements the driven.SearchClient port against the
// grep.app code-search HTTP API.
//
// Requests are throttled by a token bucket so that one invocation never
// bursts past the service's fair-use limits. HTTP 429 responses surface
// as *RateLimitError, other non-2xx responses as *APIError. No request
// is retried.
package grepapp
