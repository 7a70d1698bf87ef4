// Package services implements the driving port interfaces.
// Services contain the result pipeline and orchestrate calls to
// driven ports (adapters).
//
//   - SearchService: first page, ordered fan-out, filter summary
//   - Paginator: bounded concurrent page fetches with in-order delivery
//   - SettingsService: config file overlaid on built-in defaults
package services
