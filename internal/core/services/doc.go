// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - PipelineService: normalise, chunk, annotate, embed and persist a document
//   - ProfileService: read tenant noise profiles
//   - SettingsService: read and write configuration with defaults
package services
