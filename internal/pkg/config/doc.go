// Package config provides functionality for loading and managing the gateway configuration.
//
// Settings are read from the process environment (optionally seeded from a .env file),
// bound onto typed settings structs and validated before any component is built.
// Every settings struct exposes a Validate method so tests and the CLI can check
// partial configurations on their own.
package config
