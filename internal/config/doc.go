// Package config loads strata.yaml and merges it with environment variables
// and defaults into the Settings of a run.
package config
