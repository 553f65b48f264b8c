// Package config handles loading and validating application configuration
// from environment variables and optional config files. Secrets such as the
// JWT signing key are carried in explicit config structs injected into the
// components that need them, never read from ambient globals.
package config
