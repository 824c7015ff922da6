// Package config loads, merges, and validates the application configuration.
//
// Values are assembled from several sources, later ones overriding earlier
// non-zero fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// [GetStructuredConfig] is the entry point for the server runtime,
// [GetClientConfig] produces the client-specific view.
package config
