// Package config provides configuration loading, merging, and validation
// facilities for the kernel.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the kernel runtime
// configuration and [ResolveEndpoint] for resolving the registry endpoint
// at connect time from the saved or default configuration file.
package config
