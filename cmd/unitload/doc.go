// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for unitload.
//
// This package implements the Cobra command hierarchy for the unitload
// CLI: the root command plus subcommands for resolving names, loading
// units, inspecting mappings, and managing configuration.
package cmd
