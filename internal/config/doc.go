// SPDX-License-Identifier: MPL-2.0

// Package config loads and persists unitload's user configuration.
//
// Configuration lives in a single CUE file under the platform config
// directory. Files are validated against an embedded schema before
// they are handed to viper, so invalid settings are rejected with a
// precise path into the document rather than silently ignored.
package config
