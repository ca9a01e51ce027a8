// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultOutputDir is the export root used when none is configured.
const DefaultOutputDir = "./confluence_backup"

// HTTPConfig holds shared HTTP settings used by components that talk to
// the Confluence REST API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "confluence-export/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ExportConfig holds everything a run needs. It is built once at startup
// and not modified afterwards.
type ExportConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the Confluence site address, e.g. "https://example.atlassian.net".
	// It is recorded verbatim in the manifest.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Username is the basic-auth user (usually an e-mail address).
	Username string `json:"username" yaml:"username"`

	// Token is the basic-auth secret (an Atlassian API token).
	Token string `json:"-" yaml:"-"`

	// OutputDir is the export root. Each space gets a subdirectory and the
	// manifest is written at its top level.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Catalog enables recording exported pages into the SQLite catalog.
	Catalog bool `json:"catalog" yaml:"catalog"`
}
