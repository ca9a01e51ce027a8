// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExportedPage describes one page file written during a run.
type ExportedPage struct {
	SpaceKey   string    `json:"space_key" yaml:"space_key"`
	PageID     string    `json:"page_id" yaml:"page_id"`
	Title      string    `json:"title" yaml:"title"`
	Path       string    `json:"path" yaml:"path"`
	Bytes      int64     `json:"bytes" yaml:"bytes"`
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
}
