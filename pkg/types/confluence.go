// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Space is a Confluence workspace as returned by the space listing.
type Space struct {
	// Key is the short unique space key (e.g. "DEV").
	Key string `json:"key" yaml:"key"`

	// Name is the human-readable space name.
	Name string `json:"name" yaml:"name"`

	// Type is "global" or "personal".
	Type string `json:"type" yaml:"type"`
}

// Page is a page summary as returned by the content listing.
type Page struct {
	// ID is the server-assigned content identifier.
	ID PageID `json:"id" yaml:"id"`

	// Title is the page title. Titles are not unique across spaces.
	Title string `json:"title" yaml:"title"`

	Type   string `json:"type" yaml:"type"`
	Status string `json:"status" yaml:"status"`
}

// PageBody is a page fetched with its storage-format body expanded.
type PageBody struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`

	// Storage is the storage-format markup, exactly as the server sent it.
	Storage string `json:"storage" yaml:"storage"`
}

// PageID is a content identifier. Confluence sends it as a JSON string, but
// some servers and fixtures send a bare number; both decode to the same
// value.
type PageID string

// UnmarshalJSON accepts a JSON string or number.
func (id *PageID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PageID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("page id: expected string or number, got %s", data)
	}
	*id = PageID(n.String())
	return nil
}

func (id PageID) String() string { return string(id) }
