// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest builds and writes download_spec.json, the file the
// downstream confluence-export PDF tool reads to know which pages to fetch.
//
// The "Pages to export" object keeps spaces in the order they were added;
// Go maps would sort them, so the mapping is kept as an ordered slice and
// marshaled by hand.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the manifest's name under the output root.
const FileName = "download_spec.json"

// Manifest records the server address and, per space, the titles exported
// from it in listing order.
type Manifest struct {
	Server ServerInfo `json:"Server"`
	Pages  SpacePages `json:"Pages to export"`
}

// ServerInfo names the source server.
type ServerInfo struct {
	Confluence string `json:"Confluence"`
}

// SpacePages is an insertion-ordered mapping of space key to page titles.
type SpacePages struct {
	keys   []string
	titles map[string][]string
}

// New returns an empty manifest for server.
func New(server string) *Manifest {
	return &Manifest{Server: ServerInfo{Confluence: server}}
}

// AddSpace registers key with an empty title list. Adding a key again keeps
// its original position but clears its titles, so a space listed twice
// ends up with the titles of the last listing.
func (m *Manifest) AddSpace(key string) {
	m.Pages.add(key)
	m.Pages.titles[key] = []string{}
}

// AddPage appends title to key's list, registering key if needed.
func (m *Manifest) AddPage(key, title string) {
	m.Pages.add(key)
	m.Pages.titles[key] = append(m.Pages.titles[key], title)
}

// Spaces returns the space keys in insertion order.
func (m *Manifest) Spaces() []string {
	return append([]string(nil), m.Pages.keys...)
}

// Titles returns the titles recorded for key, in order.
func (m *Manifest) Titles(key string) []string {
	return append([]string(nil), m.Pages.titles[key]...)
}

// PageCount returns the total number of titles across spaces.
func (m *Manifest) PageCount() int {
	n := 0
	for _, titles := range m.Pages.titles {
		n += len(titles)
	}
	return n
}

func (p *SpacePages) add(key string) {
	if p.titles == nil {
		p.titles = make(map[string][]string)
	}
	if _, ok := p.titles[key]; ok {
		return
	}
	p.keys = append(p.keys, key)
	p.titles[key] = []string{}
}

// MarshalJSON writes the spaces in insertion order.
func (p SpacePages) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		titles := p.titles[key]
		if titles == nil {
			titles = []string{}
		}
		v, err := json.Marshal(titles)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of arrays, keeping the key order of the
// document.
func (p *SpacePages) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("pages to export: expected object, got %v", tok)
	}

	*p = SpacePages{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("pages to export: expected key, got %v", tok)
		}
		var titles []string
		if err := dec.Decode(&titles); err != nil {
			return fmt.Errorf("pages to export: space %s: %w", key, err)
		}
		p.add(key)
		p.titles[key] = append(p.titles[key], titles...)
	}
	_, err = dec.Token()
	return err
}

// Path returns the manifest location under outputDir.
func Path(outputDir string) string {
	return filepath.Join(outputDir, FileName)
}

// Write serializes m with two-space indentation to
// outputDir/download_spec.json, replacing any existing file. It returns the
// path written.
func Write(outputDir string, m *Manifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	path := Path(outputDir)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return path, nil
}

// Read loads a manifest written by Write.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}
