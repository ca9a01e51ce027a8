// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads Confluence credentials from a directory of
// plain-text files. Each file is one secret: the filename is the key and
// the trimmed contents are the value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Recognized key files.
const (
	KeyUser  = "confluence-user"
	KeyToken = "confluence-token"
)

// DefaultDir is where credentials are looked for when no directory is given.
const DefaultDir = ".secrets"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// Or returns value when it is non-empty, otherwise the secret stored under key.
func Or(s map[string]string, key, value string) string {
	if value != "" {
		return value
	}
	return s[key]
}
