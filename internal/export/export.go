// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export walks a Confluence site and writes every page's storage
// body to disk, one directory per space, then writes the manifest.
//
// A run is strictly sequential and stops at the first error. Files written
// before the error stay on disk; the manifest is only written when every
// page succeeded.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/confluence-export/internal/manifest"
	"github.com/pdiddy/confluence-export/pkg/types"
)

// PageExtension is appended to every exported file name.
const PageExtension = ".html"

// API is the subset of the Confluence client an export needs.
type API interface {
	ListSpaces(ctx context.Context) ([]types.Space, error)
	ListPages(ctx context.Context, spaceKey string) ([]types.Page, error)
	GetPage(ctx context.Context, id string) (*types.PageBody, error)
}

// Recorder receives an entry for every page file written.
type Recorder interface {
	Record(ctx context.Context, page types.ExportedPage) error
}

// FilesystemError reports a failed directory creation or file write.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// Summary counts what a run did.
type Summary struct {
	Spaces int
	Pages  int
	Bytes  int64
}

// Exporter runs one export against a site.
type Exporter struct {
	api      API
	cfg      types.ExportConfig
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time

	summary Summary
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// WithRecorder attaches a recorder that is told about every written page.
func WithRecorder(r Recorder) Option {
	return func(e *Exporter) { e.recorder = r }
}

// New returns an Exporter writing under cfg.OutputDir.
func New(api API, cfg types.ExportConfig, opts ...Option) *Exporter {
	if cfg.OutputDir == "" {
		cfg.OutputDir = types.DefaultOutputDir
	}
	e := &Exporter{
		api:    api,
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Summary returns the counters of the most recent run.
func (e *Exporter) Summary() Summary {
	return e.summary
}

// SanitizeTitle makes a page title usable as a file name by replacing
// path separators ("/") with "-". Nothing else is changed.
func SanitizeTitle(title string) string {
	return strings.ReplaceAll(title, "/", "-")
}

// PagePath returns outputDir/spaceKey/<sanitized title>.html.
func PagePath(outputDir, spaceKey, title string) string {
	return filepath.Join(outputDir, spaceKey, SanitizeTitle(title)+PageExtension)
}

// Run exports every page of every space and then writes the manifest. It
// returns the manifest path.
func (e *Exporter) Run(ctx context.Context) (string, error) {
	m, err := e.ExportAll(ctx)
	if err != nil {
		return "", err
	}

	path, err := manifest.Write(e.cfg.OutputDir, m)
	if err != nil {
		return "", &FilesystemError{Op: "write manifest", Path: manifest.Path(e.cfg.OutputDir), Err: err}
	}
	e.logger.Info("wrote manifest", "path", path)
	e.logger.Info("export complete",
		"spaces", e.summary.Spaces, "pages", e.summary.Pages, "bytes", e.summary.Bytes)
	return path, nil
}

// ExportAll lists spaces and pages and exports each page in listing order.
// It returns the manifest of exported titles without writing it.
func (e *Exporter) ExportAll(ctx context.Context) (*manifest.Manifest, error) {
	e.summary = Summary{}

	spaces, err := e.api.ListSpaces(ctx)
	if err != nil {
		return nil, err
	}

	m := manifest.New(e.cfg.BaseURL)
	for _, space := range spaces {
		m.AddSpace(space.Key)
		e.summary.Spaces++
		e.logger.Info("processing space", "key", space.Key)

		pages, err := e.api.ListPages(ctx, space.Key)
		if err != nil {
			return nil, err
		}

		for _, page := range pages {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			e.logger.Info("saving page", "title", page.Title, "id", page.ID)
			if _, err := e.ExportPage(ctx, page, space.Key); err != nil {
				return nil, err
			}
			m.AddPage(space.Key, page.Title)
		}
	}
	return m, nil
}

// ExportPage fetches one page's storage body and writes it verbatim to its
// path under the output root, replacing any existing file. It returns the
// path written.
func (e *Exporter) ExportPage(ctx context.Context, page types.Page, spaceKey string) (string, error) {
	path := PagePath(e.cfg.OutputDir, spaceKey, page.Title)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &FilesystemError{Op: "create directory", Path: dir, Err: err}
	}

	body, err := e.api.GetPage(ctx, string(page.ID))
	if err != nil {
		return "", err
	}

	if err := writeFile(path, []byte(body.Storage)); err != nil {
		return "", err
	}

	size := int64(len(body.Storage))
	e.summary.Pages++
	e.summary.Bytes += size

	if e.recorder != nil {
		rec := types.ExportedPage{
			SpaceKey:   spaceKey,
			PageID:     string(page.ID),
			Title:      page.Title,
			Path:       path,
			Bytes:      size,
			ExportedAt: e.now().UTC(),
		}
		if err := e.recorder.Record(ctx, rec); err != nil {
			return "", fmt.Errorf("recording page %s: %w", page.ID, err)
		}
	}
	return path, nil
}

// writeFile writes data to a temporary file next to destPath and renames it
// into place.
func writeFile(destPath string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".export-*.tmp")
	if err != nil {
		return &FilesystemError{Op: "create temp file", Path: destPath, Err: err}
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return &FilesystemError{Op: "write", Path: destPath, Err: writeErr}
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return &FilesystemError{Op: "close", Path: destPath, Err: closeErr}
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return &FilesystemError{Op: "chmod", Path: destPath, Err: err}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return &FilesystemError{Op: "rename", Path: destPath, Err: err}
	}
	return nil
}
