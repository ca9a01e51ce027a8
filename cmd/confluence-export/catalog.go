// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/confluence-export/internal/catalog"
	"github.com/pdiddy/confluence-export/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List pages recorded in the export catalog",
	Long: `Catalog lists the pages recorded in {output}/catalog.db by exports run
with --catalog: space, page ID, title, size and file path. Use --space to
restrict the listing and --json or --yaml for machine-readable output.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().String("space", "", "only list pages of this space key")
	catalogCmd.Flags().Bool("json", false, "output entries as JSON")
	catalogCmd.Flags().Bool("yaml", false, "output entries as YAML")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	space, _ := cmd.Flags().GetString("space")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	if jsonOutput && yamlOutput {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}

	return listCatalog(cmd.Context(), cmd.OutOrStdout(), viper.GetString(keyOutputDir), space, jsonOutput, yamlOutput)
}

// listCatalog prints the catalog under outputDir. A missing catalog lists as
// empty; it is not created.
func listCatalog(ctx context.Context, w io.Writer, outputDir, space string, jsonOutput, yamlOutput bool) error {
	if _, err := os.Stat(filepath.Join(outputDir, catalog.FileName)); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking catalog: %w", err)
		}
		if yamlOutput {
			_, err := fmt.Fprintln(w, "[]")
			return err
		}
		return formatCatalog(w, nil, jsonOutput)
	}

	store, err := catalog.Open(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if yamlOutput {
		return store.ExportYAML(ctx, space, w)
	}

	entries, err := store.Entries(ctx, space)
	if err != nil {
		return err
	}
	return formatCatalog(w, entries, jsonOutput)
}

func formatCatalog(w io.Writer, entries []types.ExportedPage, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []types.ExportedPage{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No pages recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-10s  %-12s  %-40s  %8s  %s\n", "Space", "Page ID", "Title", "Bytes", "Path")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		title := truncateTitle(e.Title, 40)
		fmt.Fprintf(w, "%-10s  %-12s  %-40s  %8d  %s\n", e.SpaceKey, e.PageID, title, e.Bytes, e.Path)
	}
	fmt.Fprintf(w, "\n%d pages\n", len(entries))
	return nil
}

// truncateTitle shortens s to at most width runes, ending in "..." when cut.
func truncateTitle(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}
