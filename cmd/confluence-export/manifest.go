package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/confluence-export/internal/manifest"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Show the pages listed in download_spec.json",
	Long: `Manifest reads {output}/download_spec.json from the last successful
export and prints the server address followed by each space and its page
titles in export order.`,
	RunE: runManifest,
}

func init() {
	rootCmd.AddCommand(manifestCmd)
}

func runManifest(cmd *cobra.Command, args []string) error {
	m, err := manifest.Read(manifest.Path(viper.GetString(keyOutputDir)))
	if err != nil {
		return err
	}
	printManifest(cmd.OutOrStdout(), m)
	return nil
}

func printManifest(w io.Writer, m *manifest.Manifest) {
	fmt.Fprintf(w, "Server: %s\n", m.Server.Confluence)
	for _, key := range m.Spaces() {
		titles := m.Titles(key)
		fmt.Fprintf(w, "\n%s (%d pages)\n", key, len(titles))
		for _, title := range titles {
			fmt.Fprintf(w, "  %s\n", title)
		}
	}
	fmt.Fprintf(w, "\n%d pages in %d spaces\n", m.PageCount(), len(m.Spaces()))
}
