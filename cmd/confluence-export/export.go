package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/confluence-export/internal/catalog"
	"github.com/pdiddy/confluence-export/internal/confluence"
	"github.com/pdiddy/confluence-export/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every page of every space and write the manifest",
	Long: `Export lists all spaces visible to the account, saves the storage-format
body of each page to {output}/{space}/{title}.html, and finally writes
{output}/download_spec.json. The run stops at the first error; pages already
saved stay on disk but no manifest is written. Every run re-exports
everything.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("base-url", "", "Confluence site address, e.g. https://example.atlassian.net")
	exportCmd.Flags().String("user", "", "basic-auth user (usually an e-mail address)")
	exportCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	exportCmd.Flags().Bool("catalog", false, "also record exported pages in {output}/catalog.db")

	viper.BindPFlag(keyBaseURL, exportCmd.Flags().Lookup("base-url"))
	viper.BindPFlag(keyUsername, exportCmd.Flags().Lookup("user"))
	viper.BindPFlag(keyTimeout, exportCmd.Flags().Lookup("timeout"))
	viper.BindPFlag(keyCatalog, exportCmd.Flags().Lookup("catalog"))

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := exportConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}
	if cfg.Username == "" || cfg.Token == "" {
		logger.Warn("credentials incomplete; requests will likely be rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := confluence.NewClient(&http.Client{Timeout: cfg.Timeout}, cfg, logger)
	if err != nil {
		return err
	}

	opts := []export.Option{export.WithLogger(logger)}
	if cfg.Catalog {
		store, err := catalog.Open(cfg.OutputDir)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, export.WithRecorder(store))
	}

	path, err := export.New(client, cfg, opts...).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}
