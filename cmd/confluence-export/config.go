package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/confluence-export/internal/secrets"
	"github.com/pdiddy/confluence-export/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "confluence-export/0.1"
)

// Config keys shared by flags, environment and config file.
const (
	keyBaseURL   = "base_url"
	keyUsername  = "username"
	keyToken     = "token"
	keyOutputDir = "output_dir"
	keyTimeout   = "timeout"
	keyCatalog   = "catalog"
)

// bindEnv maps config keys to the environment variable names the export
// has always used.
func bindEnv(v *viper.Viper) {
	v.BindEnv(keyBaseURL, "BASE_URL")
	v.BindEnv(keyUsername, "ATLASSIAN_USER")
	v.BindEnv(keyToken, "ATLASSIAN_TOKEN")
	v.BindEnv(keyOutputDir, "OUTPUT_DIR")
	v.SetDefault(keyOutputDir, types.DefaultOutputDir)
	v.SetDefault(keyTimeout, defaultTimeout)
}

// exportConfig resolves the run configuration. Values from v win over the
// secrets directory.
func exportConfig(v *viper.Viper, s map[string]string) (types.ExportConfig, error) {
	cfg := types.ExportConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   v.GetDuration(keyTimeout),
			UserAgent: defaultUserAgent,
		},
		BaseURL:   v.GetString(keyBaseURL),
		Username:  secrets.Or(s, secrets.KeyUser, v.GetString(keyUsername)),
		Token:     secrets.Or(s, secrets.KeyToken, v.GetString(keyToken)),
		OutputDir: v.GetString(keyOutputDir),
		Catalog:   v.GetBool(keyCatalog),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = types.DefaultOutputDir
	}
	if cfg.BaseURL == "" {
		return cfg, fmt.Errorf("base URL is required: set BASE_URL, --base-url, or base_url in the config file")
	}
	return cfg, nil
}
