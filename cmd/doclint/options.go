package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"doclint/internal/config"
	"doclint/internal/dialect"
	"doclint/internal/driver"
)

// addConfigFlags registers the flags check and fix share.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to doclint.toml (default: search upwards from the target)")
	cmd.Flags().String("mode", "", "override [settings].mode (jsdoc|closure|typescript|permissive)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
}

// loadConfig resolves the configuration governing target: --config when
// given, otherwise the nearest doclint.toml, otherwise the defaults.
func loadConfig(cmd *cobra.Command, target string) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		start := target
		if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
			start = filepath.Dir(target)
		}
		cfg, err = config.Discover(start)
		if errors.Is(err, config.ErrNotFound) {
			err = nil
		}
	}
	if err != nil {
		return config.Config{}, err
	}

	mode, err := cmd.Flags().GetString("mode")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get mode flag: %w", err)
	}
	if mode != "" {
		m, err := dialect.ParseMode(mode)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Settings.Mode = m.String()
	}
	return cfg, nil
}

// driverOptions builds the options shared by check and fix.
func driverOptions(cmd *cobra.Command, target string) (driver.Options, error) {
	cfg, err := loadConfig(cmd, target)
	if err != nil {
		return driver.Options{}, err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get cache flag: %w", err)
	}

	opts := driver.Options{
		Config:         cfg,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	}
	if useCache {
		cache, err := driver.OpenDiskCache("doclint")
		if err != nil {
			return driver.Options{}, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}
