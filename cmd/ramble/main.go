// Package main implements the ramble CLI tool.
package main

import (
	"errors"
	"os"
	"time"

	"github.com/amonks/ramble/backend"
	"github.com/amonks/ramble/internal/config"
	"github.com/spf13/cobra"
)

const defaultServerURL = "http://127.0.0.1:8000"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ramble",
	Short: "Ramble - guided exploration of any topic",
}

// loadConfig loads the merged configuration for the current directory.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}

// resolveServerURL picks the backend address: the --server flag wins, then
// the RAMBLE_SERVER environment variable, then configuration, then the
// default local address.
func resolveServerURL(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("RAMBLE_SERVER"); env != "" {
		return env
	}
	if cfg != nil && cfg.Server.URL != "" {
		return cfg.Server.URL
	}
	return defaultServerURL
}

// resolveRenderStyle picks the content render style: the --style flag wins,
// then configuration, then glamour's auto style.
func resolveRenderStyle(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg != nil && cfg.Render.Style != "" {
		return cfg.Render.Style
	}
	return ""
}

func newBackendClient(flagValue string, cfg *config.Config) *backend.Client {
	client := backend.NewClient(resolveServerURL(flagValue, cfg))
	if cfg != nil && cfg.Server.TimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(cfg.Server.TimeoutSeconds) * time.Second)
	}
	return client
}
