package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erazemk/zaloga/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath string
	dbPath     string
	addr       string
	mode       string

	rootCmd = &cobra.Command{
		Use:           "zaloga",
		Short:         "Shared inventory tracking server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of zaloga",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("zaloga version %s\n", version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "tenancy mode: multi or single (overrides config)")
	serveCmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveCmd, userCmd, versionCmd)
}

// loadConfig loads the configuration file and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if mode != "" {
		cfg.Tenancy.Mode = mode
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
