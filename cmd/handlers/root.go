package handlers

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"quantumwatch/internal/catalog"
	"quantumwatch/internal/config"
	"quantumwatch/internal/index"
	"quantumwatch/internal/layout"
	"quantumwatch/internal/logging"
)

// app carries the flag values and builds the configured components once per
// invocation. Passing it explicitly keeps the handlers free of package-level
// state.
type app struct {
	cfgFile  string
	basePath string
}

// open loads configuration, constructs the logger, ensures the directory
// layout, and returns a ready catalog.
func (a *app) open() (*config.Config, *catalog.Catalog, zerolog.Logger, error) {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.basePath != "" {
		cfg.App.BasePath = a.basePath
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Directory)
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}

	l := layout.New(cfg.App.BasePath)
	if err := l.Ensure(); err != nil {
		return nil, nil, log, fmt.Errorf("failed to create directory layout: %w", err)
	}

	store := index.NewStore(l, log)
	return cfg, catalog.New(l, store, log), log, nil
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "quantumwatch",
		Short: "Catalog and lifecycle manager for the quantum cryptography watch pipeline",
		Long: `quantumwatch maintains the file catalog behind the quantum cryptography
watch pipeline: collected data snapshots, derived analysis artifacts, and
produced podcast episodes, all indexed in a single rebuildable document.

The collectors, analyzers, and podcast generator register their outputs
through the catalog; this tool is the maintenance surface over the same
index.`,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.quantumwatch.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.basePath, "base-path", "", "catalog root directory (overrides app.base_path)")

	rootCmd.AddCommand(NewInfoCmd(a))
	rootCmd.AddCommand(NewArchiveCmd(a))
	rootCmd.AddCommand(NewRebuildCmd(a))
	rootCmd.AddCommand(NewSearchCmd(a))
	rootCmd.AddCommand(NewLatestCmd(a))
	rootCmd.AddCommand(NewOrganizeCmd(a))
	rootCmd.AddCommand(NewCleanupCmd(a))

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
