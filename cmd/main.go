// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"contact-splitter/internal/config"
	"contact-splitter/internal/core"
	"contact-splitter/internal/formatters"
	"contact-splitter/internal/metrics"
	"contact-splitter/internal/observability"
	"contact-splitter/internal/version"

	_ "contact-splitter/internal/formatters/csv"
	_ "contact-splitter/internal/formatters/json"
	_ "contact-splitter/internal/formatters/text"
	_ "contact-splitter/internal/formatters/yaml"
)

// globalFlags holds the persistent command line flags
type globalFlags struct {
	configFile string
	titlesFile string
	format     string
	logLevel   string
	verbose    bool
	debug      bool
	noColor    bool
}

// app carries the resolved configuration into the subcommands
type app struct {
	flags  globalFlags
	cfg    *config.Config
	logger *slog.Logger
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string, stderr io.Writer) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration\n")
		cfg = config.LoadConfigOrDefault("")
	}
	return cfg
}

// resolve applies command line flags on top of the configuration
func (a *app) resolve(cmd *cobra.Command) error {
	a.cfg = loadConfiguration(a.flags.configFile, cmd.ErrOrStderr())

	if a.flags.titlesFile != "" {
		a.cfg.Titles.File = a.flags.titlesFile
	}
	if cmd.Flags().Changed("format") {
		a.cfg.Defaults.Format = a.flags.format
	}
	if a.flags.verbose {
		a.cfg.Defaults.Verbose = true
	}
	if a.flags.noColor {
		a.cfg.Defaults.NoColor = true
	}

	level := a.cfg.Log.Level
	if a.flags.logLevel != "" {
		level = a.flags.logLevel
	}
	if a.flags.debug {
		level = "debug"
	}
	a.logger = observability.NewLogger(cmd.ErrOrStderr(), level, a.cfg.Log.Format)
	slog.SetDefault(a.logger)

	if _, ok := formatters.Get(a.cfg.Defaults.Format); !ok {
		return fmt.Errorf("unsupported format '%s'. Available formats: %s",
			a.cfg.Defaults.Format, strings.Join(formatters.List(), ", "))
	}
	return nil
}

// buildService constructs the pipeline for commands that parse names
func (a *app) buildService(cmd *cobra.Command, m *metrics.Metrics) (*core.Service, error) {
	svc, err := core.BuildService(a.cfg, core.BuildOptions{
		Metrics:     m,
		Logger:      a.logger,
		Debug:       a.flags.debug,
		DebugWriter: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return svc, nil
}

// formatterOptions derives output options, disabling colors off a terminal
func (a *app) formatterOptions(out io.Writer) formatters.FormatterOptions {
	noColor := a.cfg.Defaults.NoColor || !isTerminal(out)
	if noColor {
		color.NoColor = true
	}
	return formatters.FormatterOptions{
		Verbose: a.cfg.Defaults.Verbose,
		NoColor: noColor,
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "contact-splitter",
		Short:         "Split free-text names into salutation, titles, first and last name",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.resolve(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configFile, "config", "", "config file (default: search ./contact-splitter.yaml and the user config dir)")
	pf.StringVar(&a.flags.titlesFile, "titles-file", "", "title dictionary JSON file")
	pf.StringVarP(&a.flags.format, "format", "f", "text", "output format: "+strings.Join(formatters.List(), ", "))
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "show inaccuracies and review fields")
	pf.BoolVar(&a.flags.debug, "debug", false, "trace pipeline operations to stderr")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		parseCmd(a),
		batchCmd(a),
		titlesCmd(a),
		serveCmd(a),
		languagesCmd(a),
		formatsCmd(a),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
			return nil
		},
	}
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
