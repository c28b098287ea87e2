package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/marckit/cmd/marcdump/logger"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	configPath string
	logLevel   string
	logFile    string

	// cfg is the effective configuration, set before any subcommand runs.
	cfg = DefaultConfig()

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "marcdump",
	Short: "Convert and inspect MARC records",
	Long: `marcdump reads bibliographic records in ISO 2709 or MARCXML form and
writes them as ISO 2709, MARCXML, MarcXchange or a line-oriented dump.
Damaged records are converted as far as possible; the problems found are
shown as comments in the output.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append JSON logs to this file")
}

// setup loads the config file and initializes logging.
func setup(cmd *cobra.Command, args []string) error {
	cfg = DefaultConfig()
	if configPath != "" {
		loaded, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}

	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	if verbose {
		level = min(level, slog.LevelDebug)
	}
	logCloser, err = logger.Init(logger.Options{
		Enabled: verbose || cfg.Logging.File != "" || logLevel != "",
		Level:   level,
		File:    cfg.Logging.File,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logger.Debug("config loaded", "path", configPath, "format", cfg.Format)
	return nil
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
