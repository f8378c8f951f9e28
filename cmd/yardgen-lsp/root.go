package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jarredhawkins/yardgen-lsp/internal/config"
	"github.com/jarredhawkins/yardgen-lsp/internal/parser"
	"github.com/jarredhawkins/yardgen-lsp/internal/yard"
)

var (
	configPath string
	logFile    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "yardgen-lsp",
	Short: "YARD documentation generator for Ruby",
	Long: `yardgen-lsp inserts YARD documentation comments above Ruby methods,
constants, modules, classes, attribute accessors and model macros.

It runs as a language server offering a "Generate YARD documentation" code
action, or one-shot on a file with the generate command.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (defaults to ./"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "Log file path (defaults to stderr)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging and body scanner tracing")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
}

// newLogger writes JSON logs to the log file or stderr. stdout is reserved
// for LSP traffic and generated output.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if logFile != "" {
		cfg.OutputPaths = []string{logFile}
	}
	if debug {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// settingsPath resolves --config, falling back to the default file in the
// working directory
func settingsPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, config.DefaultFileName), nil
}

// loadSettings creates the settings store and applies command line overrides
func loadSettings() (*config.Store, error) {
	path, err := settingsPath()
	if err != nil {
		return nil, err
	}
	store := config.NewStore(path)
	if err := store.Reload(); err != nil {
		return nil, err
	}
	if debug {
		store.SetFlags(config.Override{Debug: config.Bool(true)})
	}
	return store, nil
}

func newGenerator(logger *zap.Logger) *yard.Generator {
	registry := parser.NewRegistry()
	parser.RegisterDefaults(registry)
	return yard.NewGenerator(registry, logger)
}
