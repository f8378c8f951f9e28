package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jarredhawkins/yardgen-lsp/internal/lsp"
	"github.com/jarredhawkins/yardgen-lsp/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language server on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, err := loadSettings()
		if err != nil {
			return err
		}
		logger.Info("yardgen-lsp starting", zap.String("settings", store.Path()))

		// Create context with cancellation
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			select {
			case <-sigCh:
				logger.Info("shutdown signal received")
				cancel()
			case <-ctx.Done():
			}
		}()

		// Reload settings when the file changes
		w, err := watcher.New(store.Path(), func(removed bool) {
			if err := store.Reload(); err != nil {
				logger.Warn("failed to reload settings", zap.Error(err))
				return
			}
			logger.Info("settings reloaded", zap.Bool("removed", removed))
		}, logger)
		if err != nil {
			return err
		}
		defer w.Close()

		if err := w.Start(); err != nil {
			// Settings still work, they just won't reload
			logger.Warn("failed to start settings watcher", zap.Error(err))
		}

		// Start LSP server on stdio
		server := lsp.NewServer(newGenerator(logger), store, logger)
		if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
			logger.Error("LSP server error", zap.Error(err))
			return err
		}

		logger.Info("yardgen-lsp shutdown complete")
		return nil
	},
}
