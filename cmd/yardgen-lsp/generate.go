package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jarredhawkins/yardgen-lsp/internal/yard"
)

var (
	genLines []int
	genPlain bool
	genWrite bool
)

var generateCmd = &cobra.Command{
	Use:   "generate FILE",
	Short: "Document the constructs on the given lines of a Ruby file",
	Long: `Document the constructs on the given 1-indexed lines of a Ruby file.

The result is printed with snippet tab stops (${1:<type>}) unless --plain is
set. --write replaces the file with the plain result.`,
	Args: cobra.ExactArgs(1),
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

		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		content := string(data)

		sels, err := lineSelections(content, genLines)
		if err != nil {
			return err
		}

		buf := yard.NewTextBuffer(content, path, "")
		if !buf.Ruby {
			logger.Warn("not a Ruby file, nothing to do", zap.String("path", path))
		}

		res := newGenerator(logger).Generate(buf, sels, store.Snapshot())
		for _, d := range res.Diagnostics {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", d)
		}

		if genWrite {
			out := yard.ApplyEdits(content, res.Edits, true)
			if err := os.WriteFile(path, []byte(out), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			logger.Info("documented file", zap.String("path", path), zap.Int("edits", len(res.Edits)))
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), yard.ApplyEdits(content, res.Edits, genPlain))
		return nil
	},
}

func init() {
	generateCmd.Flags().IntSliceVarP(&genLines, "line", "l", nil, "1-indexed line to document (repeatable)")
	generateCmd.Flags().BoolVar(&genPlain, "plain", false, "Expand tab stops to their default text")
	generateCmd.Flags().BoolVarP(&genWrite, "write", "w", false, "Write the plain result back to the file")
	_ = generateCmd.MarkFlagRequired("line")
}

// lineSelections turns 1-indexed line numbers into cursors at each line start
func lineSelections(content string, lines []int) ([]yard.Selection, error) {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}

	sels := make([]yard.Selection, 0, len(lines))
	for _, n := range lines {
		if n < 1 || n > len(starts) {
			return nil, fmt.Errorf("line %d out of range (file has %d lines)", n, len(starts))
		}
		sels = append(sels, yard.Selection{Start: starts[n-1], End: starts[n-1]})
	}
	if len(sels) == 0 {
		return nil, fmt.Errorf("no lines given, use --line N")
	}
	return sels, nil
}
