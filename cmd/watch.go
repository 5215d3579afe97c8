package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/jdlint/formatter"
	"github.com/gnolang/jdlint/internal"
	tt "github.com/gnolang/jdlint/internal/types"
	"github.com/gnolang/jdlint/lint"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-check .java files as they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, err := lint.New(".", cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		watcher, err := internal.NewWatcher(engine, logger, printReport)
		if err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watcher.Close()

		for _, dir := range args {
			if err := watcher.Add(dir); err != nil {
				logger.Fatal("Failed to watch directory", zap.String("dir", dir), zap.Error(err))
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %d director(ies) for changes. Press Ctrl+C to stop.\n", len(args))
		if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Watcher stopped", zap.Error(err))
		}
	},
}

func printReport(filename string, issues []tt.Issue) {
	if len(issues) == 0 {
		fmt.Printf("%s: ok\n", filename)
		return
	}
	source, err := internal.ReadSourceCode(filename)
	if err != nil {
		logger.Warn("Error reading source file", zap.String("file", filename), zap.Error(err))
	}
	fmt.Print(formatter.GenerateFormattedIssue(issues, source))
}
