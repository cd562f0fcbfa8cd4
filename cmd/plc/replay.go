package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/PrincessGod/plc/internal/config"
	"github.com/PrincessGod/plc/internal/replay"
	"github.com/PrincessGod/plc/pkg/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watchScript bool
	debounce    time.Duration
	jsonOutput  string
)

var replayCmd = &cobra.Command{
	Use:   "replay [script]",
	Short: "Replay a scripted measuring session",
	Long: `Replay a YAML script of clicks, moves and tool switches against an in-memory
globe and print every painted measurement. With --watch the script and the
configuration file are replayed again whenever they change.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVarP(&watchScript, "watch", "w", false, "Replay again when the script or config changes")
	replayCmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Delay before replaying after a change")
	replayCmd.Flags().StringVarP(&jsonOutput, "output", "o", "", "Also save the report as JSON to this file")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	path := args[0]
	if err := replayOnce(cmd, path, cfg, logger); err != nil {
		if !watchScript {
			return err
		}
		logger.Error("Replay failed", zap.String("script", path), zap.Error(err))
	}
	if !watchScript {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(debounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	files := []string{path}
	if configPath != "" {
		files = append(files, configPath)
	}
	// debounce timers run per file; a script and config saved together must
	// not replay at the same time
	err = fw.Watch(files, serialize(func(changed string) {
		logger.Info("File changed, replaying", zap.String("file", changed))

		current, err := loadConfig()
		if err != nil {
			logger.Error("Config reload failed", zap.Error(err))
			return
		}
		if err := replayOnce(cmd, path, current, logger); err != nil {
			logger.Error("Replay failed", zap.String("script", path), zap.Error(err))
		}
	}))
	if err != nil {
		return err
	}

	logger.Info("Watching for changes", zap.Strings("files", files))
	fw.Run(ctx)
	return nil
}

func replayOnce(cmd *cobra.Command, path string, cfg config.Config, logger *zap.Logger) error {
	script, err := replay.LoadScript(path)
	if err != nil {
		return err
	}
	report, err := replay.Run(script, cfg, logger)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}
	report.Write(cmd.OutOrStdout(), heading)

	if jsonOutput != "" {
		if err := replay.SaveReport(report, jsonOutput); err != nil {
			return err
		}
		logger.Debug("Report saved", zap.String("file", jsonOutput))
	}
	return nil
}

// serialize returns a callback that runs fn for one call at a time
func serialize(fn func(string)) func(string) {
	var mu sync.Mutex
	return func(s string) {
		mu.Lock()
		defer mu.Unlock()
		fn(s)
	}
}
