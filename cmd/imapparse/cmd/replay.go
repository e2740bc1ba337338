package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var replayMaxConcurrency int

var replayCmd = &cobra.Command{
	Use:   "replay <dir>",
	Short: "Replay every capture file in a directory concurrently, one cursor per file",
	Long: "Fans a directory of capture files out across goroutines, one\n" +
		"ByteCursor/Tracker pair per file, so that no cursor is ever touched\n" +
		"by more than one goroutine at a time.",
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&replayMaxConcurrency, "concurrency", 8, "max capture files replayed at once")
}

func runReplay(cmd *cobra.Command, args []string) error {
	dir := args[0]
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: no capture files\n", dir)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(replayMaxConcurrency)

	for _, path := range files {
		path := path
		g.Go(func() error {
			buf, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			traceID := uuid.NewString()
			result, err := replayBytes(logger, traceID, path, buf, cfg)
			if err != nil {
				return err
			}
			logger.Info("replay complete",
				"trace_id", traceID,
				"source", path,
				"responses", result.Responses,
				"truncated", result.Truncated,
			)
			return nil
		})
	}

	return g.Wait()
}
