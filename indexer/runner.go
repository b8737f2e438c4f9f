package indexer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"media-indexer/internal/logging"
	"media-indexer/internal/metrics"
)

// runIndex invokes the external tool to build the index at output. It blocks
// until the child process exits; no timeout is imposed here, callers wanting
// one pass a context with a deadline.
func (c *Cache) runIndex(ctx context.Context, files []string, output string, extraArgs []string) error {
	outDir := filepath.Dir(output)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create index folder %s: %w", outDir, err)
	}

	bin, err := exec.LookPath(c.tool.BinPath())
	if err != nil {
		return &NotFoundError{Path: c.tool.BinPath(), Err: err}
	}

	argv := c.tool.BuildCommand(files, output)
	argv = append(argv, extraArgs...)
	argv = append(argv, c.tool.DefaultArgs()...)

	cmd := exec.CommandContext(ctx, bin, argv[1:]...)
	cmd.Dir = outDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Info("Indexing %d file(s) with %s -> %s", len(files), c.tool.Name(), output)
	logging.Debug("Indexer command: %s %s", bin, strings.Join(argv[1:], " "))

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	metrics.IndexerRunsTotal.WithLabelValues(c.tool.Name()).Inc()
	metrics.IndexerRunDuration.WithLabelValues(c.tool.Name()).Observe(duration.Seconds())

	if runErr != nil {
		metrics.IndexerRunFailures.WithLabelValues(c.tool.Name()).Inc()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &ExecError{
			Bin:    bin,
			Stdout: strings.TrimSpace(stdout.String()),
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    runErr,
		}
	}

	logging.Debug("Indexer finished in %s: %s", duration, output)
	return nil
}
