package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"media-indexer/d2v"
	"media-indexer/indexer"
	"media-indexer/internal/logging"
	"media-indexer/internal/metrics"
	"media-indexer/internal/server"
	"media-indexer/internal/workers"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const defaultPort = "8970"

// commonFlags are shared by every subcommand that drives the cache.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "env",
			Usage: "environment file to load before reading configuration",
			Value: ".env",
		},
		&cli.StringFlag{
			Name:  "bin",
			Usage: "indexer binary name or path (default: VSIDX_BIN or dgindex)",
		},
		&cli.BoolFlag{
			Name:  "keep-corrupted",
			Usage: "fail on corrupted index files instead of deleting and rebuilding them",
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "out",
			Usage: "directory for index artifacts (default: alongside each source file)",
		},
		&cli.BoolFlag{
			Name:  "tmp",
			Usage: "write index artifacts under the system temp directory",
		},
		&cli.BoolFlag{
			Name:  "split",
			Usage: "index each file separately instead of joining the set",
		},
	}
}

// setup loads the env file (when present) and builds the cache.
func setup(cmd *cli.Command) *indexer.Cache {
	envFile := cmd.String("env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			logging.Warn("failed to load %s: %v", envFile, err)
		}
	}

	bin := cmd.String("bin")
	if bin == "" {
		bin = os.Getenv("VSIDX_BIN")
	}

	tool := d2v.New()
	if bin != "" {
		tool = d2v.NewWithBin(bin)
	}

	return indexer.New(tool, !cmd.Bool("keep-corrupted"))
}

func outputOption(cmd *cli.Command) indexer.OutputFolder {
	switch {
	case cmd.Bool("tmp"):
		return indexer.TempDir()
	case cmd.String("out") != "":
		return indexer.OutputDir(cmd.String("out"))
	default:
		return indexer.OutputFolder{}
	}
}

func indexCommand() *cli.Command {
	flags := append(commonFlags(), outputFlags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:  "force",
			Usage: "delete and regenerate existing index artifacts",
		},
		&cli.IntFlag{
			Name:  "jobs",
			Usage: "parallel indexing jobs with --split (0 = auto)",
			Value: 1,
		},
		&cli.StringSliceFlag{
			Name:  "arg",
			Usage: "extra argument passed to the indexer binary (repeatable)",
		},
	)

	return &cli.Command{
		Name:      "index",
		Usage:     "build or reuse index artifacts for the given files",
		ArgsUsage: "FILES...",
		Flags:     flags,
		Action:    indexAction,
	}
}

func indexAction(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errors.New("no input files")
	}

	cache := setup(cmd)
	opts := indexer.IndexOptions{
		Force:      cmd.Bool("force"),
		SplitFiles: cmd.Bool("split"),
		Output:     outputOption(cmd),
		ExtraArgs:  cmd.StringSlice("arg"),
	}

	jobs := int(cmd.Int("jobs"))
	if jobs <= 0 {
		jobs = workers.ForIO(len(files))
	}

	// The cache itself is sequential; parallelism happens here, on the
	// caller side, one single-file call per job. Only meaningful in split
	// mode where units are independent.
	var paths []string
	var err error
	if opts.SplitFiles && jobs > 1 && len(files) > 1 {
		paths, err = indexParallel(ctx, cache, files, opts, jobs)
	} else {
		paths, err = cache.Index(ctx, files, opts)
	}
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

// indexParallel builds each file's artifact concurrently and returns the
// paths in the cache's canonical order, so the output matches a sequential
// call regardless of job count.
func indexParallel(ctx context.Context, cache *indexer.Cache, files []string, opts indexer.IndexOptions, jobs int) ([]string, error) {
	paths, err := cache.IndexPaths(files, opts)
	if err != nil {
		return nil, err
	}

	unique := make([]string, 0, len(files))
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if !seen[f] {
			seen[f] = true
			unique = append(unique, f)
		}
	}

	logging.Info("Indexing %d files with %d parallel jobs", len(unique), jobs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, file := range unique {
		file := file
		g.Go(func() error {
			_, err := cache.Index(gctx, []string{file}, opts)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}

func infoCommand() *cli.Command {
	flags := append(commonFlags(),
		&cli.IntFlag{
			Name:  "file",
			Usage: "recorded file index to report on",
		},
	)

	return &cli.Command{
		Name:      "info",
		Usage:     "print the parsed contents of an index artifact",
		ArgsUsage: "INDEXFILE",
		Flags:     flags,
		Action:    infoAction,
	}
}

func infoAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("expected exactly one index file")
	}

	cache := setup(cmd)
	info, err := cache.Tool().ReadInfo(cmd.Args().First(), int(cmd.Int("file")))
	if err != nil {
		return err
	}

	fmt.Printf("Index:  %s\n", info.Path)
	fmt.Printf("Videos: %d\n", len(info.Videos))
	for i, v := range info.Videos {
		fmt.Printf("  [%d] %s (%d bytes", i, v.Path, v.Size)
		if v.NumFrames > 0 {
			fmt.Printf(", %d frames", v.NumFrames)
		}
		fmt.Println(")")
	}
	return nil
}

func cleanCommand() *cli.Command {
	return &cli.Command{
		Name:      "clean",
		Usage:     "remove the cached index artifacts for the given files",
		ArgsUsage: "FILES...",
		Flags:     append(commonFlags(), outputFlags()...),
		Action:    cleanAction,
	}
}

func cleanAction(_ context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errors.New("no input files")
	}

	cache := setup(cmd)
	opts := indexer.IndexOptions{
		SplitFiles: cmd.Bool("split"),
		Output:     outputOption(cmd),
	}

	paths, err := cache.IndexPaths(files, opts)
	if err != nil {
		return err
	}

	for _, p := range paths {
		switch err := os.Remove(p); {
		case err == nil:
			fmt.Printf("removed %s\n", p)
		case os.IsNotExist(err):
			logging.Debug("No artifact at %s", p)
		default:
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

func serveCommand() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:  "port",
			Usage: "listen port (default: VSIDX_PORT or " + defaultPort + ")",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "cache directory reported by the stats collector",
		},
	)

	return &cli.Command{
		Name:   "serve",
		Usage:  "run the indexing daemon with an HTTP API and /metrics",
		Flags:  flags,
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cache := setup(cmd)

	port := cmd.String("port")
	if port == "" {
		port = os.Getenv("VSIDX_PORT")
	}
	if port == "" {
		port = defaultPort
	}

	outDir := cmd.String("out")
	if outDir == "" {
		outDir = os.Getenv("VSIDX_OUT_DIR")
	}

	metrics.InitializeMetrics(cache.Tool().Name())

	srv := server.New(cache, outDir)

	collector := metrics.NewCollector(srv, time.Minute)
	collector.Start()
	defer collector.Stop()

	httpSrv := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // indexing requests block for the tool's runtime
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logging.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logging.Warn("Shutdown error: %v", err)
		}
	}()

	logging.Info("Listening on :%s", port)
	if err := httpSrv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
