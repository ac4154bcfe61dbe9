package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/go-fatigue/fatigue/internal/buildinfo"
	fatigue "github.com/go-fatigue/fatigue/internal/config"
	"github.com/go-fatigue/fatigue/internal/job"
	"github.com/go-fatigue/fatigue/internal/logging"
	"github.com/go-fatigue/fatigue/internal/setup"
	"github.com/go-fatigue/fatigue/internal/shutdown"
)

func main() {
	var (
		runPath = flag.String("run", "", "path to a YAML or TOML job file")
		mode    = flag.String("mode", "", "where to run the job: local or cloud (default $FATIGUE_MODE or local)")
		verbose = flag.Bool("verbose", false, "dump the decoded job to stderr")
		version = flag.Bool("version", false, "print the build banner and exit")
	)
	flag.Parse()

	if *version {
		buildinfo.Info.Fprint(os.Stdout)
		return
	}

	ctx, done := shutdown.New()
	defer done()
	logger := logging.NewLoggerFromEnv()
	ctx = logging.WithLogger(ctx, logger)

	if err := run(ctx, *runPath, *mode, *verbose, os.Stdout, os.Stderr); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, path, mode string, verbose bool, stdout, stderr io.Writer) error {
	if path == "" {
		return fmt.Errorf("missing -run job file")
	}
	config := fatigue.CLIConfig{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	if mode == "" {
		mode = config.Mode
	}

	j, err := job.Load(path)
	if err != nil {
		return fmt.Errorf("job.Load: %w", err)
	}
	if verbose {
		spew.Fdump(stderr, j)
	}

	var res *job.Result
	switch mode {
	case fatigue.ModeLocal:
		res, err = job.Run(ctx, j, job.WithWorkers(config.Workers), job.WithParallelism(config.Parallelism))
	case fatigue.ModeCloud:
		res, err = env.Remote().Run(ctx, j, config.Parallelism)
	default:
		return fmt.Errorf("unknown mode %q, expected %s or %s", mode, fatigue.ModeLocal, fatigue.ModeCloud)
	}
	if err != nil {
		return fmt.Errorf("run %s job %q: %w", mode, j.Name, err)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
