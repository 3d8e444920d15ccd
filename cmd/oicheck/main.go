// Command oicheck loads OIFits tables from JSON documents and reports the rules they violate.
// It exits with a non-zero status when a file cannot be loaded or violates a severe rule.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/go-sif/oifits"
	"github.com/go-sif/oifits/batch"
	"github.com/go-sif/oifits/config"
	"github.com/go-sif/oifits/datasource/jsonfile"
	"github.com/go-sif/oifits/logging"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Config   string `flag:"config" help:"path to a YAML configuration file."`
	Parallel int    `flag:"parallel" help:"maximum number of files checked at once. Overrides the configuration."`
	LogLevel string `flag:"log-level" help:"one of TRACE, DEBUG, INFO, WARN, ERROR. Overrides the configuration."`
	Inspect  bool   `flag:"inspect" help:"keep checking the values of missing mandatory columns."`
}

const ARG_FILE = "FILE"

var errSevere = errors.New("severe violations found")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd, err := flarc.NewCommand(
		"check OIFits tables described by JSON documents",
		Flags{},
		flarc.Args{
			{
				Name: ARG_FILE, Required: true, Repeatable: true,
				Help: "JSON documents to check. Glob patterns are expanded.",
			},
		},
		func(ctx context.Context, c flarc.Commandline[Flags], _ []any) error {
			return run(ctx, c.Stdout(), c.Flags(), c.Args()[ARG_FILE])
		},
	)
	if err != nil {
		logging.Default().Error("cannot build command", "error", err)
		os.Exit(2)
	}
	os.Exit(flarc.Run(ctx, cmd))
}

func run(ctx context.Context, out io.Writer, flags Flags, patterns []string) error {
	conf := config.Default()
	if flags.Config != "" {
		loaded, err := config.Load(flags.Config)
		if err != nil {
			return err
		}
		conf = loaded
	}
	if flags.Parallel > 0 {
		conf.Parallelism = flags.Parallel
	}
	if flags.LogLevel != "" {
		conf.LogLevel = flags.LogLevel
	}
	if flags.Inspect {
		conf.Checker.InspectRules = true
	}
	logger := logging.New(os.Stderr, logging.ParseLogLevel(conf.LogLevel))

	var paths []string
	for _, pattern := range patterns {
		matches, err := jsonfile.Glob(pattern)
		if err != nil {
			return fmt.Errorf("%w: %s", flarc.ErrUsage, err)
		}
		paths = append(paths, matches...)
	}

	validator := batch.NewValidator(conf, logger)
	results, err := validator.CheckFiles(ctx, paths)
	if err != nil {
		return err
	}
	severe := false
	for _, res := range results {
		fmt.Fprintf(out, "== %s (fingerprint %016x)\n", res.Source, res.Fingerprint)
		if res.LoadErr != nil {
			fmt.Fprintf(out, "load error: %s\n", res.LoadErr)
		}
		checker := oifits.NewChecker(oifits.WithCheckerLogger(logger))
		for _, v := range res.Violations {
			checker.Report(v)
		}
		if err := checker.WriteReport(out); err != nil {
			return err
		}
		severe = severe || res.HasSevere()
	}
	stats := validator.Stats()
	logger.Info("validation finished", "files", stats.GetNumSourcesChecked(), "failed", stats.GetNumSourcesFailed(),
		"violations", stats.GetNumViolations(), "runtime", stats.GetRuntime(), "avgCheckTime", stats.GetCurrentCheckTime())
	if severe {
		return errSevere
	}
	return nil
}
