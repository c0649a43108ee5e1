package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = `Usage: dncalc [flags] <build> [build...]
       dncalc gold [flags]

Positional arguments:
  build   Build file (.json or .yaml) holding {build, skill}

One build prints the current and comparison damage with their difference.
Several builds are evaluated concurrently and printed as a table.
"dncalc gold -h" describes the raid gold splitter.

Flags:
`

func newLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return log.Sugar()
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "gold" {
		if err := runGold(os.Args[2:], os.Stdout, os.Stderr); err != nil {
			if !errors.Is(err, flag.ErrHelp) {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
			os.Exit(1)
		}
		return
	}

	jsonOut := flag.Bool("json", false, "Output results as JSON")
	verbose := flag.Bool("verbose", false, "Log progress to stderr")
	skillPath := flag.String("skill", "", "Skill file that replaces the skill of every build")
	browser := flag.Bool("import", false, "Read files in the browser calculator's storage layout")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	log := newLogger(*verbose)
	defer log.Sync()

	opts := options{skillPath: *skillPath, browser: *browser, jsonOut: *jsonOut}
	start := time.Now()
	results, err := evaluate(context.Background(), args, opts, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log.Infow("done", "builds", len(results), "elapsed", time.Since(start))

	if len(results) == 1 {
		err = runSingle(os.Stdout, results[0], opts.jsonOut)
	} else {
		err = runAll(os.Stdout, results, time.Since(start), opts.jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
