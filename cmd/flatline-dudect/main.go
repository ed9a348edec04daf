package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"

	"github.com/stateless-ltd/flatline/config"
	"github.com/stateless-ltd/flatline/dudect"
	"github.com/stateless-ltd/flatline/flatline"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		configPath  = flag.String("config", "", "Config file path (default: platform config dir)")
		samples     = flag.Int("samples", 0, "Samples per class (overrides config)")
		reps        = flag.Int("reps", 0, "Invocations per sample (overrides config)")
		threshold   = flag.Float64("threshold", 0, "Leak threshold on |t| (overrides config)")
		bufSize     = flag.Int("bufsize", 0, "Scratch buffer size in bytes (overrides config)")
		noThrash    = flag.Bool("no-thrash", false, "Disable cache thrashing between samples")
		listOnly    = flag.Bool("list", false, "List targets and exit")
		runFilter   = flag.String("run", "", "Only run targets whose name contains this substring")
		tuiMode     = flag.Bool("tui", false, "Show live results in a TUI")
		noColor     = flag.Bool("no-color", false, "Disable colored output")
	)
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("flatline-dudect %s (%s)\n", Version, Commit)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flatline-dudect: %v\n", err)
		os.Exit(1)
	}
	if *samples > 0 {
		cfg.Dudect.Samples = *samples
	}
	if *reps > 0 {
		cfg.Dudect.Reps = *reps
	}
	if *threshold > 0 {
		cfg.Dudect.TThreshold = *threshold
	}
	if *bufSize > 0 {
		cfg.Dudect.BufSize = *bufSize
	}
	if *noThrash {
		cfg.Dudect.ThrashBytes = 0
	}
	if *noColor {
		cfg.Display.ColorOutput = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "flatline-dudect: %v\n", err)
		os.Exit(1)
	}

	targets := filterTargets(dudect.BuiltinTargets(), *runFilter)
	if len(targets) == 0 {
		fmt.Fprintf(os.Stderr, "flatline-dudect: no targets match %q\n", *runFilter)
		os.Exit(1)
	}

	if *listOnly {
		for _, t := range targets {
			kind := "CT"
			if t.Leaky {
				kind = "leaky control"
			}
			fmt.Printf("%-24s %s\n", t.Name, kind)
		}
		return
	}

	opts := dudect.Options{
		Samples:      cfg.Dudect.Samples,
		Reps:         cfg.Dudect.Reps,
		BufSize:      cfg.Dudect.BufSize,
		Threshold:    cfg.Dudect.TThreshold,
		ThrashBytes:  cfg.Dudect.ThrashBytes,
		ThrashStride: cfg.Dudect.ThrashStride,
		Seed:         cfg.Dudect.Seed,
	}

	if *tuiMode {
		if err := runTUI(opts, targets, cfg.Display.RefreshMS); err != nil {
			fmt.Fprintf(os.Stderr, "flatline-dudect: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runPlain(opts, targets, cfg.Display.ColorOutput)
}

func usage() {
	fmt.Fprintf(os.Stderr, "flatline-dudect - timing-leak suite for the flatline primitives\n\n")
	fmt.Fprintf(os.Stderr, "Usage: flatline-dudect [options]\n\nOptions:\n")
	flag.PrintDefaults()
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func filterTargets(targets []dudect.Target, filter string) []dudect.Target {
	if filter == "" {
		return targets
	}
	var out []dudect.Target
	for _, t := range targets {
		if strings.Contains(t.Name, filter) {
			out = append(out, t)
		}
	}
	return out
}

func runPlain(opts dudect.Options, targets []dudect.Target, useColor bool) {
	color.NoColor = color.NoColor || !useColor
	okCol := color.New(color.FgGreen)
	leakCol := color.New(color.FgRed)
	warnCol := color.New(color.FgYellow)

	fmt.Printf("DUDECT-style timing check: samples=%d reps=%d bufsize=%d |t| threshold=%.1f thrash=%db\n",
		opts.Samples, opts.Reps, opts.BufSize, opts.Threshold, opts.ThrashBytes)
	fmt.Printf("backend=%s  arch=%s  cpu=%s\n\n", flatline.BulkBackend(), runtime.GOARCH, cpuFeatures())

	failed := 0
	runner := dudect.NewRunner(opts)
	runner.RunAll(targets, func(r dudect.Result) {
		verdict := okCol.Sprint("OK")
		if r.Leak(opts.Threshold) {
			if r.Leaky {
				verdict = okCol.Sprint("LEAK (control)")
			} else {
				verdict = leakCol.Sprint("LEAK")
			}
		} else if r.Leaky {
			verdict = warnCol.Sprint("quiet control")
		}
		if !r.Pass(opts.Threshold) {
			failed++
		}
		fmt.Printf("[DU] %-22s | mean0=%9.1fns mean1=%9.1fns | t=%8.2f | %s\n",
			r.Name, r.Mean0, r.Mean1, r.T, verdict)
	})

	fmt.Println()
	if failed > 0 {
		leakCol.Printf("%d of %d targets did not behave as expected\n", failed, len(targets))
		os.Exit(1)
	}
	okCol.Printf("all %d targets behaved as expected\n", len(targets))
}
