package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/sys/cpu"

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
		targetBytes = flag.Int("target-bytes", 0, "Total traffic per measurement (overrides config)")
		sizesFlag   = flag.String("sizes", "", "Comma-separated buffer sizes (overrides config)")
		noColor     = flag.Bool("no-color", false, "Disable colored output")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "flatline-bench - scalar vs auto throughput for the flatline bulk ops\n\n")
		fmt.Fprintf(os.Stderr, "Usage: flatline-bench [options]\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("flatline-bench %s (%s)\n", Version, Commit)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flatline-bench: %v\n", err)
		os.Exit(1)
	}
	if *targetBytes > 0 {
		cfg.Bench.TargetBytes = *targetBytes
	}
	if *sizesFlag != "" {
		sizes, err := parseSizes(*sizesFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "flatline-bench: %v\n", err)
			os.Exit(1)
		}
		cfg.Bench.Sizes = sizes
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "flatline-bench: %v\n", err)
		os.Exit(1)
	}
	color.NoColor = color.NoColor || *noColor || !cfg.Display.ColorOutput

	maxSize := 0
	for _, s := range cfg.Bench.Sizes {
		if s > maxSize {
			maxSize = s
		}
	}
	a := make([]byte, maxSize)
	b := make([]byte, maxSize)
	rng := dudect.NewRand(cfg.Dudect.Seed)
	rng.Fill(a)
	rng.Fill(b)

	head := color.New(color.FgCyan, color.Bold)
	head.Printf("flatline bulk ops: backend=%s arch=%s cpu=%s target=%s per cell\n\n",
		flatline.BulkBackend(), runtime.GOARCH, cpuFeatures(), mib(cfg.Bench.TargetBytes))
	fmt.Printf("%8s | %-12s | %12s | %12s\n", "size", "op", "scalar MB/s", "auto MB/s")
	fmt.Printf("---------+--------------+--------------+-------------\n")

	for _, n := range cfg.Bench.Sizes {
		scalar := throughput(cfg.Bench.TargetBytes, n, func(dst, src []byte) { flatline.MemXOR(dst, src) }, a, b)
		auto := throughput(cfg.Bench.TargetBytes, n, func(dst, src []byte) { flatline.MemXORAuto(dst, src) }, a, b)
		printRow(n, "memxor", scalar, auto)
	}
	fmt.Println()
	for _, n := range cfg.Bench.Sizes {
		scalar := throughput(cfg.Bench.TargetBytes, n, func(dst, src []byte) { flatline.MemCopyWhen(1, dst, src) }, a, b)
		auto := throughput(cfg.Bench.TargetBytes, n, func(dst, src []byte) { flatline.MemCopyWhenAuto(1, dst, src) }, a, b)
		printRow(n, "memcpy_when", scalar, auto)
	}
	fmt.Println()
	for _, n := range cfg.Bench.Sizes {
		scalar := throughput(cfg.Bench.TargetBytes, n, func(x, y []byte) { flatline.MemSwapWhen(1, x, y) }, a, b)
		auto := throughput(cfg.Bench.TargetBytes, n, func(x, y []byte) { flatline.MemSwapWhenAuto(1, x, y) }, a, b)
		printRow(n, "memswap_when", scalar, auto)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid size %q", p)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// throughput runs op over n-byte views until roughly targetBytes of traffic
// has moved, and returns MB/s.
func throughput(targetBytes, n int, op func(dst, src []byte), a, b []byte) float64 {
	iters := targetBytes / n
	if iters == 0 {
		iters = 1
	}
	dst := a[:n]
	src := b[:n]
	start := time.Now()
	for i := 0; i < iters; i++ {
		op(dst, src)
	}
	secs := time.Since(start).Seconds()
	if secs == 0 {
		return 0
	}
	return float64(iters) * float64(n) / secs / (1024 * 1024)
}

func printRow(n int, op string, scalar, auto float64) {
	faster := color.New(color.FgGreen).SprintfFunc()
	s := fmt.Sprintf("%12.1f", scalar)
	au := fmt.Sprintf("%12.1f", auto)
	if auto > scalar {
		au = faster("%12.1f", auto)
	} else if scalar > auto {
		s = faster("%12.1f", scalar)
	}
	fmt.Printf("%8d | %-12s | %s | %s\n", n, op, s, au)
}

func mib(n int) string {
	return fmt.Sprintf("%dMiB", n/(1024*1024))
}

func cpuFeatures() string {
	var feats []string
	if cpu.X86.HasSSE2 {
		feats = append(feats, "sse2")
	}
	if cpu.X86.HasAVX2 {
		feats = append(feats, "avx2")
	}
	if cpu.ARM64.HasASIMD {
		feats = append(feats, "neon")
	}
	if len(feats) == 0 {
		return "none"
	}
	return strings.Join(feats, ",")
}
