package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/image-recolor/internal/config"
	"github.com/ironsheep/image-recolor/internal/imaging"
	"github.com/ironsheep/image-recolor/internal/recolor"
	"github.com/ironsheep/image-recolor/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version, --help and the serve subcommand
	args := os.Args[1:]
	serve := false
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Printf("image-recolor %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return
		case "serve":
			serve = true
			args = args[1:]
		}
	}

	// Configure logging to stderr (stdout carries results or MCP traffic)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, opts, err := parseArgs(args)
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}
	if cfg.Debug() {
		log.Printf("image-recolor v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if serve {
		srv := server.New(cfg)
		if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}
	if err := run(ctx, cfg, opts, os.Stdout); err != nil {
		log.Fatalf("Recolor failed: %v", err)
	}
}

// runOptions holds settings that only apply to one-shot runs.
type runOptions struct {
	// Bench lists worker counts to time instead of writing an output file.
	Bench []int
	Runs  int
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "image-recolor - shift near-gray pixels toward purple using parallel bands")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  image-recolor -in <image> [-out <image>] [-workers N] [options]")
	fmt.Fprintln(w, "  image-recolor -in <image> -bench 1,2,6,16,40 [-runs N]")
	fmt.Fprintln(w, "  image-recolor serve [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	newFlagSet(w, &config.Flags{}, new(string), new(string), new(int)).PrintDefaults()
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=debug    Enable debug logging\n", config.LogLevelEnv)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "In serve mode the MCP protocol is spoken over stdin/stdout.")
}

func newFlagSet(out io.Writer, f *config.Flags, configPath, bench *string, runs *int) *flag.FlagSet {
	fs := flag.NewFlagSet("image-recolor", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(configPath, "config", "", "JSON config file; flags override its values")
	fs.StringVar(&f.Source, "in", "", "source image")
	fs.StringVar(&f.Destination, "out", "", "destination image (default <name>-purple<ext>)")
	fs.IntVar(&f.Workers, "workers", 0, "number of horizontal bands (default 1)")
	fs.IntVar(&f.MaxConcurrent, "max-concurrent", 0, "bands running at once (default number of CPUs)")
	fs.BoolVar(&f.KeepRowGap, "keep-row-gap", false, "leave the last height%workers rows unprocessed")
	fs.IntVar(&f.JPEGQuality, "quality", 0, "JPEG quality 1-100 (default 95)")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: info or debug")
	fs.StringVar(bench, "bench", "", "comma-separated worker counts to time; nothing is written")
	fs.IntVar(runs, "runs", 3, "runs per worker count in bench mode")
	return fs
}

// parseArgs builds the run configuration from command-line arguments and an
// optional config file.
func parseArgs(args []string) (config.Config, runOptions, error) {
	var (
		f          config.Flags
		configPath string
		bench      string
		opts       runOptions
	)
	fs := newFlagSet(os.Stderr, &f, &configPath, &bench, &opts.Runs)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, opts, err
	}
	if fs.NArg() > 0 {
		return config.Config{}, opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	var cfg config.Config
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return config.Config{}, opts, err
		}
	}
	cfg.Resolve(f)

	if bench != "" {
		counts, err := parseWorkerCounts(bench)
		if err != nil {
			return config.Config{}, opts, err
		}
		opts.Bench = counts
	}
	return cfg, opts, nil
}

// parseWorkerCounts parses a list like "1,2,6,16,40".
func parseWorkerCounts(s string) ([]int, error) {
	var counts []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("bench: invalid worker count %q", field)
		}
		if n < 1 {
			return nil, fmt.Errorf("bench: worker count %d must be at least 1", n)
		}
		counts = append(counts, n)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("bench: no worker counts in %q", s)
	}
	return counts, nil
}

// run performs a one-shot recolor, or a scaling measurement when opts.Bench
// is set, and prints the result to w.
func run(ctx context.Context, cfg config.Config, opts runOptions, w io.Writer) error {
	img, err := imaging.Decode(cfg.Source)
	if err != nil {
		return err
	}
	src := recolor.FromImage(img)

	if len(opts.Bench) > 0 {
		timings, err := recolor.MeasureScaling(ctx, src, opts.Bench, opts.Runs)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %dx%d, %d runs\n", cfg.Source, src.Width, src.Height, max(opts.Runs, 1))
		fmt.Fprintf(w, "%8s %10s %10s %8s\n", "workers", "best_ms", "mean_ms", "speedup")
		for _, t := range timings {
			fmt.Fprintf(w, "%8d %10.3f %10.3f %7.2fx\n", t.Workers, millis(t.Best), millis(t.Mean), t.Speedup)
		}
		return nil
	}

	start := time.Now()
	dst, err := recolor.RecolorBuffer(ctx, src, recolor.Options{
		Workers:       cfg.Workers,
		MaxConcurrent: cfg.MaxConcurrent,
		KeepRowGap:    cfg.KeepRowGap,
	})
	elapsed := time.Since(start)
	if err != nil {
		return err
	}
	if cfg.Debug() {
		log.Printf("recolored %dx%d with %d bands (max %d concurrent)", src.Width, src.Height, cfg.Workers, cfg.MaxConcurrent)
	}

	if err := imaging.Save(dst.Image(), cfg.Destination, cfg.JPEGQuality); err != nil {
		return err
	}
	fmt.Fprintf(w, "Recolored %s -> %s in %.3f ms using %d workers\n", cfg.Source, cfg.Destination, millis(elapsed), cfg.Workers)
	return nil
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
