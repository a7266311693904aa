package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/ecoscore/internal/loadtest"
	"github.com/okian/ecoscore/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumProducts = 1000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

type runFlags struct {
	baseURL   string
	products  int
	workers   int
	timeout   time.Duration
	fixtures  string
	logFormat string
	verbose   bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Submit products concurrently to an ecoscore service and verify history and summary",
		Example: `  loadtest --url http://localhost:5000 --products 5000 --workers 16
  loadtest --fixtures testdata/products.yaml`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.baseURL, "url", "http://localhost:5000", "Base URL of the service")
	flags.IntVar(&f.products, "products", defaultNumProducts, "Number of random products to generate")
	flags.IntVar(&f.workers, "workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
	flags.DurationVar(&f.timeout, "timeout", defaultTimeout, "HTTP request timeout")
	flags.StringVar(&f.fixtures, "fixtures", "", "YAML file of products to submit instead of generated ones")
	flags.StringVar(&f.logFormat, "log-format", logger.FormatText, "Log format: text or json")
	flags.BoolVar(&f.verbose, "verbose", false, "Log every rejected or failed submission")

	return cmd
}

func run(parent context.Context, f *runFlags) error {
	if err := logger.InitWithOptions(logger.Options{Format: f.logFormat}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if f.verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTestTimeout)
	defer cancel()

	_, err := loadtest.Run(ctx, &loadtest.Config{
		BaseURL:      f.baseURL,
		NumProducts:  f.products,
		Workers:      f.workers,
		Timeout:      f.timeout,
		FixturesFile: f.fixtures,
		Verbose:      f.verbose,
	})
	if err != nil {
		return fmt.Errorf("load test failed: %w", err)
	}
	return nil
}
