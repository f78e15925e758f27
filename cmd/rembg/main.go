// Command rembg batch-removes image backgrounds with per-item resource
// telemetry and a tail-latency summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/segmentio/ksuid"

	"github.com/naumvv/RemBG/batch"
	"github.com/naumvv/RemBG/probe"
	"github.com/naumvv/RemBG/rembg"
)

func main() {
	var (
		inputDir  string
		outputDir string
		endpoint  string
		gpuSysfs  string
		schedule  string
	)

	flag.StringVar(&inputDir, "input", "", "input folder with images (required)")
	flag.StringVar(&inputDir, "i", "", "shorthand for --input")
	flag.StringVar(&outputDir, "output", "", "output folder for PNGs (required, created if missing)")
	flag.StringVar(&outputDir, "o", "", "shorthand for --output")
	flag.StringVar(&endpoint, "endpoint", "", "BiRefNet inference server URL; passthrough when empty")
	flag.StringVar(&gpuSysfs, "gpu-sysfs", "/sys", "sysfs root for GPU telemetry")
	flag.StringVar(&schedule, "schedule", "", "cron expression to re-run the batch periodically")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if inputDir == "" || outputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: rembg --input <dir> --output <dir> [--endpoint URL] [--schedule spec]")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var remover rembg.Remover = rembg.NewDefaultRemBG()
	if endpoint != "" {
		remover = rembg.NewBiRefNetRemBG(endpoint)
	}

	pr := probe.New(gpuSysfs, logger)
	runner := batch.NewRunner(batch.NewProcessor(remover, pr), pr.GPUAvailable(), logger)

	runOnce := func() error {
		runLogger := logger.With("run_id", ksuid.New().String())
		summary, err := runner.Run(ctx, inputDir, outputDir)
		if err != nil {
			return err
		}
		summary.Log(runLogger)
		return nil
	}

	if schedule == "" {
		if err := runOnce(); err != nil {
			logger.Error("batch failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Watch-folder mode: one run up front, then on the cron schedule until
	// interrupted. Per-run failures are logged, never fatal.
	if err := runOnce(); err != nil {
		logger.Error("batch failed", "error", err)
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := runOnce(); err != nil {
			logger.Error("scheduled batch failed", "error", err)
		}
	}); err != nil {
		logger.Error("invalid schedule", "expr", schedule, "error", err)
		os.Exit(2)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
}
