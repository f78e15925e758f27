package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/naumvv/RemBG/stats"
)

// Summary aggregates tail statistics over the successful items of a run.
// VRAM is nil when no GPU telemetry backend was available at startup:
// "not measured" must stay distinguishable from a measured zero.
type Summary struct {
	Count   int
	Elapsed stats.Metric
	RAM     stats.Metric
	VRAM    *stats.Metric
}

// Runner drives the directory scan and isolates per-item failures.
type Runner struct {
	proc   *Processor
	gpu    bool
	logger *slog.Logger
}

func NewRunner(proc *Processor, gpuAvailable bool, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{proc: proc, gpu: gpuAvailable, logger: logger}
}

// Run processes every supported image in inputDir sequentially, writing
// results to outputDir (created if absent). A failing item is logged and
// excluded from the aggregates; only setup failures return an error.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	if _, err := os.Stat(inputDir); err != nil {
		return Summary{}, fmt.Errorf("input directory: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output directory: %w", err)
	}

	files, err := Discover(inputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("discover input files: %w", err)
	}
	r.logger.Info("found input images", "count", len(files), "dir", inputDir)

	var measurements []Measurement
	for i, path := range files {
		if ctx.Err() != nil {
			r.logger.Warn("interrupted", "processed", len(measurements))
			break
		}

		name := filepath.Base(path)
		r.logger.Info("processing", "file", name, "index", i+1, "total", len(files))

		m, err := r.proc.Process(ctx, path, outputDir)
		if err != nil {
			r.logger.Error("processing failed", "file", name, "error", err)
			continue
		}

		attrs := []any{
			"file", name,
			"elapsed", m.Elapsed.Round(time.Millisecond),
			"ram_delta_mb", fmt.Sprintf("%.2f", m.RAMDeltaMB),
		}
		if r.gpu {
			attrs = append(attrs, "vram_delta_mb", fmt.Sprintf("%.2f", m.VRAMDeltaMB))
		}
		r.logger.Info("saved", attrs...)

		measurements = append(measurements, m)
	}

	return r.summarize(measurements), nil
}

func (r *Runner) summarize(measurements []Measurement) Summary {
	if len(measurements) == 0 {
		return Summary{}
	}

	elapsed := make([]float64, len(measurements))
	ram := make([]float64, len(measurements))
	vram := make([]float64, len(measurements))
	for i, m := range measurements {
		elapsed[i] = m.Elapsed.Seconds()
		ram[i] = m.RAMDeltaMB
		vram[i] = m.VRAMDeltaMB
	}

	s := Summary{
		Count:   len(measurements),
		Elapsed: stats.Summarize(elapsed),
		RAM:     stats.Summarize(ram),
	}
	if r.gpu {
		vs := stats.Summarize(vram)
		s.VRAM = &vs
	}
	return s
}

// Log prints the end-of-run summary. Skipped entirely when no item
// succeeded, so an all-failure batch never reports empty statistics.
func (s Summary) Log(logger *slog.Logger) {
	if s.Count == 0 {
		logger.Warn("no images processed, summary skipped")
		return
	}

	logger.Info("summary", "processed", s.Count)
	logger.Info("elapsed seconds",
		"p95", fmt.Sprintf("%.2f", s.Elapsed.P95),
		"p99", fmt.Sprintf("%.2f", s.Elapsed.P99),
		"max", fmt.Sprintf("%.2f", s.Elapsed.Max))
	logger.Info("ram delta mb",
		"p95", fmt.Sprintf("%.2f", s.RAM.P95),
		"p99", fmt.Sprintf("%.2f", s.RAM.P99),
		"max", fmt.Sprintf("%.2f", s.RAM.Max))
	if s.VRAM != nil {
		logger.Info("vram delta mb",
			"p95", fmt.Sprintf("%.2f", s.VRAM.P95),
			"p99", fmt.Sprintf("%.2f", s.VRAM.P99),
			"max", fmt.Sprintf("%.2f", s.VRAM.Max))
	} else {
		logger.Info("vram delta mb unavailable (no GPU telemetry backend)")
	}
}
