package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/naumvv/RemBG/probe"
	"github.com/naumvv/RemBG/rembg"
	"github.com/naumvv/RemBG/util"
)

// Processor applies the background remover to one file and measures its
// cost. The probe/call/probe sequence must stay serialized; concurrent
// items would corrupt the attribution of memory deltas.
type Processor struct {
	remover rembg.Remover
	probe   *probe.Probe
}

func NewProcessor(remover rembg.Remover, p *probe.Probe) *Processor {
	return &Processor{remover: remover, probe: p}
}

// Process removes the background of the image at srcPath and writes the
// result to outputDir as <stem>.png. Inputs may be lossy; the output is
// always PNG so transparency survives. Failures come back as *ItemError.
func (p *Processor) Process(ctx context.Context, srcPath, outputDir string) (Measurement, error) {
	before := p.probe.Sample()
	start := time.Now()

	img, err := util.OpenImage(srcPath)
	if err != nil {
		return Measurement{}, &ItemError{Path: srcPath, Err: fmt.Errorf("decode: %w", err)}
	}

	removed, err := p.remover.Remove(ctx, img)
	if err != nil {
		return Measurement{}, &ItemError{Path: srcPath, Err: fmt.Errorf("remove background: %w", err)}
	}

	outPath := filepath.Join(outputDir, stem(srcPath)+".png")
	if err := util.SavePNG(removed, outPath); err != nil {
		return Measurement{}, &ItemError{Path: srcPath, Err: fmt.Errorf("save: %w", err)}
	}

	elapsed := time.Since(start)
	after := p.probe.Sample()

	return Measurement{
		Path:        srcPath,
		Elapsed:     elapsed,
		RAMDeltaMB:  after.ResidentMB - before.ResidentMB,
		VRAMDeltaMB: after.GPUUsedMB - before.GPUUsedMB,
	}, nil
}

// stem returns the base name without its extension, the join key between
// input and output files.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
