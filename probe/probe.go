// Package probe takes point-in-time snapshots of the current process's
// resident memory and, when a GPU telemetry backend is present, the first
// GPU device's used memory.
package probe

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	procStatusPath = "/proc/self/status"
	vramUsedPath   = "class/drm/card0/device/mem_info_vram_used"
)

const bytesPerMB = 1024 * 1024

// Reading is a transient snapshot taken before and after a protected
// operation. GPUUsedMB is always 0 when no GPU backend is available.
type Reading struct {
	ResidentMB float64
	GPUUsedMB  float64
}

// Probe samples process and GPU memory. GPU availability is decided once
// at construction; a missing backend downgrades GPU readings to zero for
// the lifetime of the probe instead of failing.
type Probe struct {
	statusPath   string
	vramPath     string
	gpuAvailable bool
	logger       *slog.Logger
}

// New builds a Probe rooted at sysfsRoot (normally "/sys"; overridable for
// tests). The GPU backend counts as available when the first card exposes
// a VRAM usage counter.
func New(sysfsRoot string, logger *slog.Logger) *Probe {
	if logger == nil {
		logger = slog.Default()
	}

	vramPath := filepath.Join(sysfsRoot, vramUsedPath)
	_, err := os.Stat(vramPath)
	available := err == nil
	if !available {
		logger.Info("GPU telemetry unavailable, VRAM readings disabled", "path", vramPath)
	}

	return &Probe{
		statusPath:   procStatusPath,
		vramPath:     vramPath,
		gpuAvailable: available,
		logger:       logger,
	}
}

// GPUAvailable reports whether the GPU backend initialized at construction.
// Readings taken with an unavailable backend carry a constant zero, which
// callers must not confuse with a measured zero.
func (p *Probe) GPUAvailable() bool {
	return p.gpuAvailable
}

// Sample returns the current resident and GPU memory in megabytes.
func (p *Probe) Sample() Reading {
	return Reading{
		ResidentMB: p.residentMB(),
		GPUUsedMB:  p.gpuUsedMB(),
	}
}

// residentMB reads VmRSS from /proc/self/status. A read failure yields 0;
// the file exists for as long as the process does, so this is effectively
// unreachable outside of exotic /proc configurations.
func (p *Probe) residentMB() float64 {
	f, err := os.Open(p.statusPath)
	if err != nil {
		p.logger.Warn("read process status failed", "error", err)
		return 0
	}
	defer func() {
		_ = f.Close()
	}()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0
		}
		return kb / 1024
	}
	return 0
}

func (p *Probe) gpuUsedMB() float64 {
	if !p.gpuAvailable {
		return 0
	}
	raw, err := os.ReadFile(p.vramPath)
	if err != nil {
		p.logger.Warn("read VRAM usage failed", "error", err)
		return 0
	}
	used, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		p.logger.Warn("parse VRAM usage failed", "error", err)
		return 0
	}
	return used / bytesPerMB
}
