package probe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVRAMFile(t *testing.T, root, content string) {
	t.Helper()
	dir := filepath.Join(root, "class/drm/card0/device")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mem_info_vram_used"), []byte(content), 0o644))
}

func TestNewWithoutGPU(t *testing.T) {
	p := New(t.TempDir(), nil)
	assert.False(t, p.GPUAvailable())

	r := p.Sample()
	assert.Equal(t, 0.0, r.GPUUsedMB)
}

func TestNewWithGPU(t *testing.T) {
	root := t.TempDir()
	writeVRAMFile(t, root, "268435456\n")

	p := New(root, nil)
	assert.True(t, p.GPUAvailable())

	r := p.Sample()
	assert.InDelta(t, 256.0, r.GPUUsedMB, 1e-9)
}

func TestGPUReadGarbageYieldsZero(t *testing.T) {
	root := t.TempDir()
	writeVRAMFile(t, root, "not a number")

	p := New(root, nil)
	require.True(t, p.GPUAvailable())
	assert.Equal(t, 0.0, p.Sample().GPUUsedMB)
}

func TestResidentMemoryPositive(t *testing.T) {
	if _, err := os.Stat("/proc/self/status"); err != nil {
		t.Skip("no /proc on this platform")
	}
	p := New(t.TempDir(), nil)
	assert.Greater(t, p.Sample().ResidentMB, 0.0)
}
