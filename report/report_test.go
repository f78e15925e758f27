package report

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestMatchPairs(t *testing.T) {
	origDir := t.TempDir()
	procDir := t.TempDir()

	touch(t, origDir, "a.jpg", []byte("a"))
	touch(t, origDir, "b.png", []byte("b"))
	touch(t, origDir, "c.jpg", []byte("c"))
	touch(t, procDir, "a.png", []byte("a2"))
	touch(t, procDir, "b.png", []byte("b2"))
	touch(t, procDir, "d.png", []byte("d2"))

	pairs, err := MatchPairs(origDir, procDir)
	require.NoError(t, err)

	var stems []string
	for _, p := range pairs {
		stems = append(stems, p.Stem)
	}
	assert.Equal(t, []string{"a", "b"}, stems)
}

func TestMatchPairsIgnoresNonPNGProcessed(t *testing.T) {
	origDir := t.TempDir()
	procDir := t.TempDir()

	touch(t, origDir, "a.jpg", []byte("a"))
	touch(t, procDir, "a.jpg", []byte("a2")) // processed side must be PNG

	_, err := MatchPairs(origDir, procDir)
	assert.ErrorIs(t, err, ErrNoPairs)
}

func TestMatchPairsEmptyIntersection(t *testing.T) {
	origDir := t.TempDir()
	procDir := t.TempDir()
	touch(t, origDir, "a.jpg", []byte("a"))
	touch(t, procDir, "b.png", []byte("b"))

	_, err := MatchPairs(origDir, procDir)
	assert.ErrorIs(t, err, ErrNoPairs)
}

func TestDataURIRoundTrip(t *testing.T) {
	dir := t.TempDir()
	content := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01, 0xff}
	path := touch(t, dir, "img.png", content)

	uri, err := DataURI(path, "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, content, decoded)
}

func TestDataURIForcedMIME(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "img.weird", []byte("x"))

	uri, err := DataURI(path, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestGenerate(t *testing.T) {
	origDir := t.TempDir()
	procDir := t.TempDir()
	touch(t, origDir, "a.jpg", []byte("orig-a"))
	touch(t, origDir, "b.jpg", []byte("orig-b"))
	touch(t, procDir, "a.png", []byte("proc-a"))
	touch(t, procDir, "b.png", []byte("proc-b"))

	outPath := filepath.Join(t.TempDir(), "report.html")
	count, err := Generate(origDir, procDir, outPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	html, err := os.ReadFile(outPath)
	require.NoError(t, err)
	doc := string(html)

	assert.Equal(t, 2, strings.Count(doc, `<div class="pair">`))
	assert.Contains(t, doc, "a.jpg")
	assert.Contains(t, doc, "b.png")
	assert.Contains(t, doc, "data:image/jpeg;base64,")
	assert.Contains(t, doc, "data:image/png;base64,")
	// Self-contained: no external references.
	assert.NotContains(t, doc, "http://")
	assert.NotContains(t, doc, "https://")
}

func TestGenerateSkipsUnreadablePair(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are ignored for root")
	}

	origDir := t.TempDir()
	procDir := t.TempDir()
	touch(t, origDir, "a.jpg", []byte("orig-a"))
	touch(t, origDir, "b.jpg", []byte("orig-b"))
	touch(t, procDir, "a.png", []byte("proc-a"))
	unreadable := touch(t, procDir, "b.png", []byte("proc-b"))
	require.NoError(t, os.Chmod(unreadable, 0o000))

	outPath := filepath.Join(t.TempDir(), "report.html")
	count, err := Generate(origDir, procDir, outPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	html, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(html), `<div class="pair">`))
}

func TestGenerateNoPairsWritesNothing(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "report.html")
	_, err := Generate(t.TempDir(), t.TempDir(), outPath, nil)

	assert.ErrorIs(t, err, ErrNoPairs)
	assert.NoFileExists(t, outPath)
}
