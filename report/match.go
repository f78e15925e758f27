// Package report pairs original images with their background-removed
// counterparts by filename stem and renders a single self-contained HTML
// comparison document.
package report

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoPairs is returned when the two directories share no filename stem.
var ErrNoPairs = errors.New("no matching filename stems between directories")

// Extensions considered report material on the originals side. The
// processed side is always PNG.
var originalExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Pair links an original image with its processed counterpart.
type Pair struct {
	Stem          string
	OriginalPath  string
	ProcessedPath string
}

// MatchPairs intersects the stems of the two directories and returns the
// pairs sorted by stem. Files present on only one side are dropped; they
// are not report material.
func MatchPairs(originalsDir, processedDir string) ([]Pair, error) {
	originals, err := stemIndex(originalsDir, func(ext string) bool { return originalExtensions[ext] })
	if err != nil {
		return nil, err
	}
	processed, err := stemIndex(processedDir, func(ext string) bool { return ext == ".png" })
	if err != nil {
		return nil, err
	}

	var stems []string
	for s := range originals {
		if _, ok := processed[s]; ok {
			stems = append(stems, s)
		}
	}
	if len(stems) == 0 {
		return nil, ErrNoPairs
	}
	sort.Strings(stems)

	pairs := make([]Pair, 0, len(stems))
	for _, s := range stems {
		pairs = append(pairs, Pair{
			Stem:          s,
			OriginalPath:  originals[s],
			ProcessedPath: processed[s],
		})
	}
	return pairs, nil
}

func stemIndex(dir string, allowed func(ext string) bool) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	index := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !allowed(ext) {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		index[stem] = filepath.Join(dir, e.Name())
	}
	return index, nil
}
