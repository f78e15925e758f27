package batch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Supported input extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Discover lists the image files directly under inputDir, sorted by name
// so processing order and logs are reproducible. Subdirectories and files
// with other extensions are ignored.
func Discover(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if imageExtensions[ext] {
			files = append(files, filepath.Join(inputDir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
