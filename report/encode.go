package report

import (
	"encoding/base64"
	"mime"
	"os"
	"path/filepath"
)

// DataURI reads the file and returns a data:<mime>;base64,<payload> URI.
// forceMIME overrides extension-based detection; processed images are
// always PNG regardless of what their name says.
func DataURI(path, forceMIME string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mimeType := forceMIME
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(path))
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
