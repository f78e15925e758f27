package report

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
)

type pairView struct {
	OriginalName  string
	ProcessedName string
	// template.URL keeps html/template from rejecting data: URIs.
	OriginalURI  template.URL
	ProcessedURI template.URL
}

type reportView struct {
	Pairs []pairView
	Count int
}

var reportTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Original vs background removed</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
  :root {
    --gap: 16px;
    --card-bg: #fff;
    --text: #111;
    --muted: #666;
    --border: #e5e5e5;
  }
  body {
    margin: 0 auto;
    padding: 24px;
    max-width: 1200px;
    font: 14px/1.45 system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif;
    color: var(--text);
    background: #fafafa;
  }
  h1 { margin: 0 0 6px; font-size: 22px; }
  .meta { color: var(--muted); margin-bottom: 20px; }
  .pair {
    display: grid;
    grid-template-columns: 1fr;
    gap: var(--gap);
    margin-bottom: var(--gap);
  }
  @media (min-width: 900px) {
    .pair { grid-template-columns: 1fr 1fr; }
  }
  .card {
    background: var(--card-bg);
    border: 1px solid var(--border);
    border-radius: 12px;
    padding: 12px;
    box-shadow: 0 1px 2px rgba(0,0,0,.04);
  }
  .checker {
    background:
      conic-gradient(#ddd 25%, transparent 0 50%, #ddd 0 75%, transparent 0)
      0 0/20px 20px, var(--card-bg);
  }
  .label { font-weight: 600; margin-bottom: 8px; }
  .filename {
    margin-top: 8px;
    color: var(--muted);
    font-size: 12px;
    word-break: break-all;
  }
  img {
    display: block;
    max-width: 100%;
    height: auto;
    border-radius: 8px;
    background: #fff;
  }
  .note { margin-top: 8px; color: var(--muted); font-size: 12px; }
</style>
</head>
<body>
  <h1>Original vs background removed</h1>
  <div class="meta">Inline images (data URLs). Pairs: {{.Count}}</div>
{{range .Pairs}}
  <div class="pair">
    <div class="card">
      <div class="label">Original</div>
      <img loading="lazy" src="{{.OriginalURI}}" alt="{{.OriginalName}}">
      <div class="filename">{{.OriginalName}}</div>
    </div>
    <div class="card checker">
      <div class="label">No background (PNG)</div>
      <img loading="lazy" src="{{.ProcessedURI}}" alt="{{.ProcessedName}}">
      <div class="filename">{{.ProcessedName}}</div>
    </div>
  </div>
{{end}}
  <p class="note">The checkerboard on the right exposes PNG transparency.</p>
</body>
</html>
`))

// Generate matches the two directories, embeds every readable pair and
// writes one self-contained HTML document to outPath. It returns the
// number of pairs rendered. An empty intersection is a terminal error and
// no file is written; a single unreadable pair is only skipped.
func Generate(originalsDir, processedDir, outPath string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pairs, err := MatchPairs(originalsDir, processedDir)
	if err != nil {
		return 0, err
	}

	view := reportView{}
	for _, p := range pairs {
		origURI, err := DataURI(p.OriginalPath, "")
		if err != nil {
			logger.Warn("skipping pair", "stem", p.Stem, "error", err)
			continue
		}
		procURI, err := DataURI(p.ProcessedPath, "image/png")
		if err != nil {
			logger.Warn("skipping pair", "stem", p.Stem, "error", err)
			continue
		}

		view.Pairs = append(view.Pairs, pairView{
			OriginalName:  filepath.Base(p.OriginalPath),
			ProcessedName: filepath.Base(p.ProcessedPath),
			OriginalURI:   template.URL(origURI),
			ProcessedURI:  template.URL(procURI),
		})
	}
	view.Count = len(view.Pairs)

	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create report: %w", err)
	}
	if err := reportTemplate.Execute(f, view); err != nil {
		_ = f.Close()
		_ = os.Remove(outPath)
		return 0, fmt.Errorf("render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close report: %w", err)
	}

	return view.Count, nil
}
