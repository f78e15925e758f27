// Command compare pairs original and background-removed images by
// filename stem and writes a single self-contained HTML report.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/naumvv/RemBG/report"
	"github.com/naumvv/RemBG/util"
)

func main() {
	defer util.Trace("report generation")()

	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: compare <originals_dir> <processed_dir> <out.html>")
		os.Exit(2)
	}
	originalsDir, processedDir, outPath := os.Args[1], os.Args[2], os.Args[3]

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	count, err := report.Generate(originalsDir, processedDir, outPath, logger)
	if err != nil {
		if errors.Is(err, report.ErrNoPairs) {
			fmt.Fprintln(os.Stderr, "no matching filename stems between the two directories")
		} else {
			logger.Error("report generation failed", "error", err)
		}
		os.Exit(1)
	}

	fmt.Printf("done: %s (pairs: %d)\n", outPath, count)
}
