// Command rembg-server exposes background removal as an HTTP API:
// POST /api/remove takes a multipart image and responds with the
// background-removed PNG.
package main

import (
	"bytes"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/naumvv/RemBG/rembg"

	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func main() {
	addr := os.Getenv("REMBG_ADDR")
	if addr == "" {
		addr = ":8188"
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// With REMBG_ENDPOINT set the server proxies to a BiRefNet backend;
	// without it the passthrough remover serves as a wiring check.
	var remover rembg.Remover = rembg.NewDefaultRemBG()
	if endpoint := os.Getenv("REMBG_ENDPOINT"); endpoint != "" {
		remover = rembg.NewBiRefNetRemBG(endpoint)
	}

	r := gin.Default()
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/remove", removeHandler(remover))

	logger.Info("listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func removeHandler(remover rembg.Remover) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing image field"})
			return
		}

		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer func() {
			_ = f.Close()
		}()

		img, _, err := image.Decode(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "undecodable image"})
			return
		}

		removed, err := remover.Remove(c.Request.Context(), img)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, removed); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	}
}
