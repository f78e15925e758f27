// Package rembg removes image backgrounds through an external inference
// server. The result always carries an alpha channel.
package rembg

import (
	"context"
	"image"
)

type Remover interface {
	Remove(ctx context.Context, img image.Image) (image.Image, error)
}

// DefaultRemBG passes the image through unchanged, only guaranteeing an
// alpha channel. It stands in when no inference endpoint is configured.
type DefaultRemBG struct{}

func NewDefaultRemBG() *DefaultRemBG {
	return &DefaultRemBG{}
}

func (d *DefaultRemBG) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	return toNRGBA(img), nil
}
