package rembg

import (
	"image"
	"image/draw"

	"github.com/nfnt/resize"
)

// maxInputSize bounds the longest side of images sent to the inference
// server. BiRefNet works on a fixed internal resolution, so larger inputs
// only cost upload time.
const maxInputSize = 1024

func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

// resizeWithinMax downscales img so its longest side is at most maxSize;
// smaller images pass through untouched.
func resizeWithinMax(img *image.NRGBA, maxSize int) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	longest := max(w, h)

	if longest <= maxSize {
		return img
	}

	scale := float64(maxSize) / float64(longest)
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)

	resized := resize.Resize(uint(newW), uint(newH), img, resize.Lanczos3)
	return toNRGBA(resized)
}

// applyMatte copies the matte's luminance into img's alpha channel. The
// inference server returns the segmentation mask as a grayscale PNG of the
// same dimensions.
func applyMatte(img *image.NRGBA, matte image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	copy(out.Pix, img.Pix)

	mb := matte.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := y * out.Stride
		for x := 0; x < b.Dx(); x++ {
			var a uint8
			if x < mb.Dx() && y < mb.Dy() {
				r, g, bl, _ := matte.At(mb.Min.X+x, mb.Min.Y+y).RGBA()
				a = uint8((299*r + 587*g + 114*bl) / 1000 >> 8)
			}
			out.Pix[row+x*4+3] = a
		}
	}
	return out
}
