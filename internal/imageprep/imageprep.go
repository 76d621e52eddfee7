// Package imageprep turns packaging photos into high-contrast images that
// OCR engines read more reliably.
package imageprep

import (
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
)

const (
	targetSide   = 1600 // smaller photos are upscaled to this longer side
	denoiseSigma = 0.8
	contrastGain = 1.25
	contrastBias = 8
	localSigma   = 5.0 // roughly a 31px neighbourhood
	thresholdC   = 10
)

// Decode reads an uploaded image and applies its EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

// Binarize upscales, denoises and stretches contrast, then applies an
// adaptive threshold: a pixel is white when it is no darker than its local
// gaussian mean minus thresholdC.
func Binarize(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	src := imaging.Clone(img)
	if long := max(w, h); long < targetSide {
		if w >= h {
			src = imaging.Resize(src, targetSide, 0, imaging.CatmullRom)
		} else {
			src = imaging.Resize(src, 0, targetSide, imaging.CatmullRom)
		}
	}

	gray := imaging.Grayscale(src)
	gray = imaging.Blur(gray, denoiseSigma)
	gray = imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		v := stretch(c.R)
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
	local := imaging.Blur(gray, localSigma)

	out := image.NewNRGBA(gray.Bounds())
	for i := 0; i+3 < len(gray.Pix); i += 4 {
		var v uint8
		if int(gray.Pix[i]) > int(local.Pix[i])-thresholdC {
			v = 255
		}
		out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = v, v, v, 255
	}
	return out
}

// Variants returns the binarized image and its negative; light-on-dark labels
// are only readable in the second one.
func Variants(img image.Image) []image.Image {
	a := Binarize(img)
	return []image.Image{a, imaging.Invert(a)}
}

func stretch(v uint8) uint8 {
	f := contrastGain*float64(v) + contrastBias
	switch {
	case f < 0:
		return 0
	case f > 255:
		return 255
	default:
		return uint8(f)
	}
}
