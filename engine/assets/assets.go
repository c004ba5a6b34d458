// Package assets holds image file helpers: loading pictures into the
// tightly packed RGBA layout GL uploads want, and saving stage snapshots
// back out.
package assets

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// LoadRGBA reads an image file and returns its size plus tightly packed
// RGBA8 pixels, row-major with a top-left origin. The format is inferred
// from the file contents.
func LoadRGBA(path string) (w, h int, rgba []byte, err error) {
	img, err := imaging.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("load %q: %w", path, err)
	}
	m := toRGBA(img)
	w, h = m.Bounds().Dx(), m.Bounds().Dy()

	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], m.Pix[y*m.Stride:y*m.Stride+w*4])
	}
	return w, h, out, nil
}

// Save writes img to path; the encoder is picked from the extension
// (.png, .jpg, ...).
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}
	return nil
}

func toRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
