package featrack

import (
	"image"

	"github.com/pkg/errors"
)

// ErrInvalidFrameSize is returned when a pixel buffer does not match the
// configured analysis resolution. It is the only precondition failure of the
// engine; everything else is modeled as a data decision (dropped feature,
// missing blob, deactivated trajectory).
var ErrInvalidFrameSize = errors.New("invalid frame size")

// GrayFrame is a single-channel luma image of fixed dimensions.
type GrayFrame struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewGrayFrame allocates a zeroed grayscale frame.
func NewGrayFrame(width, height int) *GrayFrame {
	return &GrayFrame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At returns the luma value at (x, y). No bounds check: callers guard.
func (g *GrayFrame) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

// Set writes the luma value at (x, y). No bounds check: callers guard.
func (g *GrayFrame) Set(x, y int, v uint8) {
	g.Pix[y*g.Width+x] = v
}

// ToGray projects an interleaved 4-channel (RGBA) buffer onto a single luma
// channel using the Rec.601 weights 0.299 R + 0.587 G + 0.114 B, clamped to
// [0, 255]. Pure and deterministic. The buffer length must be exactly
// width*height*4 or ErrInvalidFrameSize is returned.
func ToGray(pix []uint8, width, height int) (*GrayFrame, error) {
	want := width * height * 4
	if len(pix) != want {
		return nil, errors.Wrapf(ErrInvalidFrameSize, "got %d bytes, want %d (%dx%dx4)", len(pix), want, width, height)
	}
	gray := NewGrayFrame(width, height)
	for i, j := 0, 0; i < want; i, j = i+4, j+1 {
		luma := 0.299*float64(pix[i]) + 0.587*float64(pix[i+1]) + 0.114*float64(pix[i+2])
		if luma > 255.0 {
			luma = 255.0
		}
		gray.Pix[j] = uint8(luma)
	}
	return gray, nil
}

// GrayFromImage converts a decoded image into a grayscale frame using the same
// luma weights as ToGray. Convenience for callers holding an image.Image
// instead of a raw buffer.
func GrayFromImage(img image.Image) *GrayFrame {
	bounds := img.Bounds()
	gray := NewGrayFrame(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			luma := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			if luma > 255.0 {
				luma = 255.0
			}
			gray.Set(x-bounds.Min.X, y-bounds.Min.Y, uint8(luma))
		}
	}
	return gray
}
