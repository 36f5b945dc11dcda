package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
)

// Buffer is a normalized RGB image. Pix holds Width*Height*3 samples in
// row-major, channel-interleaved order, each in [0,1].
type Buffer struct {
	Width  int
	Height int
	Pix    []float32
}

// NewBuffer allocates a zeroed buffer of the given dimensions.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*3),
	}
}

// FromImage converts img to a normalized buffer of the same dimensions.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := NewBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*buf.Width + x) * 3
			buf.Pix[i] = float32(r) / 0xffff
			buf.Pix[i+1] = float32(g) / 0xffff
			buf.Pix[i+2] = float32(b) / 0xffff
		}
	}
	return buf
}

// RGB returns the samples of the pixel at (x, y).
func (b *Buffer) RGB(x, y int) (float32, float32, float32) {
	i := (y*b.Width + x) * 3
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// GrayAt returns the 8-bit luma of the pixel at (x, y) using BT.601 weights.
func (b *Buffer) GrayAt(x, y int) uint8 {
	r, g, bl := b.RGB(x, y)
	return to8(0.299*r + 0.587*g + 0.114*bl)
}

// Gray returns the 8-bit luma plane of the buffer.
func (b *Buffer) Gray() *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+b.Width]
		for x := range row {
			row[x] = b.GrayAt(x, y)
		}
	}
	return gray
}

// Image converts the buffer back to an 8-bit RGBA image.
func (b *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl := b.RGB(x, y)
			img.SetRGBA(x, y, color.RGBA{R: to8(r), G: to8(g), B: to8(bl), A: 255})
		}
	}
	return img
}

// InRange reports whether every sample lies in [0,1].
func (b *Buffer) InRange() bool {
	for _, v := range b.Pix {
		if v < 0 || v > 1 || math.IsNaN(float64(v)) {
			return false
		}
	}
	return true
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG image: %w", err)
	}
	return buf.Bytes(), nil
}

func to8(v float32) uint8 {
	s := math.Round(float64(v) * 255)
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return uint8(s)
}
