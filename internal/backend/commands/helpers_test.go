package commands

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/jo-hoe/fundusref/internal/backend/raster"
)

// createTestImage creates a color gradient test image
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / max(width-1, 1)),
				G: uint8(y * 255 / max(height-1, 1)),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

func encodeTestImage(t *testing.T, img image.Image, format string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		t.Fatalf("unsupported test format %s", format)
	}
	if err != nil {
		t.Fatalf("failed to encode %s test image: %v", format, err)
	}
	return buf.Bytes()
}

// uniformBuffer returns a buffer with every sample set to v
func uniformBuffer(size int, v float32) *raster.Buffer {
	buf := raster.NewBuffer(size, size)
	for i := range buf.Pix {
		buf.Pix[i] = v
	}
	return buf
}

// setGray paints a square of gray level v into buf
func setGray(buf *raster.Buffer, x0, y0, side int, v float32) {
	for y := y0; y < y0+side; y++ {
		for x := x0; x < x0+side; x++ {
			i := (y*buf.Width + x) * 3
			buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2] = v, v, v
		}
	}
}

func countForeground(mask *image.Gray) int {
	n := 0
	for _, v := range mask.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
