package commands

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/jo-hoe/fundusref/internal/backend/raster"
	"golang.org/x/image/draw"
)

// TargetSize is the edge length of the square buffer every detector runs on.
const TargetSize = 512

// Preprocessor turns an arbitrary-resolution image into a fixed-size normalized buffer.
type Preprocessor struct {
	size      int
	maxPixels int
}

// NewPreprocessor creates a preprocessor producing size x size buffers
func NewPreprocessor(size, maxPixels int) (*Preprocessor, error) {
	if size <= 0 {
		return nil, fmt.Errorf("size must be positive, got %d", size)
	}
	return &Preprocessor{size: size, maxPixels: maxPixels}, nil
}

// NewDefaultPreprocessor creates the 512x512 preprocessor
func NewDefaultPreprocessor() *Preprocessor {
	return &Preprocessor{size: TargetSize, maxPixels: DefaultMaxDecodePixels}
}

// Decode decodes raw upload bytes, rejecting images above the pixel limit
func (p *Preprocessor) Decode(data []byte) (image.Image, string, error) {
	return DecodeImage(data, p.maxPixels)
}

// Preprocess resizes img to size x size with bilinear interpolation, ignoring
// the aspect ratio, and normalizes every channel to [0,1].
func (p *Preprocessor) Preprocess(img image.Image) *raster.Buffer {
	dst := image.NewRGBA(image.Rect(0, 0, p.size, p.size))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	slog.Debug("Preprocessor: resized image",
		"original_width", img.Bounds().Dx(),
		"original_height", img.Bounds().Dy(),
		"target_size", p.size)

	buf := raster.NewBuffer(p.size, p.size)
	parallelFor(p.size, func(y int) {
		src := dst.Pix[y*dst.Stride : y*dst.Stride+p.size*4]
		out := buf.Pix[y*p.size*3 : (y+1)*p.size*3]
		for x := 0; x < p.size; x++ {
			out[x*3] = float32(src[x*4]) / 255
			out[x*3+1] = float32(src[x*4+1]) / 255
			out[x*3+2] = float32(src[x*4+2]) / 255
		}
	})
	return buf
}

// Prepared is a decoded upload together with its detector buffer.
type Prepared struct {
	Image  image.Image
	Format string
	Buffer *raster.Buffer
}

// DecodeAndPreprocess decodes data and preprocesses the result
func (p *Preprocessor) DecodeAndPreprocess(data []byte) (*Prepared, error) {
	img, format, err := p.Decode(data)
	if err != nil {
		return nil, err
	}
	return &Prepared{Image: img, Format: format, Buffer: p.Preprocess(img)}, nil
}
