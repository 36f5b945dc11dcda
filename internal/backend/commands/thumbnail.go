package commands

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/jo-hoe/fundusref/internal/backend/raster"
	"golang.org/x/image/draw"
)

// Thumbnail scales img to the given width while preserving its aspect ratio
// and returns PNG bytes. Images narrower than width keep their size.
func Thumbnail(img image.Image, width int) ([]byte, error) {
	if width <= 0 {
		return nil, fmt.Errorf("width must be positive, got %d", width)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()
	if originalWidth == 0 || originalHeight == 0 {
		return nil, fmt.Errorf("cannot scale empty image")
	}

	targetWidth := originalWidth
	targetHeight := originalHeight
	if originalWidth > width {
		targetWidth = width
		targetHeight = max(1, originalHeight*width/originalWidth)
	}

	slog.Debug("Thumbnail: scaling image",
		"original_width", originalWidth,
		"original_height", originalHeight,
		"target_width", targetWidth,
		"target_height", targetHeight)

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return raster.EncodePNG(dst)
}
