package commands

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"

	"github.com/jo-hoe/fundusref/internal/common"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxDecodePixels bounds the decoded canvas to guard against decompression bombs.
const DefaultMaxDecodePixels = 64 * 1024 * 1024

// SupportedFormats lists the raster encodings accepted for upload, as reported by image.Decode.
var SupportedFormats = []string{"png", "jpeg", "gif", "bmp", "tiff", "webp"}

// hasCorrectPngSignature checks whether the provided data begins with a valid PNG signature
func hasCorrectPngSignature(data []byte) bool {
	// PNG signature: 0x89 'P' 'N' 'G' 0x0D 0x0A 0x1A 0x0A
	if len(data) < 8 {
		return false
	}
	expected := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	return bytes.Equal(data[:8], expected)
}

// isSVGData performs a lightweight detection of SVG content from raw bytes.
func isSVGData(data []byte) bool {
	n := len(data)
	if n > 4096 {
		n = 4096
	}
	header := bytes.ToLower(bytes.TrimSpace(data[:n]))
	return bytes.Contains(header, []byte("<svg")) ||
		bytes.Contains(header, []byte("http://www.w3.org/2000/svg"))
}

func isSupportedFormat(format string) bool {
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// DecodeImage decodes an uploaded raster image. Every failure wraps common.ErrImageDecode.
func DecodeImage(data []byte, maxPixels int) (image.Image, string, error) {
	slog.Debug("DecodeImage: start",
		"input_size_bytes", len(data),
		"png_signature", hasCorrectPngSignature(data))

	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty upload", common.ErrImageDecode)
	}
	if isSVGData(data) {
		return nil, "", fmt.Errorf("%w: vector images are not supported", common.ErrImageDecode)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		slog.Warn("DecodeImage: unrecognized image data", "error", err)
		return nil, "", fmt.Errorf("%w: %v", common.ErrImageDecode, err)
	}
	if !isSupportedFormat(format) {
		return nil, "", fmt.Errorf("%w: unsupported format %s", common.ErrImageDecode, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", fmt.Errorf("%w: empty image %dx%d", common.ErrImageDecode, cfg.Width, cfg.Height)
	}
	if maxPixels > 0 && cfg.Width*cfg.Height > maxPixels {
		return nil, "", fmt.Errorf("%w: image %dx%d exceeds %d pixels", common.ErrImageDecode, cfg.Width, cfg.Height, maxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		slog.Warn("DecodeImage: failed to decode image", "format", format, "error", err)
		return nil, "", fmt.Errorf("%w: %v", common.ErrImageDecode, err)
	}

	slog.Debug("DecodeImage: decoded raster image",
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())
	return img, format, nil
}
