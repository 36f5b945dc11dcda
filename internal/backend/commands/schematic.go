package commands

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/jo-hoe/fundusref/internal/backend/raster"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const schematicTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 100 100">
<rect x="0" y="0" width="100" height="100" fill="#1b1b1b"/>
<circle cx="50" cy="50" r="40" fill="#e8a060" stroke="#ffffff" stroke-width="1"/>
<circle cx="50" cy="50" r="%.3f" fill="#fff3c4"/>
</svg>`

// OpticDiscSchematic draws a disc with a concentric cup whose diameter is
// cupToDiscRatio times the disc diameter, and returns it as PNG bytes.
func OpticDiscSchematic(size int, cupToDiscRatio float64) ([]byte, error) {
	if cupToDiscRatio < 0 || cupToDiscRatio > 1 {
		return nil, fmt.Errorf("cup-to-disc ratio must be between 0 and 1, got %f", cupToDiscRatio)
	}
	svg := fmt.Sprintf(schematicTemplate, size, size, 40*cupToDiscRatio)
	return renderSVGToPNG([]byte(svg), size, size)
}

// renderSVGToPNG renders an SVG byte slice into a PNG with the given target dimensions.
func renderSVGToPNG(svgData []byte, targetW, targetH int) ([]byte, error) {
	if targetW <= 0 || targetH <= 0 {
		return nil, fmt.Errorf("invalid target dimensions for SVG rendering: %dx%d", targetW, targetH)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	icon.SetTarget(0, 0, float64(targetW), float64(targetH))

	dst := createTargetCanvas(targetW, targetH, color.RGBA{255, 255, 255, 255})

	scanner := rasterx.NewScannerGV(targetW, targetH, dst, dst.Bounds())
	dasher := rasterx.NewDasher(targetW, targetH, scanner)
	icon.Draw(dasher, 1.0)

	return raster.EncodePNG(dst)
}

func createTargetCanvas(w, h int, background color.RGBA) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)
	return dst
}
