package commands

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/jo-hoe/fundusref/internal/backend/commandstructure"
	"github.com/jo-hoe/fundusref/internal/backend/raster"
)

// PlaceholderCupToDiscRatio is reported for every image; no cup segmentation exists.
const PlaceholderCupToDiscRatio = 0.4

// OpticDiscParameters is the measurement block of the optic disc analysis.
// Areas are pixel counts in the preprocessed buffer and are nil when no
// candidate disc region was found.
type OpticDiscParameters struct {
	DiscArea       *int     `json:"discArea"`
	CupToDiscRatio float64  `json:"cupToDiscRatio"`
	RimArea        *float64 `json:"rimArea"`
}

// OpticDiscParams represents typed parameters for the optic disc analyzer
type OpticDiscParams struct {
	SegmentationLevel int
}

// NewOpticDiscParamsFromMap creates OpticDiscParams from a generic map.
// The level defaults to the drusen threshold.
func NewOpticDiscParamsFromMap(params map[string]any) (*OpticDiscParams, error) {
	if err := commandstructure.ValidateIntParams(params, []string{"level"}); err != nil {
		return nil, err
	}
	level := commandstructure.GetIntParam(params, "level", DrusenLevel)
	if level < 0 || level > 255 {
		return nil, fmt.Errorf("level must be between 0 and 255, got %d", level)
	}
	return &OpticDiscParams{SegmentationLevel: level}, nil
}

// OpticDiscAnalyzer reports placeholder optic disc parameters
type OpticDiscAnalyzer struct {
	params *OpticDiscParams
}

// NewOpticDiscAnalyzer creates an analyzer from configuration parameters
func NewOpticDiscAnalyzer(params map[string]any) (*OpticDiscAnalyzer, error) {
	typedParams, err := NewOpticDiscParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	return &OpticDiscAnalyzer{params: typedParams}, nil
}

// Analyze segments bright regions, takes the largest 8-connected region as the
// disc and derives the rim area from the fixed cup-to-disc ratio.
func (a *OpticDiscAnalyzer) Analyze(buf *raster.Buffer) (*OpticDiscParameters, error) {
	if buf == nil {
		return nil, fmt.Errorf("no image buffer to analyze")
	}
	mask := binaryThreshold(buf.Gray(), uint8(a.params.SegmentationLevel))
	area := largestRegionArea(mask)

	result := &OpticDiscParameters{CupToDiscRatio: PlaceholderCupToDiscRatio}
	if area > 0 {
		rim := float64(area) * (1 - PlaceholderCupToDiscRatio)
		result.DiscArea = &area
		result.RimArea = &rim
	}

	slog.Debug("OpticDiscAnalyzer: analysis complete",
		"segmentation_level", a.params.SegmentationLevel,
		"disc_area", area,
		"cup_to_disc_ratio", result.CupToDiscRatio)
	return result, nil
}

// largestRegionArea labels the 8-connected foreground regions of mask and
// returns the pixel count of the largest one.
func largestRegionArea(mask *image.Gray) int {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	visited := make([]bool, w*h)
	stack := make([]int, 0, 256)
	largest := 0

	for start := 0; start < w*h; start++ {
		if visited[start] || mask.Pix[(start/w)*mask.Stride+start%w] == 0 {
			continue
		}
		visited[start] = true
		stack = append(stack[:0], start)
		area := 0
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			area++
			x, y := i%w, i/w
			for ny := max(y-1, 0); ny <= min(y+1, h-1); ny++ {
				for nx := max(x-1, 0); nx <= min(x+1, w-1); nx++ {
					j := ny*w + nx
					if !visited[j] && mask.Pix[ny*mask.Stride+nx] != 0 {
						visited[j] = true
						stack = append(stack, j)
					}
				}
			}
		}
		largest = max(largest, area)
	}
	return largest
}
