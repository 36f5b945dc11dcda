package commands

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/jo-hoe/fundusref/internal/backend/commandstructure"
	"github.com/jo-hoe/fundusref/internal/backend/raster"
)

// CannyParams represents typed parameters for canny command
type CannyParams struct {
	Low  float64
	High float64
}

// NewCannyParamsFromMap creates CannyParams from a generic map
func NewCannyParamsFromMap(params map[string]any) (*CannyParams, error) {
	if err := commandstructure.ValidateRequiredParams(params, []string{"low", "high"}); err != nil {
		return nil, err
	}

	low := commandstructure.GetFloatParam(params, "low", -1)
	high := commandstructure.GetFloatParam(params, "high", -1)
	if low < 0 {
		return nil, fmt.Errorf("low must not be negative, got %v", params["low"])
	}
	if high < low {
		return nil, fmt.Errorf("high (%v) must not be below low (%v)", params["high"], params["low"])
	}

	return &CannyParams{Low: low, High: high}, nil
}

// CannyCommand runs Canny edge detection with fixed hysteresis thresholds
type CannyCommand struct {
	name   string
	params *CannyParams
}

// NewCannyCommand creates a new canny command from configuration parameters
func NewCannyCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewCannyParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &CannyCommand{
		name:   commandstructure.GetStringParam(params, "name", "CannyCommand"),
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *CannyCommand) Name() string {
	return c.name
}

// Execute returns the edge map of the grayscale image
func (c *CannyCommand) Execute(buf *raster.Buffer) (*image.Gray, error) {
	slog.Debug("CannyCommand: detecting edges",
		"command", c.name,
		"low", c.params.Low,
		"high", c.params.High)
	return cannyEdges(buf.Gray(), c.params.Low, c.params.High), nil
}

func init() {
	// Register the command in the default registry
	if err := commandstructure.DefaultRegistry.Register("CannyCommand", NewCannyCommand); err != nil {
		panic(fmt.Sprintf("failed to register CannyCommand: %v", err))
	}
}
