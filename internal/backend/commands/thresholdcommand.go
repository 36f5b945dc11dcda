package commands

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/jo-hoe/fundusref/internal/backend/commandstructure"
	"github.com/jo-hoe/fundusref/internal/backend/raster"
)

// ThresholdParams represents typed parameters for threshold command
type ThresholdParams struct {
	Level int // grayscale samples strictly above Level become foreground
}

// NewThresholdParamsFromMap creates ThresholdParams from a generic map
func NewThresholdParamsFromMap(params map[string]any) (*ThresholdParams, error) {
	if err := commandstructure.ValidateRequiredParams(params, []string{"level"}); err != nil {
		return nil, err
	}
	if err := commandstructure.ValidateIntParams(params, []string{"level"}); err != nil {
		return nil, err
	}
	level := commandstructure.GetIntParam(params, "level", -1)
	if level < 0 || level > 255 {
		return nil, fmt.Errorf("level must be between 0 and 255, got %v", params["level"])
	}
	return &ThresholdParams{Level: level}, nil
}

// ThresholdCommand applies a fixed global binary threshold to the grayscale image
type ThresholdCommand struct {
	name   string
	params *ThresholdParams
}

// NewThresholdCommand creates a new threshold command from configuration parameters
func NewThresholdCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewThresholdParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &ThresholdCommand{
		name:   commandstructure.GetStringParam(params, "name", "ThresholdCommand"),
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *ThresholdCommand) Name() string {
	return c.name
}

// Execute converts the buffer to grayscale and thresholds it
func (c *ThresholdCommand) Execute(buf *raster.Buffer) (*image.Gray, error) {
	slog.Debug("ThresholdCommand: thresholding", "command", c.name, "level", c.params.Level)
	return binaryThreshold(buf.Gray(), uint8(c.params.Level)), nil
}

// GetParams returns the typed parameters
func (c *ThresholdCommand) GetParams() *ThresholdParams {
	return c.params
}

func init() {
	// Register the command in the default registry
	if err := commandstructure.DefaultRegistry.Register("ThresholdCommand", NewThresholdCommand); err != nil {
		panic(fmt.Sprintf("failed to register ThresholdCommand: %v", err))
	}
}
