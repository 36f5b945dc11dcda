package commands

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/jo-hoe/fundusref/internal/backend/commandstructure"
	"github.com/jo-hoe/fundusref/internal/backend/raster"
)

// BlurThresholdParams represents typed parameters for blur threshold command
type BlurThresholdParams struct {
	KernelSize int     // odd Gaussian kernel edge length
	Sigma      float64 // 0 derives sigma from KernelSize
	Level      int
}

// NewBlurThresholdParamsFromMap creates BlurThresholdParams from a generic map
func NewBlurThresholdParamsFromMap(params map[string]any) (*BlurThresholdParams, error) {
	if err := commandstructure.ValidateRequiredParams(params, []string{"level"}); err != nil {
		return nil, err
	}
	if err := commandstructure.ValidateIntParams(params, []string{"kernel", "level"}); err != nil {
		return nil, err
	}

	kernel := commandstructure.GetIntParam(params, "kernel", 5)
	if kernel <= 0 || kernel%2 == 0 {
		return nil, fmt.Errorf("kernel must be a positive odd number, got %d", kernel)
	}
	sigma := commandstructure.GetFloatParam(params, "sigma", 0)
	if sigma < 0 {
		return nil, fmt.Errorf("sigma must not be negative, got %f", sigma)
	}
	level := commandstructure.GetIntParam(params, "level", -1)
	if level < 0 || level > 255 {
		return nil, fmt.Errorf("level must be between 0 and 255, got %v", params["level"])
	}

	return &BlurThresholdParams{
		KernelSize: kernel,
		Sigma:      sigma,
		Level:      level,
	}, nil
}

// BlurThresholdCommand blurs the grayscale image and applies a high binary threshold
type BlurThresholdCommand struct {
	name   string
	params *BlurThresholdParams
}

// NewBlurThresholdCommand creates a new blur threshold command from configuration parameters
func NewBlurThresholdCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewBlurThresholdParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &BlurThresholdCommand{
		name:   commandstructure.GetStringParam(params, "name", "BlurThresholdCommand"),
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *BlurThresholdCommand) Name() string {
	return c.name
}

// Execute blurs then thresholds the grayscale image
func (c *BlurThresholdCommand) Execute(buf *raster.Buffer) (*image.Gray, error) {
	slog.Debug("BlurThresholdCommand: blurring and thresholding",
		"command", c.name,
		"kernel", c.params.KernelSize,
		"sigma", c.params.Sigma,
		"level", c.params.Level)

	blurred := gaussianBlur(buf.Gray(), c.params.KernelSize, c.params.Sigma)
	return binaryThreshold(blurred, uint8(c.params.Level)), nil
}

func init() {
	// Register the command in the default registry
	if err := commandstructure.DefaultRegistry.Register("BlurThresholdCommand", NewBlurThresholdCommand); err != nil {
		panic(fmt.Sprintf("failed to register BlurThresholdCommand: %v", err))
	}
}
