package commandstructure

import (
	"image"

	"github.com/jo-hoe/fundusref/internal/backend/raster"
)

// Command defines the interface for all placeholder detection commands.
// Execute must not modify the buffer and must return a binary mask
// (0 or 255 per pixel) with the buffer's dimensions.
type Command interface {
	Name() string
	Execute(buf *raster.Buffer) (*image.Gray, error)
}

// CommandFactory is a function type that creates a command from configuration parameters
type CommandFactory func(params map[string]any) (Command, error)

// CommandConfig represents a command configuration with name and parameters
type CommandConfig struct {
	Name   string
	Params map[string]any
}
