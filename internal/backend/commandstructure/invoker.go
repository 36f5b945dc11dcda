package commandstructure

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/jo-hoe/fundusref/internal/backend/raster"
)

// Result is the mask produced by one command.
type Result struct {
	Name string
	Mask *image.Gray
}

// CommandInvoker runs a list of commands independently against the same buffer.
// Commands do not share state; each sees the unmodified input.
type CommandInvoker struct {
	commands []Command
}

// NewCommandInvoker creates an invoker for the given commands
func NewCommandInvoker(commands []Command) *CommandInvoker {
	return &CommandInvoker{commands: commands}
}

// Execute runs every command in order. The first failure aborts the run and
// no partial results are returned.
func (i *CommandInvoker) Execute(buf *raster.Buffer) ([]Result, error) {
	if buf == nil {
		return nil, fmt.Errorf("no image buffer to process")
	}
	results := make([]Result, 0, len(i.commands))
	for _, command := range i.commands {
		slog.Debug("CommandInvoker: executing command", "command", command.Name(),
			"width", buf.Width, "height", buf.Height)
		mask, err := command.Execute(buf)
		if err != nil {
			slog.Error("CommandInvoker: command failed", "command", command.Name(), "error", err)
			return nil, fmt.Errorf("command %s failed: %w", command.Name(), err)
		}
		results = append(results, Result{Name: command.Name(), Mask: mask})
	}
	return results, nil
}
