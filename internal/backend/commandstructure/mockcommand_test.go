package commandstructure

import (
	"image"

	"github.com/jo-hoe/fundusref/internal/backend/raster"
)

// mockCommand is a simple mock implementation of the Command interface for testing
type mockCommand struct {
	name        string
	executeFunc func(*raster.Buffer) (*image.Gray, error)
}

func (m *mockCommand) Name() string {
	return m.name
}

func (m *mockCommand) Execute(buf *raster.Buffer) (*image.Gray, error) {
	return m.executeFunc(buf)
}

// newMockCommand creates a mock command that returns the buffer's luma plane
func newMockCommand(name string) *mockCommand {
	return &mockCommand{
		name: name,
		executeFunc: func(buf *raster.Buffer) (*image.Gray, error) {
			return buf.Gray(), nil
		},
	}
}

// newMockCommandWithError creates a mock command that returns an error
func newMockCommandWithError(name string, err error) *mockCommand {
	return &mockCommand{
		name: name,
		executeFunc: func(*raster.Buffer) (*image.Gray, error) {
			return nil, err
		},
	}
}
