package commandstructure

import (
	"testing"
)

func TestNewCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()
	if registry == nil {
		t.Fatal("Expected non-nil registry")
	}
	if registry.factories == nil {
		t.Fatal("Expected non-nil factories map")
	}
}

func TestCommandRegistry_Register(t *testing.T) {
	registry := NewCommandRegistry()
	factory := func(params map[string]any) (Command, error) {
		return newMockCommand("TestCommand"), nil
	}

	// Test successful registration
	if err := registry.Register("TestCommand", factory); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test duplicate registration
	if err := registry.Register("TestCommand", factory); err == nil {
		t.Error("Expected error for duplicate registration")
	}

	// Test empty name
	if err := registry.Register("", factory); err == nil {
		t.Error("Expected error for empty name")
	}

	// Test nil factory
	if err := registry.Register("NilFactory", nil); err == nil {
		t.Error("Expected error for nil factory")
	}
}

func TestCommandRegistry_Create(t *testing.T) {
	registry := NewCommandRegistry()
	err := registry.Register("TestCommand", func(params map[string]any) (Command, error) {
		return newMockCommand(GetStringParam(params, "name", "TestCommand")), nil
	})
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	command, err := registry.Create("TestCommand", map[string]any{"name": "Renamed"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if command.Name() != "Renamed" {
		t.Errorf("Expected name 'Renamed', got '%s'", command.Name())
	}

	if _, err := registry.Create("Missing", nil); err == nil {
		t.Error("Expected error for unregistered command")
	}
}

func TestCommandRegistry_GetRegisteredNames(t *testing.T) {
	registry := NewCommandRegistry()
	for _, name := range []string{"b", "a", "c"} {
		if err := registry.Register(name, func(map[string]any) (Command, error) { return newMockCommand(name), nil }); err != nil {
			t.Fatalf("Failed to register %s: %v", name, err)
		}
	}

	names := registry.GetRegisteredNames()
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("Expected sorted names [a b c], got %v", names)
	}
}
