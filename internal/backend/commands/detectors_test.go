package commands

import (
	"bytes"
	"testing"

	"github.com/jo-hoe/fundusref/internal/backend/commandstructure"
)

func TestNewDefaultDetectorSet(t *testing.T) {
	set, err := NewDefaultDetectorSet()
	if err != nil {
		t.Fatalf("NewDefaultDetectorSet error: %v", err)
	}

	for _, def := range DefaultDetectors {
		command, err := set.Get(def.Name)
		if err != nil {
			t.Fatalf("Get(%s) error: %v", def.Name, err)
		}
		if command.Name() != def.Name {
			t.Errorf("Expected command name %s, got %s", def.Name, command.Name())
		}
	}
	if set.OpticDisc() == nil {
		t.Error("Expected optic disc analyzer")
	}
	if _, err := set.Get("retinal-detachment"); err == nil {
		t.Error("Expected error for unknown detector")
	}
}

func TestDetectors_Idempotent(t *testing.T) {
	set, err := NewDefaultDetectorSet()
	if err != nil {
		t.Fatalf("NewDefaultDetectorSet error: %v", err)
	}
	buf := NewDefaultPreprocessor().Preprocess(createTestImage(300, 200))
	before := append([]float32(nil), buf.Pix...)

	for _, def := range DefaultDetectors {
		t.Run(def.Name, func(t *testing.T) {
			command, err := set.Get(def.Name)
			if err != nil {
				t.Fatalf("Get error: %v", err)
			}
			first, err := command.Execute(buf)
			if err != nil {
				t.Fatalf("first Execute error: %v", err)
			}
			second, err := command.Execute(buf)
			if err != nil {
				t.Fatalf("second Execute error: %v", err)
			}
			if !bytes.Equal(first.Pix, second.Pix) {
				t.Error("Expected identical masks for repeated execution")
			}
			if first.Rect.Dx() != TargetSize || first.Rect.Dy() != TargetSize {
				t.Errorf("Expected %dx%d mask, got %dx%d", TargetSize, TargetSize, first.Rect.Dx(), first.Rect.Dy())
			}
			for i, v := range first.Pix {
				if v != 0 && v != 255 {
					t.Fatalf("pixel %d: expected binary mask value, got %d", i, v)
				}
			}
		})
	}

	for i := range before {
		if before[i] != buf.Pix[i] {
			t.Fatalf("detectors modified the input buffer at sample %d", i)
		}
	}
}

func TestDetectors_AliasesShareImplementation(t *testing.T) {
	set, err := NewDefaultDetectorSet()
	if err != nil {
		t.Fatalf("NewDefaultDetectorSet error: %v", err)
	}
	buf := NewDefaultPreprocessor().Preprocess(createTestImage(64, 64))

	micro, _ := set.Get(DetectorMicroaneurysms)
	neo, _ := set.Get(DetectorNeovascularization)
	a, err := micro.Execute(buf)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	b, err := neo.Execute(buf)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Expected microaneurysm and neovascularization masks to match")
	}
}

func TestNewDetectorSet_Overrides(t *testing.T) {
	overrides := []commandstructure.CommandConfig{
		{Name: DetectorDrusen, Params: map[string]any{"level": 10}},
		{Name: OpticDisc, Params: map[string]any{"level": 90}},
	}
	set, err := NewDetectorSet(commandstructure.DefaultRegistry, overrides)
	if err != nil {
		t.Fatalf("NewDetectorSet error: %v", err)
	}

	command, _ := set.Get(DetectorDrusen)
	threshold, ok := command.(*ThresholdCommand)
	if !ok {
		t.Fatalf("Expected *ThresholdCommand, got %T", command)
	}
	if threshold.GetParams().Level != 10 {
		t.Errorf("Expected overridden level 10, got %d", threshold.GetParams().Level)
	}
	if set.OpticDisc().params.SegmentationLevel != 90 {
		t.Errorf("Expected optic disc level 90, got %d", set.OpticDisc().params.SegmentationLevel)
	}

	// the package-level defaults must stay untouched
	if DefaultDetectors[2].Params["level"] != 150 {
		t.Errorf("Expected default drusen level to stay 150, got %v", DefaultDetectors[2].Params["level"])
	}
}

func TestOpticDisc_FollowsDrusenLevel(t *testing.T) {
	set, err := NewDefaultDetectorSet()
	if err != nil {
		t.Fatalf("NewDefaultDetectorSet error: %v", err)
	}
	if got := set.OpticDisc().params.SegmentationLevel; got != DrusenLevel {
		t.Errorf("Expected optic disc level %d, got %d", DrusenLevel, got)
	}

	// a mid-bright frame sits between the drusen level and the microaneurysm level
	buf := uniformBuffer(TargetSize, 170.0/255)
	drusen, _ := set.Get(DetectorDrusen)
	mask, err := drusen.Execute(buf)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	foreground := 0
	for _, v := range mask.Pix {
		if v != 0 {
			foreground++
		}
	}
	result, err := set.OpticDisc().Analyze(buf)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if result.DiscArea == nil || *result.DiscArea != foreground || foreground != TargetSize*TargetSize {
		t.Errorf("Expected disc area %d matching the drusen mask, got %v (mask %d)", TargetSize*TargetSize, result.DiscArea, foreground)
	}

	overridden, err := NewDetectorSet(commandstructure.DefaultRegistry, []commandstructure.CommandConfig{
		{Name: DetectorDrusen, Params: map[string]any{"level": 120}},
	})
	if err != nil {
		t.Fatalf("NewDetectorSet error: %v", err)
	}
	if got := overridden.OpticDisc().params.SegmentationLevel; got != 120 {
		t.Errorf("Expected optic disc level to follow drusen override 120, got %d", got)
	}
}

func TestNewDetectorSet_InvalidOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides []commandstructure.CommandConfig
	}{
		{name: "unknown detector", overrides: []commandstructure.CommandConfig{{Name: "fovea", Params: map[string]any{"level": 1}}}},
		{name: "level out of range", overrides: []commandstructure.CommandConfig{{Name: DetectorBloodVessels, Params: map[string]any{"level": 300}}}},
		{name: "even kernel", overrides: []commandstructure.CommandConfig{{Name: DetectorMicroaneurysms, Params: map[string]any{"kernel": 4}}}},
		{name: "canny high below low", overrides: []commandstructure.CommandConfig{{Name: DetectorGeographicAtrophy, Params: map[string]any{"high": 50}}}},
		{name: "optic disc level", overrides: []commandstructure.CommandConfig{{Name: OpticDisc, Params: map[string]any{"level": -1}}}},
		{name: "fractional level", overrides: []commandstructure.CommandConfig{{Name: DetectorRetinalTears, Params: map[string]any{"level": 127.9}}}},
		{name: "fractional kernel", overrides: []commandstructure.CommandConfig{{Name: DetectorNeovascularization, Params: map[string]any{"kernel": 5.5}}}},
		{name: "fractional optic disc level", overrides: []commandstructure.CommandConfig{{Name: OpticDisc, Params: map[string]any{"level": 150.5}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDetectorSet(commandstructure.DefaultRegistry, tt.overrides); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestCommandFactories_MissingParams(t *testing.T) {
	for _, name := range []string{"ThresholdCommand", "BlurThresholdCommand", "CannyCommand"} {
		t.Run(name, func(t *testing.T) {
			if _, err := commandstructure.DefaultRegistry.Create(name, map[string]any{}); err == nil {
				t.Error("Expected error for missing parameters")
			}
		})
	}
}

func TestDetectorSet_Commands(t *testing.T) {
	set, err := NewDefaultDetectorSet()
	if err != nil {
		t.Fatalf("NewDefaultDetectorSet error: %v", err)
	}

	names := []string{DetectorDrusen, DetectorBloodVessels}
	commands, err := set.Commands(names)
	if err != nil {
		t.Fatalf("Commands error: %v", err)
	}
	for i, command := range commands {
		if command.Name() != names[i] {
			t.Errorf("command %d: expected %s, got %s", i, names[i], command.Name())
		}
	}

	if _, err := set.Commands([]string{DetectorDrusen, "cotton-wool-spots"}); err == nil {
		t.Error("expected error for unknown detector")
	}
}
