package commands

import (
	"fmt"
	"log/slog"

	"github.com/jo-hoe/fundusref/internal/backend/commandstructure"
)

// Nominal detector names. Several share one implementation.
const (
	DetectorBloodVessels       = "blood-vessels"
	DetectorMicroaneurysms     = "microaneurysms"
	DetectorDrusen             = "drusen"
	DetectorGeographicAtrophy  = "geographic-atrophy"
	DetectorRetinalTears       = "retinal-tears"
	DetectorNeovascularization = "neovascularization"

	// OpticDisc names the optic disc analyzer in detector overrides.
	OpticDisc = "optic-disc"
)

// DrusenLevel is the drusen threshold, shared with optic disc segmentation.
const DrusenLevel = 150

// DetectorDefinition binds a nominal detector to a registered command and its fixed parameters.
type DetectorDefinition struct {
	Name    string
	Command string
	Params  map[string]any
}

// DefaultDetectors lists the placeholder detectors with their fixed constants.
var DefaultDetectors = []DetectorDefinition{
	{Name: DetectorBloodVessels, Command: "ThresholdCommand", Params: map[string]any{"level": 127}},
	{Name: DetectorMicroaneurysms, Command: "BlurThresholdCommand", Params: map[string]any{"kernel": 5, "sigma": 0, "level": 200}},
	{Name: DetectorDrusen, Command: "ThresholdCommand", Params: map[string]any{"level": DrusenLevel}},
	{Name: DetectorGeographicAtrophy, Command: "CannyCommand", Params: map[string]any{"low": 100, "high": 200}},
	{Name: DetectorRetinalTears, Command: "ThresholdCommand", Params: map[string]any{"level": 100}},
	{Name: DetectorNeovascularization, Command: "BlurThresholdCommand", Params: map[string]any{"kernel": 5, "sigma": 0, "level": 200}},
}

// DetectorSet holds one instantiated command per nominal detector plus the optic disc analyzer.
// It is built once at startup and only read afterwards.
type DetectorSet struct {
	detectors map[string]commandstructure.Command
	opticDisc *OpticDiscAnalyzer
}

// NewDetectorSet instantiates DefaultDetectors from the registry. Overrides are
// matched by detector name and merged over the default parameters.
func NewDetectorSet(registry *commandstructure.CommandRegistry, overrides []commandstructure.CommandConfig) (*DetectorSet, error) {
	byName := make(map[string]map[string]any, len(overrides))
	for _, o := range overrides {
		byName[o.Name] = o.Params
	}

	set := &DetectorSet{detectors: make(map[string]commandstructure.Command, len(DefaultDetectors))}
	for _, def := range DefaultDetectors {
		params := commandstructure.MergeParams(def.Params, byName[def.Name])
		params["name"] = def.Name
		command, err := registry.Create(def.Command, params)
		if err != nil {
			return nil, fmt.Errorf("failed to create detector %s: %w", def.Name, err)
		}
		set.detectors[def.Name] = command
		delete(byName, def.Name)
	}

	// optic disc segmentation follows the drusen threshold unless overridden itself
	opticParams := map[string]any{"level": DrusenLevel}
	if drusen, ok := set.detectors[DetectorDrusen].(*ThresholdCommand); ok {
		opticParams["level"] = drusen.GetParams().Level
	}
	opticDisc, err := NewOpticDiscAnalyzer(commandstructure.MergeParams(opticParams, byName[OpticDisc]))
	if err != nil {
		return nil, fmt.Errorf("failed to create detector %s: %w", OpticDisc, err)
	}
	set.opticDisc = opticDisc
	delete(byName, OpticDisc)

	for name := range byName {
		return nil, fmt.Errorf("override for unknown detector: %s", name)
	}

	slog.Debug("DetectorSet: detectors ready", "count", len(set.detectors))
	return set, nil
}

// NewDefaultDetectorSet builds the detectors with their fixed constants
func NewDefaultDetectorSet() (*DetectorSet, error) {
	return NewDetectorSet(commandstructure.DefaultRegistry, nil)
}

// Get returns the command for a nominal detector
func (s *DetectorSet) Get(name string) (commandstructure.Command, error) {
	command, ok := s.detectors[name]
	if !ok {
		return nil, fmt.Errorf("unknown detector: %s", name)
	}
	return command, nil
}

// Commands returns the commands for the given detectors in the given order
func (s *DetectorSet) Commands(names []string) ([]commandstructure.Command, error) {
	out := make([]commandstructure.Command, 0, len(names))
	for _, name := range names {
		command, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, command)
	}
	return out, nil
}

// OpticDisc returns the optic disc analyzer
func (s *DetectorSet) OpticDisc() *OpticDiscAnalyzer {
	return s.opticDisc
}
