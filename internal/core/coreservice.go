package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jo-hoe/fundusref/internal/backend/commands"
	"github.com/jo-hoe/fundusref/internal/backend/commandstructure"
	"github.com/jo-hoe/fundusref/internal/backend/database"
	"github.com/jo-hoe/fundusref/internal/backend/raster"
	"github.com/jo-hoe/fundusref/internal/grading"
	"github.com/jo-hoe/fundusref/internal/reference"
)

// SchematicSize is the edge length of the rendered optic disc schematic.
const SchematicSize = 256

type CoreService struct {
	config          *ServiceConfig
	databaseService database.DatabaseService
	detectors       *commands.DetectorSet
	preprocessor    *commands.Preprocessor
}

// AnalysisRequest is one upload plus the selected category slugs or labels.
type AnalysisRequest struct {
	Image      []byte
	Categories []string
}

// Overlay is one detector mask encoded as PNG.
type Overlay struct {
	Detector string `json:"detector"`
	Caption  string `json:"caption"`
	PNG      []byte `json:"png"`
}

// OpticDiscResult extends the optic disc parameters with a schematic drawing.
type OpticDiscResult struct {
	commands.OpticDiscParameters
	Schematic []byte `json:"schematic"`
}

// Section is the output of one selected category.
type Section struct {
	Category  CategoryID       `json:"category"`
	Title     string           `json:"title"`
	Overlays  []Overlay        `json:"overlays,omitempty"`
	OpticDisc *OpticDiscResult `json:"opticDisc,omitempty"`
	Note      string           `json:"note,omitempty"`
}

// AnalysisResult is owned by a single request and never stored.
type AnalysisResult struct {
	SessionID string    `json:"sessionId"`
	Format    string    `json:"format"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Thumbnail []byte    `json:"thumbnail"`
	Sections  []Section `json:"sections"`
}

func NewCoreService(ctx context.Context, config *ServiceConfig) (*CoreService, error) {
	detectors, err := commands.NewDetectorSet(commandstructure.DefaultRegistry, config.DetectorOverrides())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize detectors: %w", err)
	}
	preprocessor, err := commands.NewPreprocessor(commands.TargetSize, config.MaxDecodePixels)
	if err != nil {
		return nil, err
	}
	databaseService, err := getDatabaseService(ctx, config)
	if err != nil {
		return nil, err
	}
	return &CoreService{
		config:          config,
		databaseService: databaseService,
		detectors:       detectors,
		preprocessor:    preprocessor,
	}, nil
}

func getDatabaseService(ctx context.Context, config *ServiceConfig) (database.DatabaseService, error) {
	databaseService, err := database.NewDatabase(ctx, config.Database.Type, config.Database.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("database initialized successfully", "type", config.Database.Type)
	return databaseService, nil
}

// Close releases the reference store
func (service *CoreService) Close() error {
	return service.databaseService.Close()
}

// Config returns the active configuration
func (service *CoreService) Config() *ServiceConfig {
	return service.config
}

// Lookup resolves a disease slug or name and returns its reference content
func (service *CoreService) Lookup(ctx context.Context, disease string) (*reference.Disease, error) {
	id, err := reference.ParseDiseaseID(disease)
	if err != nil {
		return nil, err
	}
	return service.databaseService.GetDisease(ctx, id)
}

// Diseases returns every disease in navigation order
func (service *CoreService) Diseases(ctx context.Context) ([]*reference.Disease, error) {
	return service.databaseService.GetDiseases(ctx)
}

func (service *CoreService) TestGuide() []reference.TestIndicationGroup {
	return reference.TestGuide()
}

func (service *CoreService) Sources() []string {
	return reference.Sources()
}

func (service *CoreService) Categories() []Category {
	return Categories()
}

// Grade evaluates one grader measurement. The disease may be a slug or name.
func (service *CoreService) Grade(disease, feature string, value float64) (grading.Finding, error) {
	id, err := reference.ParseDiseaseID(disease)
	if err != nil {
		return grading.Finding{}, err
	}
	return grading.Evaluate(id, feature, value)
}

// Analyze validates the selection, decodes and preprocesses the upload once and
// runs the detectors of every selected category. On error nothing is returned.
func (service *CoreService) Analyze(ctx context.Context, request AnalysisRequest) (*AnalysisResult, error) {
	start := time.Now()
	sessionID := uuid.NewString()

	selected, err := resolveCategories(request.Categories)
	if err != nil {
		return nil, err
	}

	prepared, err := service.preprocessor.DecodeAndPreprocess(request.Image)
	if err != nil {
		slog.Warn("Analyze: rejected upload", "session", sessionID, "bytes", len(request.Image), "error", err)
		return nil, err
	}
	img, format, buf := prepared.Image, prepared.Format, prepared.Buffer
	thumbnail, err := commands.Thumbnail(img, service.config.ThumbnailWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create thumbnail: %w", err)
	}

	result := &AnalysisResult{
		SessionID: sessionID,
		Format:    format,
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
		Thumbnail: thumbnail,
		Sections:  make([]Section, 0, len(selected)),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	masks, err := service.runDetectors(selected, buf)
	if err != nil {
		return nil, err
	}
	for _, category := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		section, err := service.buildSection(category, buf, masks)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", category.ID, err)
		}
		result.Sections = append(result.Sections, section)
	}

	slog.Info("analysis complete",
		"session", sessionID,
		"format", format,
		"width", result.Width,
		"height", result.Height,
		"sections", len(result.Sections),
		"latency", time.Since(start))
	return result, nil
}

// runDetectors runs every detector needed by the selection once, in category
// then overlay order, and returns the PNG encoded masks by detector name.
func (service *CoreService) runDetectors(selected []Category, buf *raster.Buffer) (map[string][]byte, error) {
	var names []string
	seen := make(map[string]bool)
	for _, category := range selected {
		for _, spec := range category.Overlays {
			if !seen[spec.Detector] {
				seen[spec.Detector] = true
				names = append(names, spec.Detector)
			}
		}
	}

	detectors, err := service.detectors.Commands(names)
	if err != nil {
		return nil, err
	}
	results, err := commandstructure.NewCommandInvoker(detectors).Execute(buf)
	if err != nil {
		return nil, err
	}

	masks := make(map[string][]byte, len(results))
	for _, r := range results {
		png, err := raster.EncodePNG(r.Mask)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s mask: %w", r.Name, err)
		}
		masks[r.Name] = png
	}
	return masks, nil
}

func (service *CoreService) buildSection(category Category, buf *raster.Buffer, masks map[string][]byte) (Section, error) {
	section := Section{Category: category.ID, Title: category.Title, Note: category.Note}

	if category.OpticDisc {
		params, err := service.detectors.OpticDisc().Analyze(buf)
		if err != nil {
			return Section{}, err
		}
		schematic, err := commands.OpticDiscSchematic(SchematicSize, params.CupToDiscRatio)
		if err != nil {
			return Section{}, err
		}
		section.OpticDisc = &OpticDiscResult{OpticDiscParameters: *params, Schematic: schematic}
	}

	for _, spec := range category.Overlays {
		section.Overlays = append(section.Overlays, Overlay{Detector: spec.Detector, Caption: spec.Caption, PNG: masks[spec.Detector]})
	}
	return section, nil
}
