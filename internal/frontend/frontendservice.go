package frontend

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jo-hoe/fundusref/internal/common"
	"github.com/jo-hoe/fundusref/internal/core"
	"github.com/jo-hoe/fundusref/internal/reference"
)

const (
	MainPageName     = "index.html"
	AnalysisPageName = "analysis.html"
)

type FrontendService struct {
	coreService *core.CoreService
	config      *core.ServiceConfig
}

type indexPage struct {
	Diseases  []*reference.Disease
	Selected  *reference.Disease
	TestGuide []reference.TestIndicationGroup
	Sources   []string
}

type analysisPage struct {
	Categories []core.Category
}

func NewFrontendService(config *core.ServiceConfig, coreService *core.CoreService) *FrontendService {
	return &FrontendService{
		coreService: coreService,
		config:      config,
	}
}

// rootRedirectHandler redirects root path to index.html
func (service *FrontendService) rootRedirectHandler(ctx echo.Context) error {
	return ctx.Redirect(http.StatusMovedPermanently, "/"+MainPageName)
}

func (service *FrontendService) SetRoutes(e *echo.Echo) {
	// Create template renderer
	e.Renderer = &Template{
		templates: parseTemplates(),
	}
	bodyLimit := middleware.BodyLimit(strconv.FormatInt(service.config.MaxUploadBytes, 10))

	e.GET("/", service.rootRedirectHandler) // Redirect root to index.html
	e.GET("/"+MainPageName, service.indexHandler)
	e.GET("/"+AnalysisPageName, service.analysisPageHandler)

	e.GET("/htmx/reference", service.htmxReferenceHandler)
	e.GET("/htmx/additional-tests", service.htmxAdditionalTestsHandler)
	e.POST("/htmx/analyze", service.htmxAnalyzeHandler, bodyLimit)

	// Favicon (SVG) route
	e.GET("/icon.svg", service.iconHandler)
}

func (service *FrontendService) indexHandler(ctx echo.Context) error {
	diseases, err := service.coreService.Diseases(ctx.Request().Context())
	if err != nil || len(diseases) == 0 {
		slog.Error("indexHandler: failed to list diseases", "status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to load reference data")
	}

	page := indexPage{
		Diseases: diseases,
		Selected: diseases[0],
		Sources:  service.coreService.Sources(),
	}
	if ctx.QueryParam("view") == "additional-tests" {
		page.TestGuide = service.coreService.TestGuide()
	} else if selection := ctx.QueryParam("disease"); selection != "" {
		selected, err := service.coreService.Lookup(ctx.Request().Context(), selection)
		if err != nil {
			return service.selectionError(ctx, "indexHandler", err)
		}
		page.Selected = selected
	}
	return ctx.Render(http.StatusOK, MainPageName, page)
}

func (service *FrontendService) analysisPageHandler(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, AnalysisPageName, analysisPage{Categories: service.coreService.Categories()})
}

func (service *FrontendService) htmxReferenceHandler(ctx echo.Context) error {
	disease, err := service.coreService.Lookup(ctx.Request().Context(), ctx.QueryParam("disease"))
	if err != nil {
		return service.selectionError(ctx, "htmxReferenceHandler", err)
	}
	return ctx.Render(http.StatusOK, "reference", disease)
}

func (service *FrontendService) htmxAdditionalTestsHandler(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "additional-tests", service.coreService.TestGuide())
}

func (service *FrontendService) htmxAnalyzeHandler(ctx echo.Context) error {
	image, filename, err := common.ReadFormFile(ctx, "image")
	if err != nil {
		slog.Error("htmxAnalyzeHandler: failed to read uploaded file",
			"status", http.StatusBadRequest, "error", err)
		return ctx.Render(http.StatusBadRequest, "analysis-error", "Please upload an image to proceed.")
	}
	categories, err := common.FormValues(ctx, "category")
	if err != nil {
		slog.Error("htmxAnalyzeHandler: failed to parse form", "status", http.StatusBadRequest, "error", err)
		return ctx.Render(http.StatusBadRequest, "analysis-error", "Invalid analysis options.")
	}

	result, err := service.coreService.Analyze(ctx.Request().Context(), core.AnalysisRequest{
		Image:      image,
		Categories: categories,
	})
	if err != nil {
		status := core.StatusCode(err, http.StatusBadRequest)
		slog.Error("htmxAnalyzeHandler: analysis failed",
			"status", status, "error", err, "filename", filename)
		message := "Analysis failed."
		switch status {
		case http.StatusBadRequest:
			message = "Unknown analysis option selected."
		case http.StatusUnprocessableEntity:
			message = "The uploaded file could not be read as an image."
		}
		return ctx.Render(status, "analysis-error", message)
	}

	// Results belong to this request only
	service.setNoCache(ctx)
	return ctx.Render(http.StatusOK, "analysis-result", result)
}

func (service *FrontendService) selectionError(ctx echo.Context, handler string, err error) error {
	status := core.StatusCode(err, http.StatusBadRequest)
	slog.Warn(handler+": invalid selection", "status", status, "error", err)
	return ctx.String(status, "Unknown disease selection")
}

func (service *FrontendService) setNoCache(ctx echo.Context) {
	ctx.Response().Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	ctx.Response().Header().Set("Pragma", "no-cache")
	ctx.Response().Header().Set("Expires", "0")
}

func (service *FrontendService) iconHandler(ctx echo.Context) error {
	data, err := assetsFS.ReadFile("views/icon.svg")
	if err != nil {
		slog.Error("iconHandler: failed to read icon.svg", "status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to load icon")
	}
	// Cache for 7 days
	ctx.Response().Header().Set("Cache-Control", "public, max-age=604800, immutable")
	return ctx.Blob(http.StatusOK, "image/svg+xml", data)
}
