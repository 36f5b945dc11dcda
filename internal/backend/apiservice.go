package backend

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jo-hoe/fundusref/internal/common"
	"github.com/jo-hoe/fundusref/internal/core"
	"github.com/jo-hoe/fundusref/internal/reference"
)

const apiPrefix = "/api/v1"

type APIService struct {
	config      *core.ServiceConfig
	coreService *core.CoreService
}

// ErrorResponse is the JSON body of every failed API call
type ErrorResponse struct {
	Error string `json:"error"`
}

// GradeRequest is the body of POST /api/v1/grade
type GradeRequest struct {
	Disease string   `json:"disease" validate:"required"`
	Feature string   `json:"feature" validate:"required"`
	Value   *float64 `json:"value" validate:"required"`
}

// AdditionalTestsResponse is the body of GET /api/v1/additional-tests
type AdditionalTestsResponse struct {
	Guide   []reference.TestIndicationGroup `json:"guide"`
	Sources []string                        `json:"sources"`
}

func NewAPIService(config *core.ServiceConfig, coreService *core.CoreService) *APIService {
	return &APIService{
		config:      config,
		coreService: coreService,
	}
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	bodyLimit := middleware.BodyLimit(strconv.FormatInt(s.config.MaxUploadBytes, 10))

	// Set probe route
	e.GET("/probe", func(c echo.Context) error {
		return c.String(http.StatusOK, "API Service is running")
	})

	api := e.Group(apiPrefix)
	api.GET("/diseases", s.listDiseasesHandler)
	api.GET("/diseases/:id", s.getDiseaseHandler)
	api.GET("/additional-tests", s.additionalTestsHandler)
	api.GET("/categories", s.categoriesHandler)
	api.POST("/analyze", s.analyzeHandler, bodyLimit)
	api.POST("/grade", s.gradeHandler)
}

func (s *APIService) listDiseasesHandler(ctx echo.Context) error {
	diseases, err := s.coreService.Diseases(ctx.Request().Context())
	if err != nil {
		return s.errorJSON(ctx, "listDiseasesHandler", err, http.StatusBadRequest)
	}
	return ctx.JSON(http.StatusOK, diseases)
}

func (s *APIService) getDiseaseHandler(ctx echo.Context) error {
	disease, err := s.coreService.Lookup(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return s.errorJSON(ctx, "getDiseaseHandler", err, http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, disease)
}

func (s *APIService) additionalTestsHandler(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, AdditionalTestsResponse{
		Guide:   s.coreService.TestGuide(),
		Sources: s.coreService.Sources(),
	})
}

func (s *APIService) categoriesHandler(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.coreService.Categories())
}

func (s *APIService) analyzeHandler(ctx echo.Context) error {
	image, filename, err := common.ReadFormFile(ctx, "image")
	if err != nil {
		slog.Warn("analyzeHandler: invalid upload", "status", http.StatusBadRequest, "error", err)
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or unreadable image upload"})
	}
	categories, err := common.FormValues(ctx, "category")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form"})
	}

	result, err := s.coreService.Analyze(ctx.Request().Context(), core.AnalysisRequest{
		Image:      image,
		Categories: categories,
	})
	if err != nil {
		slog.Warn("analyzeHandler: analysis failed", "filename", filename)
		return s.errorJSON(ctx, "analyzeHandler", err, http.StatusBadRequest)
	}
	return ctx.JSON(http.StatusOK, result)
}

func (s *APIService) gradeHandler(ctx echo.Context) error {
	var request GradeRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := ctx.Validate(&request); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return ctx.JSON(httpErr.Code, ErrorResponse{Error: err.Error()})
		}
		return err
	}

	finding, err := s.coreService.Grade(request.Disease, request.Feature, *request.Value)
	if err != nil {
		return s.errorJSON(ctx, "gradeHandler", err, http.StatusBadRequest)
	}
	return ctx.JSON(http.StatusOK, finding)
}

func (s *APIService) errorJSON(ctx echo.Context, handler string, err error, selectionStatus int) error {
	status := core.StatusCode(err, selectionStatus)
	if status >= http.StatusInternalServerError {
		slog.Error(handler+": request failed", "status", status, "error", err)
		return ctx.JSON(status, ErrorResponse{Error: http.StatusText(status)})
	}
	slog.Warn(handler+": request rejected", "status", status, "error", err)
	return ctx.JSON(status, ErrorResponse{Error: err.Error()})
}
