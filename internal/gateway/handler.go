// Package gateway exposes the HTTP surface of the service.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/specdraft/specdraft/internal/generation"
	"github.com/specdraft/specdraft/internal/markdown"
	"github.com/specdraft/specdraft/internal/metrics"
	"github.com/specdraft/specdraft/internal/models"
	"github.com/specdraft/specdraft/internal/store"
	"github.com/specdraft/specdraft/internal/validation"
)

// SpecGenerator produces spec output from a feature request
type SpecGenerator interface {
	Generate(ctx context.Context, req models.FeatureRequest) (*models.SpecOutput, error)
	CheckConnection(ctx context.Context) bool
}

// SpecStore persists and retrieves spec records
type SpecStore interface {
	Create(ctx context.Context, req models.FeatureRequest, output models.SpecOutput) (*models.Spec, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Spec, error)
	ListRecent(ctx context.Context) ([]models.Spec, error)
	UpdateOutput(ctx context.Context, id uuid.UUID, output models.SpecOutput) (*models.Spec, error)
	Ping(ctx context.Context) error
}

// Handler handles HTTP requests for the gateway layer
type Handler struct {
	store     SpecStore
	generator SpecGenerator
	metrics   *metrics.GenerationMetrics
}

// NewHandler creates a new gateway handler
func NewHandler(specStore SpecStore, generator SpecGenerator, genMetrics *metrics.GenerationMetrics) *Handler {
	return &Handler{
		store:     specStore,
		generator: generator,
		metrics:   genMetrics,
	}
}

// SpecResponse wraps a single spec record
type SpecResponse struct {
	Spec *models.Spec `json:"spec"`
}

// SpecListResponse wraps the recent-specs listing
type SpecListResponse struct {
	Specs []models.Spec `json:"specs"`
}

// UpdateSpecRequest is the body of PUT /specs/{id}
type UpdateSpecRequest struct {
	Output models.SpecOutput `json:"output"`
}

// GenerateSpec godoc
// @Summary Generate a spec
// @Description Validate a feature request, generate a specification via Gemini, and persist it
// @Tags specs
// @Accept json
// @Produce json
// @Param request body models.FeatureRequest true "Feature request"
// @Success 201 {object} SpecResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /generate [post]
func (h *Handler) GenerateSpec(c *gin.Context) {
	var req models.FeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   models.ErrTitleValidation,
			Message: "Invalid request body",
		})
		return
	}

	result := validation.ValidateFeatureRequest(req)
	if !result.Valid {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   models.ErrTitleValidation,
			Message: strings.Join(result.Errors, ", "),
		})
		return
	}

	ctx := c.Request.Context()
	start := time.Now()
	if h.metrics != nil {
		h.metrics.RecordGenerationStarted(ctx, req.TemplateType)
	}

	output, err := h.generator.Generate(ctx, req)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordGenerationFailed(ctx, req.TemplateType, errorKind(err), time.Since(start))
		}
		log.Printf(`{"level":"error","message":"Failed to generate spec","error":"%v","title":"%s"}`, err, req.Title)
		respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordGenerationCompleted(ctx, req.TemplateType, time.Since(start))
	}

	spec, err := h.store.Create(ctx, req, *output)
	if err != nil {
		log.Printf(`{"level":"error","message":"Failed to persist spec","error":"%v","title":"%s"}`, err, req.Title)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SpecResponse{Spec: spec})
}

// ListSpecs godoc
// @Summary List recent specs
// @Description Return up to five specs, newest first
// @Tags specs
// @Produce json
// @Success 200 {object} SpecListResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /specs [get]
func (h *Handler) ListSpecs(c *gin.Context) {
	specs, err := h.store.ListRecent(c.Request.Context())
	if err != nil {
		log.Printf(`{"level":"error","message":"Failed to list specs","error":"%v"}`, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SpecListResponse{Specs: specs})
}

// GetSpec godoc
// @Summary Get a spec
// @Description Return the spec with the given id
// @Tags specs
// @Produce json
// @Param id path string true "Spec ID"
// @Success 200 {object} SpecResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /specs/{id} [get]
func (h *Handler) GetSpec(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, store.ErrNotFound)
		return
	}

	spec, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SpecResponse{Spec: spec})
}

// UpdateSpec godoc
// @Summary Update a spec's output
// @Description Replace the output field of an existing spec; the request fields stay immutable
// @Tags specs
// @Accept json
// @Produce json
// @Param id path string true "Spec ID"
// @Param request body UpdateSpecRequest true "New output"
// @Success 200 {object} SpecResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /specs/{id} [put]
func (h *Handler) UpdateSpec(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, store.ErrNotFound)
		return
	}

	var req UpdateSpecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   models.ErrTitleValidation,
			Message: "Invalid request body",
		})
		return
	}

	// Same shape constraints as creation
	if err := generation.SanitizeOutput(&req.Output); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   models.ErrTitleValidation,
			Message: "Invalid output structure",
		})
		return
	}

	spec, err := h.store.UpdateOutput(c.Request.Context(), id, req.Output)
	if err != nil {
		log.Printf(`{"level":"error","message":"Failed to update spec","error":"%v","id":"%s"}`, err, id)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SpecResponse{Spec: spec})
}

// ExportSpec godoc
// @Summary Export a spec
// @Description Download a spec as a markdown document or a JSON file
// @Tags specs
// @Produce plain
// @Param id path string true "Spec ID"
// @Param format query string false "Export format" Enums(markdown, json) default(markdown)
// @Success 200 {string} string
// @Failure 404 {object} models.ErrorResponse
// @Router /specs/{id}/export [get]
func (h *Handler) ExportSpec(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, store.ErrNotFound)
		return
	}

	spec, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	switch c.DefaultQuery("format", "markdown") {
	case "json":
		data, err := json.MarshalIndent(spec, "", "  ")
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=spec-%s.json", spec.ID))
		c.Data(http.StatusOK, "application/json", data)
	case "markdown":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=spec-%s.md", spec.ID))
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(markdown.FormatSpec(spec)))
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   models.ErrTitleValidation,
			Message: "Invalid export format",
		})
	}
}

// respondError maps a typed error to its status code and response body
func respondError(c *gin.Context, err error) {
	status, body := classifyError(err)
	c.JSON(status, body)
}

// classifyError maps errors raised by the store and generator to HTTP
// responses. Classification happens here once, on error identity rather
// than message text.
func classifyError(err error) (int, models.ErrorResponse) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, models.ErrorResponse{
			Error:   models.ErrTitleNotFound,
			Message: "Spec not found",
		}
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   models.ErrTitleUnavailable,
			Message: "Database connection error",
		}
	}

	for _, genErr := range []error{
		generation.ErrModelNotFound,
		generation.ErrRateLimited,
		generation.ErrInvalidCredential,
		generation.ErrNoAvailableModel,
		generation.ErrBadOutput,
	} {
		if errors.Is(err, genErr) {
			return http.StatusServiceUnavailable, models.ErrorResponse{
				Error:   models.ErrTitleUnavailable,
				Message: "AI service error: " + genErr.Error(),
			}
		}
	}

	return http.StatusInternalServerError, models.ErrorResponse{
		Error:   models.ErrTitleInternal,
		Message: "An unexpected error occurred",
	}
}

// errorKind names an error for the failure metrics
func errorKind(err error) string {
	switch {
	case errors.Is(err, generation.ErrModelNotFound):
		return "model_not_found"
	case errors.Is(err, generation.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, generation.ErrInvalidCredential):
		return "invalid_credential"
	case errors.Is(err, generation.ErrNoAvailableModel):
		return "no_available_model"
	case errors.Is(err, generation.ErrBadOutput):
		return "bad_output"
	default:
		return "internal"
	}
}
