// Package validation checks feature requests before any network or
// storage call is made.
package validation

import (
	"strings"

	"github.com/specdraft/specdraft/internal/models"
)

// Result reports the outcome of validating a feature request.
// Errors accumulates every violation in field order rather than
// stopping at the first one.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateFeatureRequest checks that all four text fields are non-blank
// and that the template type is one of the supported values.
func ValidateFeatureRequest(req models.FeatureRequest) Result {
	var errors []string

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, "Feature title is required")
	}
	if strings.TrimSpace(req.Goal) == "" {
		errors = append(errors, "Goal is required")
	}
	if strings.TrimSpace(req.Users) == "" {
		errors = append(errors, "Target users is required")
	}
	if strings.TrimSpace(req.Constraints) == "" {
		errors = append(errors, "Constraints is required")
	}
	if req.TemplateType == "" {
		errors = append(errors, "Template type is required")
	} else if !models.IsValidTemplateType(req.TemplateType) {
		errors = append(errors, "Invalid template type")
	}

	return Result{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}
