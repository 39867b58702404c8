package helpers

import (
	"fmt"

	"github.com/specdraft/specdraft/internal/models"
)

// DefaultFeatureRequest is the canonical valid request used by integration tests
var DefaultFeatureRequest = models.FeatureRequest{
	Title:        "User Login",
	Goal:         "Let registered users sign in with email and password",
	Users:        "End users of the product",
	Constraints:  "Must support password reset and account lockout",
	TemplateType: models.TemplateWebApp,
}

// FeatureRequestN returns a valid request with a numbered title, useful
// when a test needs several distinguishable records.
func FeatureRequestN(n int) models.FeatureRequest {
	req := DefaultFeatureRequest
	req.Title = fmt.Sprintf("Feature %d", n)
	return req
}

// SampleOutput returns a structurally valid generated output
func SampleOutput() models.SpecOutput {
	return models.SpecOutput{
		Overview: "A login flow with email and password authentication.",
		UserStories: []models.UserStory{
			{Title: "Sign in", Description: "As a user I can sign in with my email and password"},
			{Title: "Reset password", Description: "As a user I can request a password reset link"},
		},
		EngineeringTasks: []models.EngineeringTask{
			{Group: models.GroupFrontend, Task: "Build the login form"},
			{Group: models.GroupBackend, Task: "Implement the session endpoint"},
			{Group: models.GroupDevOps, Task: "Provision the session store"},
			{Group: models.GroupTesting, Task: "Cover the lockout flow"},
		},
		Risks:    []string{"Credential stuffing"},
		Unknowns: []string{"SSO requirements"},
	}
}
