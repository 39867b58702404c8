package models

import (
	"time"

	"github.com/google/uuid"
)

// TemplateType enumerates the supported spec templates
type TemplateType = string

const (
	TemplateWebApp       TemplateType = "Web App"
	TemplateMobileApp    TemplateType = "Mobile App"
	TemplateInternalTool TemplateType = "Internal Tool"
)

// TemplateTypes lists every valid template type
var TemplateTypes = []TemplateType{TemplateWebApp, TemplateMobileApp, TemplateInternalTool}

// TaskGroup enumerates the engineering task categories
type TaskGroup = string

const (
	GroupFrontend TaskGroup = "Frontend"
	GroupBackend  TaskGroup = "Backend"
	GroupDevOps   TaskGroup = "DevOps"
	GroupTesting  TaskGroup = "Testing"
)

// TaskGroups lists every valid engineering task group
var TaskGroups = []TaskGroup{GroupFrontend, GroupBackend, GroupDevOps, GroupTesting}

// IsValidTemplateType reports whether t is one of the supported templates
func IsValidTemplateType(t string) bool {
	for _, v := range TemplateTypes {
		if t == v {
			return true
		}
	}
	return false
}

// IsValidTaskGroup reports whether g is one of the four task categories
func IsValidTaskGroup(g string) bool {
	for _, v := range TaskGroups {
		if g == v {
			return true
		}
	}
	return false
}

// FeatureRequest is the user-submitted feature description that drives generation
type FeatureRequest struct {
	Title        string `json:"title"`
	Goal         string `json:"goal"`
	Users        string `json:"users"`
	Constraints  string `json:"constraints"`
	TemplateType string `json:"templateType"`
}

// UserStory is a single generated user story
type UserStory struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// EngineeringTask is a single generated engineering task assigned to a group
type EngineeringTask struct {
	Group TaskGroup `json:"group"`
	Task  string    `json:"task"`
}

// SpecOutput is the structured specification produced by the model.
// Field names match the JSON shape the model is instructed to return.
type SpecOutput struct {
	Overview         string            `json:"overview"`
	UserStories      []UserStory       `json:"user_stories"`
	EngineeringTasks []EngineeringTask `json:"engineering_tasks"`
	Risks            []string          `json:"risks"`
	Unknowns         []string          `json:"unknowns"`
}

// Spec is a persisted specification record. The request fields are
// immutable after creation; only Output may be updated.
type Spec struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Goal         string     `json:"goal"`
	Users        string     `json:"users"`
	Constraints  string     `json:"constraints"`
	TemplateType string     `json:"templateType"`
	Output       SpecOutput `json:"output"`
	CreatedAt    time.Time  `json:"createdAt"`
}
