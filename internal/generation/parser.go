package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/specdraft/specdraft/internal/models"
)

// Pre-compiled fence patterns. Models frequently wrap JSON in markdown
// code fences despite being told not to.
var (
	codeFenceRegex  = regexp.MustCompile("(?s)^`{3}(?:json)?\\s*\\n?([\\s\\S]*?)\\n?`{3}\\s*$")
	jsonObjectRegex = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
)

// parseSpecOutput parses raw model text into a SpecOutput. It tries a
// direct parse first, then strips code fences, then extracts the first
// JSON object from mixed content.
func parseSpecOutput(text string) (*models.SpecOutput, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var out models.SpecOutput
	if err := json.Unmarshal([]byte(trimmed), &out); err == nil {
		return &out, nil
	}

	withoutFences := removeCodeFences(trimmed)
	if withoutFences != trimmed {
		if err := json.Unmarshal([]byte(withoutFences), &out); err == nil {
			return &out, nil
		}
	}

	if extracted := jsonObjectRegex.FindString(withoutFences); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), &out); err == nil {
			return &out, nil
		}
	}

	return nil, fmt.Errorf("failed to parse model response as JSON")
}

// removeCodeFences strips a ```json ... ``` or ``` ... ``` wrapper
func removeCodeFences(text string) string {
	cleaned := codeFenceRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(cleaned)
}

// SanitizeOutput is the single sanitizing boundary between untrusted
// model output and the rest of the system. It rejects structurally
// broken output, defaults the optional arrays, and coerces any
// out-of-domain task group to Frontend.
func SanitizeOutput(out *models.SpecOutput) error {
	if out.Overview == "" {
		return fmt.Errorf("%w: missing overview", ErrBadOutput)
	}
	if out.UserStories == nil {
		return fmt.Errorf("%w: user_stories is not a list", ErrBadOutput)
	}
	if out.EngineeringTasks == nil {
		return fmt.Errorf("%w: engineering_tasks is not a list", ErrBadOutput)
	}

	if out.Risks == nil {
		out.Risks = []string{}
	}
	if out.Unknowns == nil {
		out.Unknowns = []string{}
	}

	for i := range out.EngineeringTasks {
		if !models.IsValidTaskGroup(out.EngineeringTasks[i].Group) {
			out.EngineeringTasks[i].Group = models.GroupFrontend
		}
	}

	return nil
}
