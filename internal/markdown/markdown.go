// Package markdown renders a stored specification as a human-readable
// markdown document.
package markdown

import (
	"fmt"
	"strings"

	"github.com/specdraft/specdraft/internal/models"
)

// FormatSpec renders a spec as markdown. Engineering tasks are grouped
// by category in first-seen order and numbered within each group.
// The Risks and Unknowns sections are omitted entirely when empty.
func FormatSpec(spec *models.Spec) string {
	var b strings.Builder
	output := spec.Output

	fmt.Fprintf(&b, "# %s\n\n", spec.Title)
	fmt.Fprintf(&b, "**Template Type:** %s\n\n", spec.TemplateType)
	fmt.Fprintf(&b, "**Goal:** %s\n\n", spec.Goal)
	fmt.Fprintf(&b, "**Target Users:** %s\n\n", spec.Users)
	fmt.Fprintf(&b, "**Constraints:** %s\n\n", spec.Constraints)
	fmt.Fprintf(&b, "**Created:** %s\n\n", spec.CreatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "## Overview\n\n%s\n\n", output.Overview)

	b.WriteString("## User Stories\n\n")
	for i, story := range output.UserStories {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, story.Title)
		fmt.Fprintf(&b, "%s\n\n", story.Description)
	}

	b.WriteString("## Engineering Tasks\n\n")
	var groupOrder []string
	tasksByGroup := map[string][]string{}
	for _, task := range output.EngineeringTasks {
		if _, seen := tasksByGroup[task.Group]; !seen {
			groupOrder = append(groupOrder, task.Group)
		}
		tasksByGroup[task.Group] = append(tasksByGroup[task.Group], task.Task)
	}
	for _, group := range groupOrder {
		fmt.Fprintf(&b, "### %s\n\n", group)
		for i, task := range tasksByGroup[group] {
			fmt.Fprintf(&b, "%d. %s\n", i+1, task)
		}
		b.WriteString("\n")
	}

	if len(output.Risks) > 0 {
		b.WriteString("## Risks\n\n")
		for i, risk := range output.Risks {
			fmt.Fprintf(&b, "%d. %s\n", i+1, risk)
		}
		b.WriteString("\n")
	}

	if len(output.Unknowns) > 0 {
		b.WriteString("## Unknowns\n\n")
		for i, unknown := range output.Unknowns {
			fmt.Fprintf(&b, "%d. %s\n", i+1, unknown)
		}
		b.WriteString("\n")
	}

	return b.String()
}
