package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specdraft/specdraft/internal/models"
)

const validOutputJSON = `{
	"overview": "A login feature.",
	"user_stories": [
		{"title": "Sign in", "description": "As a user I can sign in."}
	],
	"engineering_tasks": [
		{"group": "Backend", "task": "Build the endpoint"}
	],
	"risks": ["Credential stuffing"],
	"unknowns": ["Reset flow"]
}`

func TestParseSpecOutput(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{
			name: "plain JSON",
			text: validOutputJSON,
		},
		{
			name: "json code fence",
			text: "```json\n" + validOutputJSON + "\n```",
		},
		{
			name: "bare code fence",
			text: "```\n" + validOutputJSON + "\n```",
		},
		{
			name: "fence without trailing newline",
			text: "```json\n" + validOutputJSON + "```",
		},
		{
			name: "JSON embedded in prose",
			text: "Here is your specification:\n" + validOutputJSON + "\nLet me know if you need more.",
		},
		{
			name:    "empty response",
			text:    "   ",
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			text:    "I cannot help with that.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := parseSpecOutput(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "A login feature.", out.Overview)
			require.Len(t, out.UserStories, 1)
			assert.Equal(t, "Sign in", out.UserStories[0].Title)
			require.Len(t, out.EngineeringTasks, 1)
			assert.Equal(t, models.GroupBackend, out.EngineeringTasks[0].Group)
		})
	}
}

func TestSanitizeOutput(t *testing.T) {
	base := func() *models.SpecOutput {
		return &models.SpecOutput{
			Overview:    "Overview text",
			UserStories: []models.UserStory{{Title: "A", Description: "B"}},
			EngineeringTasks: []models.EngineeringTask{
				{Group: models.GroupBackend, Task: "Do a thing"},
			},
			Risks:    []string{"r"},
			Unknowns: []string{"u"},
		}
	}

	t.Run("valid output passes unchanged", func(t *testing.T) {
		out := base()
		require.NoError(t, SanitizeOutput(out))
		assert.Equal(t, models.GroupBackend, out.EngineeringTasks[0].Group)
	})

	t.Run("missing overview fails", func(t *testing.T) {
		out := base()
		out.Overview = ""
		err := SanitizeOutput(out)
		assert.ErrorIs(t, err, ErrBadOutput)
	})

	t.Run("missing user stories fails", func(t *testing.T) {
		out := base()
		out.UserStories = nil
		assert.ErrorIs(t, SanitizeOutput(out), ErrBadOutput)
	})

	t.Run("missing engineering tasks fails", func(t *testing.T) {
		out := base()
		out.EngineeringTasks = nil
		assert.ErrorIs(t, SanitizeOutput(out), ErrBadOutput)
	})

	t.Run("missing risks and unknowns default to empty", func(t *testing.T) {
		out := base()
		out.Risks = nil
		out.Unknowns = nil
		require.NoError(t, SanitizeOutput(out))
		assert.NotNil(t, out.Risks)
		assert.NotNil(t, out.Unknowns)
		assert.Empty(t, out.Risks)
		assert.Empty(t, out.Unknowns)
	})

	t.Run("out-of-domain group coerced to Frontend", func(t *testing.T) {
		out := base()
		out.EngineeringTasks = []models.EngineeringTask{
			{Group: "Machine Learning", Task: "Train a model"},
			{Group: models.GroupDevOps, Task: "Provision"},
			{Group: "backend", Task: "Lowercase is not canonical"},
		}
		require.NoError(t, SanitizeOutput(out))
		assert.Equal(t, models.GroupFrontend, out.EngineeringTasks[0].Group)
		assert.Equal(t, models.GroupDevOps, out.EngineeringTasks[1].Group)
		assert.Equal(t, models.GroupFrontend, out.EngineeringTasks[2].Group)
	})

	t.Run("empty but present lists are allowed", func(t *testing.T) {
		out := base()
		out.UserStories = []models.UserStory{}
		out.EngineeringTasks = []models.EngineeringTask{}
		assert.NoError(t, SanitizeOutput(out))
	})
}
