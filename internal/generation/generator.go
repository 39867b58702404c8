package generation

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/specdraft/specdraft/internal/models"
)

// Generator produces a SpecOutput from a validated feature request
type Generator struct {
	client   *Client
	resolver *Resolver
}

// NewGenerator creates a generator from the environment
func NewGenerator() (*Generator, error) {
	client, err := NewClient()
	if err != nil {
		return nil, err
	}
	return NewGeneratorWithClient(client), nil
}

// NewGeneratorWithClient creates a generator around an existing client.
// Used by tests to point at a stub server.
func NewGeneratorWithClient(client *Client) *Generator {
	return &Generator{
		client:   client,
		resolver: NewResolver(client),
	}
}

// Generate resolves a model, sends the spec prompt, and parses the
// reply into a sanitized SpecOutput. Any failure clears the cached
// model identifier so the next call re-resolves from scratch. The
// generation call itself is never retried.
func (g *Generator) Generate(ctx context.Context, req models.FeatureRequest) (*models.SpecOutput, error) {
	model, err := g.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf(`{"level":"info","message":"Generating spec","model":"%s","title":"%s"}`, model, req.Title)

	text, err := g.client.GenerateContent(ctx, model, buildPrompt(req), 0)
	if err != nil {
		g.resolver.Invalidate()
		return nil, fmt.Errorf("failed to generate spec: %w", err)
	}

	out, err := parseSpecOutput(text)
	if err != nil {
		g.resolver.Invalidate()
		return nil, fmt.Errorf("failed to generate spec: %w", err)
	}

	if err := SanitizeOutput(out); err != nil {
		g.resolver.Invalidate()
		return nil, err
	}

	return out, nil
}

// CheckConnection verifies model reachability with a trivial prompt.
// Used by the status endpoint; never returns an error.
func (g *Generator) CheckConnection(ctx context.Context) bool {
	model, err := g.resolver.Resolve(ctx)
	if err != nil {
		log.Printf(`{"level":"error","message":"Gemini connection test failed","error":"%v"}`, err)
		return false
	}

	text, err := g.client.GenerateContent(ctx, model, "Reply with OK", 0)
	if err != nil {
		g.resolver.Invalidate()
		log.Printf(`{"level":"error","message":"Gemini connection test failed","error":"%v"}`, err)
		return false
	}

	return strings.Contains(strings.ToLower(text), "ok")
}

// buildPrompt renders the deterministic generation prompt embedding the
// five request fields and the strict JSON output instructions.
func buildPrompt(req models.FeatureRequest) string {
	var b strings.Builder

	b.WriteString("You are a product planning assistant. Generate a comprehensive product specification based on the following feature description.\n\n")
	fmt.Fprintf(&b, "Feature Title: %s\n", req.Title)
	fmt.Fprintf(&b, "Goal: %s\n", req.Goal)
	fmt.Fprintf(&b, "Target Users: %s\n", req.Users)
	fmt.Fprintf(&b, "Constraints: %s\n", req.Constraints)
	fmt.Fprintf(&b, "Template Type: %s\n\n", req.TemplateType)

	b.WriteString(`Generate a detailed specification and return ONLY valid JSON (no markdown, no code blocks, no explanations) with the following exact structure:

{
  "overview": "A comprehensive overview of the feature (2-3 paragraphs)",
  "user_stories": [
    {
      "title": "User story title",
      "description": "Detailed user story description"
    }
  ],
  "engineering_tasks": [
    {
      "group": "Frontend",
      "task": "Specific engineering task description"
    },
    {
      "group": "Backend",
      "task": "Specific engineering task description"
    },
    {
      "group": "DevOps",
      "task": "Specific engineering task description"
    },
    {
      "group": "Testing",
      "task": "Specific engineering task description"
    }
  ],
  "risks": ["Risk 1", "Risk 2"],
  "unknowns": ["Unknown 1", "Unknown 2"]
}

Requirements:
- Return ONLY valid JSON, no markdown formatting, no code blocks
- Include at least 3-5 user stories
- Include at least 8-12 engineering tasks distributed across Frontend, Backend, DevOps, and Testing groups
- Include at least 2-3 risks
- Include at least 2-3 unknowns
- All fields must be strings (no null values)
- Ensure JSON is valid and parseable`)

	return b.String()
}
