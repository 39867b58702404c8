package generation

import (
	"context"
	"log"
	"os"
	"strings"
	"sync"
)

// defaultCandidates is the ordered fallback list probed when model
// listing fails or yields nothing usable.
var defaultCandidates = []string{
	"gemini-1.5-flash-latest",
	"gemini-1.5-pro-latest",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-pro",
	"models/gemini-1.5-flash",
	"models/gemini-1.5-pro",
	"models/gemini-pro",
}

// Resolver finds a working model identifier and memoizes it for the
// lifetime of the process. The mutex covers the whole fill path so
// concurrent first requests resolve once instead of racing probes.
type Resolver struct {
	client    *Client
	preferred string

	mu     sync.Mutex
	cached string
}

// NewResolver creates a resolver. The GEMINI_MODEL environment variable,
// when set, names a preferred model probed before the default candidates.
func NewResolver(client *Client) *Resolver {
	return &Resolver{
		client:    client,
		preferred: os.Getenv("GEMINI_MODEL"),
	}
}

// Resolve returns a model identifier known to answer generateContent.
// Resolution order: cached value, provider model listing, candidate
// probing. Returns ErrNoAvailableModel when everything fails.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != "" {
		return r.cached, nil
	}

	// Step 1: list models and take the first that supports generation
	if name, ok := r.fromListing(ctx); ok {
		r.cached = name
		return name, nil
	}

	// Step 2: probe known model names with a minimal test generation
	candidates := defaultCandidates
	if r.preferred != "" {
		candidates = append([]string{r.preferred}, defaultCandidates...)
	}

	for _, candidate := range candidates {
		text, err := r.client.GenerateContent(ctx, candidate, "Hi", 1)
		if err != nil {
			log.Printf(`{"level":"info","message":"Model not available, trying next","model":"%s"}`, candidate)
			continue
		}
		if len(text) > 0 {
			log.Printf(`{"level":"info","message":"Found working model","model":"%s"}`, candidate)
			r.cached = candidate
			return candidate, nil
		}
	}

	return "", ErrNoAvailableModel
}

// fromListing asks the provider for its model list and picks the first
// entry that advertises generateContent support.
func (r *Resolver) fromListing(ctx context.Context) (string, bool) {
	models, err := r.client.ListModels(ctx)
	if err != nil {
		log.Printf(`{"level":"warn","message":"Could not list models, will probe candidates","error":"%v"}`, err)
		return "", false
	}

	for _, m := range models {
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				name := strings.TrimPrefix(m.Name, "models/")
				log.Printf(`{"level":"info","message":"Found available model","model":"%s"}`, name)
				return name, true
			}
		}
	}

	return "", false
}

// Invalidate clears the cached model so the next call re-resolves.
// Called after any generation failure.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.cached = ""
	r.mu.Unlock()
}
