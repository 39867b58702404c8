package generation

import "errors"

// Typed generation errors, raised at the point of origin so the
// gateway can map them to status codes without inspecting message text.
var (
	// ErrModelNotFound means the provider rejected the requested model identifier
	ErrModelNotFound = errors.New("model not found: check that your API key has access to Gemini models, or set GEMINI_MODEL to a specific model name")

	// ErrRateLimited means the provider reported quota exhaustion or rate limiting
	ErrRateLimited = errors.New("API rate limit exceeded, please try again later or upgrade your API plan")

	// ErrInvalidCredential means the API key was rejected
	ErrInvalidCredential = errors.New("invalid API key, please check your GEMINI_API_KEY")

	// ErrNoAvailableModel means neither listing nor probing produced a usable model
	ErrNoAvailableModel = errors.New("no available Gemini models found, please check your API key and ensure it has access to Gemini models")

	// ErrBadOutput means the model replied with text that does not have the
	// required specification structure
	ErrBadOutput = errors.New("invalid response structure from Gemini")
)
