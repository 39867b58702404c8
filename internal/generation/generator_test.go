package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specdraft/specdraft/internal/models"
)

func featureRequest() models.FeatureRequest {
	return models.FeatureRequest{
		Title:        "Login",
		Goal:         "Let users sign in",
		Users:        "End users",
		Constraints:  "Must use email/password",
		TemplateType: models.TemplateWebApp,
	}
}

// listThenGenerate answers /models with one generation-capable model and
// routes generateContent calls to the given reply function.
func listThenGenerate(reply func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			w.Write([]byte(`{"models":[{"name":"models/gemini-1.5-flash","supportedGenerationMethods":["generateContent"]}]}`))
			return
		}
		reply(w, r)
	}
}

func TestGenerator_Generate(t *testing.T) {
	t.Run("parses and sanitizes a fenced response", func(t *testing.T) {
		server := httptest.NewServer(listThenGenerate(func(w http.ResponseWriter, r *http.Request) {
			textResponse(w, "```json\n{"+
				`"overview":"A login feature.",`+
				`"user_stories":[{"title":"Sign in","description":"d"}],`+
				`"engineering_tasks":[{"group":"Platform","task":"t1"},{"group":"Testing","task":"t2"}]`+
				"}\n```")
		}))
		defer server.Close()

		gen := NewGeneratorWithClient(newTestClient(t, server.URL))

		out, err := gen.Generate(context.Background(), featureRequest())
		require.NoError(t, err)
		assert.Equal(t, "A login feature.", out.Overview)
		require.Len(t, out.EngineeringTasks, 2)
		assert.Equal(t, models.GroupFrontend, out.EngineeringTasks[0].Group)
		assert.Equal(t, models.GroupTesting, out.EngineeringTasks[1].Group)
		assert.Empty(t, out.Risks)
		assert.Empty(t, out.Unknowns)
		assert.NotNil(t, out.Risks)
		assert.NotNil(t, out.Unknowns)
	})

	t.Run("prompt embeds all request fields", func(t *testing.T) {
		var prompt string
		server := httptest.NewServer(listThenGenerate(func(w http.ResponseWriter, r *http.Request) {
			var req geminiRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			prompt = req.Contents[0].Parts[0].Text
			textResponse(w, validOutputJSON)
		}))
		defer server.Close()

		gen := NewGeneratorWithClient(newTestClient(t, server.URL))

		_, err := gen.Generate(context.Background(), featureRequest())
		require.NoError(t, err)
		for _, expected := range []string{
			"Feature Title: Login",
			"Goal: Let users sign in",
			"Target Users: End users",
			"Constraints: Must use email/password",
			"Template Type: Web App",
			"ONLY valid JSON",
		} {
			assert.Contains(t, prompt, expected)
		}
	})

	t.Run("generation failure clears the cached model", func(t *testing.T) {
		var fail atomic.Bool
		var listCalls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/models" {
				atomic.AddInt32(&listCalls, 1)
				w.Write([]byte(`{"models":[{"name":"models/gemini-1.5-flash","supportedGenerationMethods":["generateContent"]}]}`))
				return
			}
			if fail.Load() {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			textResponse(w, validOutputJSON)
		}))
		defer server.Close()

		gen := NewGeneratorWithClient(newTestClient(t, server.URL))

		_, err := gen.Generate(context.Background(), featureRequest())
		require.NoError(t, err)

		fail.Store(true)
		_, err = gen.Generate(context.Background(), featureRequest())
		assert.ErrorIs(t, err, ErrRateLimited)

		// Next generation re-resolves from scratch
		fail.Store(false)
		_, err = gen.Generate(context.Background(), featureRequest())
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&listCalls))
	})

	t.Run("unparseable reply fails the request", func(t *testing.T) {
		server := httptest.NewServer(listThenGenerate(func(w http.ResponseWriter, r *http.Request) {
			textResponse(w, "Sorry, I cannot produce JSON today.")
		}))
		defer server.Close()

		gen := NewGeneratorWithClient(newTestClient(t, server.URL))

		_, err := gen.Generate(context.Background(), featureRequest())
		assert.Error(t, err)
	})

	t.Run("structurally broken reply is a bad-output error", func(t *testing.T) {
		server := httptest.NewServer(listThenGenerate(func(w http.ResponseWriter, r *http.Request) {
			textResponse(w, `{"user_stories":[],"engineering_tasks":[]}`)
		}))
		defer server.Close()

		gen := NewGeneratorWithClient(newTestClient(t, server.URL))

		_, err := gen.Generate(context.Background(), featureRequest())
		assert.ErrorIs(t, err, ErrBadOutput)
	})
}

func TestGenerator_CheckConnection(t *testing.T) {
	t.Run("true when the model replies OK", func(t *testing.T) {
		server := httptest.NewServer(listThenGenerate(func(w http.ResponseWriter, r *http.Request) {
			textResponse(w, "OK")
		}))
		defer server.Close()

		gen := NewGeneratorWithClient(newTestClient(t, server.URL))
		assert.True(t, gen.CheckConnection(context.Background()))
	})

	t.Run("false when the reply does not contain OK", func(t *testing.T) {
		server := httptest.NewServer(listThenGenerate(func(w http.ResponseWriter, r *http.Request) {
			textResponse(w, "I am a teapot")
		}))
		defer server.Close()

		gen := NewGeneratorWithClient(newTestClient(t, server.URL))
		assert.False(t, gen.CheckConnection(context.Background()))
	})

	t.Run("false when nothing is reachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		gen := NewGeneratorWithClient(newTestClient(t, server.URL))
		assert.False(t, gen.CheckConnection(context.Background()))
	})
}
