package provider

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specByID(t *testing.T, id ID) Spec {
	t.Helper()
	for _, s := range Order() {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("no spec for %s", id)
	return Spec{}
}

func TestBuild_MultimodalInlineImage(t *testing.T) {
	rc := RequestContext{
		Prompt:    "draw a tree",
		ImageB64:  "aGVsbG8=",
		ImageMIME: "image/png",
	}

	built, err := Build(specByID(t, Gemini), rc, "secret key")
	require.NoError(t, err)

	// Credential travels as a query parameter, not a header
	assert.Contains(t, built.URL, "generateContent?key=secret+key")
	assert.Empty(t, built.Headers["Authorization"])

	var body geminiRequest
	require.NoError(t, json.Unmarshal(built.Body, &body))
	require.Len(t, body.Contents, 1)
	require.Len(t, body.Contents[0].Parts, 2)
	assert.Equal(t, "draw a tree", body.Contents[0].Parts[0].Text)
	require.NotNil(t, body.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/png", body.Contents[0].Parts[1].InlineData.MIMEType)
	assert.Equal(t, "aGVsbG8=", body.Contents[0].Parts[1].InlineData.Data)
}

func TestBuild_MultimodalWithoutImage(t *testing.T) {
	built, err := Build(specByID(t, Gemini), RequestContext{Prompt: "draw a tree"}, "k")
	require.NoError(t, err)

	var body geminiRequest
	require.NoError(t, json.Unmarshal(built.Body, &body))
	require.Len(t, body.Contents[0].Parts, 1)
	assert.Nil(t, body.Contents[0].Parts[0].InlineData)
}

func TestBuild_ChatCarriesDisclaimer(t *testing.T) {
	built, err := Build(specByID(t, Groq), RequestContext{Prompt: "draw a tree"}, "gk")
	require.NoError(t, err)

	assert.Equal(t, "Bearer gk", built.Headers["Authorization"])
	assert.NotContains(t, built.URL, "gk")

	var body chatRequest
	require.NoError(t, json.Unmarshal(built.Body, &body))
	assert.Equal(t, "llama-3.3-70b-versatile", body.Model)
	require.Len(t, body.Messages, 2)
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.Equal(t, "user", body.Messages[1].Role)
	// Degradation must be visible to the backend
	assert.Contains(t, body.Messages[1].Content, "Image context not available")
	assert.Equal(t, 0.7, body.Temperature)
	assert.Equal(t, 2048, body.MaxTokens)
}

func TestBuild_ChatOmitsUnsetGenerationParams(t *testing.T) {
	built, err := Build(specByID(t, OpenRouter), RequestContext{Prompt: "p"}, "ok")
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(built.Body, &raw))
	assert.NotContains(t, raw, "temperature")
	assert.NotContains(t, raw, "max_tokens")
}

func TestOrder_IsStable(t *testing.T) {
	order := Order()
	require.Len(t, order, 3)
	assert.Equal(t, Gemini, order[0].ID)
	assert.Equal(t, Groq, order[1].ID)
	assert.Equal(t, OpenRouter, order[2].ID)

	// Mutating the returned slice must not affect subsequent calls
	order[0].ID = "mutated"
	assert.Equal(t, Gemini, Order()[0].ID)
}
