package provider

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// systemInstruction is the fixed system message for chat-shaped backends.
const systemInstruction = "You are an Aseprite Lua script generator. Generate ONLY valid Lua code in markdown code blocks. Follow all instructions precisely."

// noImageNote is appended to the user prompt for text-only backends so the
// degradation is visible to the model rather than silently dropped.
const noImageNote = "\n\nNote: Image context not available, generate based on text description only."

// RequestContext is the canonical, provider-agnostic input for one run.
// It is constructed once per user submission and never mutated.
type RequestContext struct {
	Prompt    string
	ImageB64  string
	ImageMIME string
}

// HasImage reports whether an image payload was captured for this run.
func (rc RequestContext) HasImage() bool {
	return rc.ImageB64 != ""
}

// BuiltRequest is one ready-to-send wire request.
type BuiltRequest struct {
	URL     string
	Headers map[string]string
	Body    []byte
}

// Gemini generateContent dialect
type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// OpenAI-compatible chat completions dialect
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// Build maps the canonical request onto spec's wire format. It is pure and
// must only be called with a non-empty key; unconfigured backends are
// short-circuited by the orchestrator before this point.
func Build(spec Spec, rc RequestContext, key string) (BuiltRequest, error) {
	var (
		payload any
		headers = map[string]string{}
		target  = spec.Endpoint
	)

	switch spec.Shape {
	case PayloadMultimodal:
		parts := []geminiPart{{Text: rc.Prompt}}
		if rc.HasImage() {
			parts = append(parts, geminiPart{
				InlineData: &geminiInlineData{
					MIMEType: rc.ImageMIME,
					Data:     rc.ImageB64,
				},
			})
		}
		payload = geminiRequest{Contents: []geminiContent{{Parts: parts}}}

	case PayloadChat:
		payload = chatRequest{
			Model: spec.Model,
			Messages: []chatMessage{
				{Role: "system", Content: systemInstruction},
				{Role: "user", Content: rc.Prompt + noImageNote},
			},
			Temperature: spec.Temperature,
			MaxTokens:   spec.MaxTokens,
		}

	default:
		return BuiltRequest{}, fmt.Errorf("unknown payload shape %q for provider %s", spec.Shape, spec.ID)
	}

	switch spec.Auth {
	case AuthQueryParam:
		target = fmt.Sprintf("%s?key=%s", spec.Endpoint, url.QueryEscape(key))
	case AuthBearer:
		headers["Authorization"] = "Bearer " + key
	default:
		return BuiltRequest{}, fmt.Errorf("unknown auth scheme %q for provider %s", spec.Auth, spec.ID)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return BuiltRequest{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	return BuiltRequest{URL: target, Headers: headers, Body: body}, nil
}
