// Package provider defines the closed set of upstream generative backends,
// shapes canonical requests into each backend's wire format, and normalizes
// heterogeneous reply formats back into plain generated text.
package provider

// ID identifies one backend in the fallback chain.
type ID string

const (
	Gemini     ID = "gemini"
	Groq       ID = "groq"
	OpenRouter ID = "openrouter"
)

// AuthScheme says how the API key travels on the wire.
type AuthScheme string

const (
	// AuthQueryParam appends the key as a ?key= URL parameter.
	AuthQueryParam AuthScheme = "query"
	// AuthBearer sends the key in an Authorization: Bearer header.
	AuthBearer AuthScheme = "bearer"
)

// PayloadShape selects the request body dialect.
type PayloadShape string

const (
	// PayloadMultimodal is the contents[].parts[] dialect with an inline
	// image part next to the prompt text.
	PayloadMultimodal PayloadShape = "multimodal"
	// PayloadChat is the OpenAI-compatible messages[] dialect. Image
	// context cannot be carried; the builder appends an explicit
	// disclaimer instead of dropping it silently.
	PayloadChat PayloadShape = "chat"
)

// Spec is the immutable descriptor for one backend.
type Spec struct {
	ID       ID
	Name     string
	Endpoint string
	Auth     AuthScheme
	Shape    PayloadShape
	// Model is empty for backends that encode the model in the endpoint.
	Model string
	// KeyName is the credential looked up for this backend.
	KeyName string
	// Generation parameters. Zero values are omitted from the body.
	Temperature float64
	MaxTokens   int
}

// Order returns the backends in fallback priority order. The slice is a
// fresh copy; callers may filter it but the relative order is fixed.
func Order() []Spec {
	return []Spec{
		{
			ID:       Gemini,
			Name:     "Gemini",
			Endpoint: "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash-exp:generateContent",
			Auth:     AuthQueryParam,
			Shape:    PayloadMultimodal,
			KeyName:  "GEMINI_API_KEY",
		},
		{
			ID:          Groq,
			Name:        "Groq (Llama 3.3)",
			Endpoint:    "https://api.groq.com/openai/v1/chat/completions",
			Auth:        AuthBearer,
			Shape:       PayloadChat,
			Model:       "llama-3.3-70b-versatile",
			KeyName:     "GROQ_API_KEY",
			Temperature: 0.7,
			MaxTokens:   2048,
		},
		{
			ID:       OpenRouter,
			Name:     "OpenRouter (Llama 3.2)",
			Endpoint: "https://openrouter.ai/api/v1/chat/completions",
			Auth:     AuthBearer,
			Shape:    PayloadChat,
			Model:    "meta-llama/llama-3.2-3b-instruct:free",
			KeyName:  "OPENROUTER_API_KEY",
		},
	}
}
