package provider

import "encoding/json"

// FormatError is a hard failure of one attempt: the reply could not be
// turned into generated text (unparseable body, explicit API error, or no
// recognized content shape).
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return e.Reason
}

// reply covers every body dialect the backends are known to produce. The
// probe is format-driven, not backend-driven: a backend switching dialects
// requires no change anywhere else.
type reply struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`

	// Gemini generateContent shape
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`

	// OpenAI-compatible chat completion shape
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Normalize extracts the single generated-text value from a raw reply body.
func Normalize(raw []byte) (string, error) {
	var r reply
	if err := json.Unmarshal(raw, &r); err != nil {
		return "", &FormatError{Reason: "failed to parse response body"}
	}

	if r.Error != nil {
		return "", &FormatError{Reason: r.Error.Message}
	}

	if len(r.Candidates) > 0 {
		if parts := r.Candidates[0].Content.Parts; len(parts) > 0 {
			return parts[0].Text, nil
		}
		return "", nil
	}

	if len(r.Choices) > 0 {
		return r.Choices[0].Message.Content, nil
	}

	return "", &FormatError{Reason: "no response content found"}
}
