package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ChatCompletionShape(t *testing.T) {
	raw := []byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"X"},"finish_reason":"stop"}]}`)
	text, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "X", text)
}

func TestNormalize_CandidateShape(t *testing.T) {
	raw := []byte(`{"candidates":[{"content":{"parts":[{"text":"Y"}]},"finishReason":"STOP"}]}`)
	text, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "Y", text)
}

func TestNormalize_CandidateShapeWinsOverChoices(t *testing.T) {
	// Shape probing is fixed-order, not backend-driven
	raw := []byte(`{"candidates":[{"content":{"parts":[{"text":"from-candidates"}]}}],"choices":[{"message":{"content":"from-choices"}}]}`)
	text, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "from-candidates", text)
}

func TestNormalize_APIError(t *testing.T) {
	text, err := Normalize([]byte(`{"error":{"message":"bad key","code":401}}`))
	require.Error(t, err)
	assert.Empty(t, text)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "bad key", fe.Reason)
}

func TestNormalize_ParseFailure(t *testing.T) {
	_, err := Normalize([]byte("<html>502 Bad Gateway</html>"))
	require.Error(t, err)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
}

func TestNormalize_NoContent(t *testing.T) {
	_, err := Normalize([]byte(`{"candidates":[],"choices":[]}`))
	require.Error(t, err)
	assert.EqualError(t, err, "no response content found")
}
