// Package extract pulls fenced code blocks out of generated text.
package extract

import "strings"

const fence = "```"

// Extract returns the body of the first fenced block tagged with lang,
// falling back to the first fenced block of any kind. ok is false when the
// text contains no fenced block at all; that is not an error, the reply is
// a conversational answer rather than executable code.
func Extract(text, lang string) (code string, ok bool) {
	if body, found := between(text, fence+lang); found {
		return body, true
	}
	return between(text, fence)
}

// between returns the text between the first occurrence of open and the
// next closing fence after it.
func between(text, open string) (string, bool) {
	start := strings.Index(text, open)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(open):]

	end := strings.Index(rest, fence)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
