package ai

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// CleanOutput normalizes raw model output into plain translated text: a
// wrapping markdown code fence and any markup are removed, entities are
// decoded and surrounding whitespace trimmed. An empty result means the model
// gave no usable answer.
func CleanOutput(text string) string {
	text = strings.TrimSpace(text)
	text = stripCodeFence(text)
	if strings.ContainsAny(text, "<>") {
		text = strictPolicy.Sanitize(text)
	}
	text = html.UnescapeString(text)
	return strings.TrimSpace(text)
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(text, "```"), "```")
	// Drop an info string such as "text" on the opening fence line.
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 && !strings.ContainsAny(inner[:nl], " \t") {
		inner = inner[nl+1:]
	}
	return strings.TrimSpace(inner)
}
