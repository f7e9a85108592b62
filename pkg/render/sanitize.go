package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Sanitizer strips markup from message text. *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(s string) string
}

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

func messageSanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return messagePolicy
}

// plainText runs message through the sanitizer and decodes the entities it
// leaves behind, since the result is stored as a text node and escaped again
// on render.
func plainText(s Sanitizer, message string) string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" || s == nil {
		return trimmed
	}
	return strings.TrimSpace(html.UnescapeString(s.Sanitize(trimmed)))
}
