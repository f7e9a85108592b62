package orchestrator

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Submitter receives a form once every field is valid, standing in for the
// programmatic form.submit() a page performs after a prevented submit event.
type Submitter interface {
	Submit(ctx context.Context, form *html.Node, values url.Values) error
}

// SubmitterFunc adapts a function into a Submitter.
type SubmitterFunc func(ctx context.Context, form *html.Node, values url.Values) error

// Submit delegates to the underlying function.
func (fn SubmitterFunc) Submit(ctx context.Context, form *html.Node, values url.Values) error {
	return fn(ctx, form, values)
}

// addFieldError appends message under key, trimming whitespace and dropping
// duplicates while preserving order.
func addFieldError(errs map[string][]string, key, message string) map[string][]string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return errs
	}
	if errs == nil {
		errs = make(map[string][]string)
	}
	for _, existing := range errs[key] {
		if existing == trimmed {
			return errs
		}
	}
	errs[key] = append(errs[key], trimmed)
	return errs
}
