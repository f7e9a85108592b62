package render

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formcheck/pkg/dom"
)

const (
	DefaultErrorClass   = "error"
	DefaultMessageClass = "error-message"
)

// Option configures an HTMLRenderer.
type Option func(*HTMLRenderer)

// WithErrorClass overrides the class toggled on invalid fields.
func WithErrorClass(class string) Option {
	return func(r *HTMLRenderer) {
		if trimmed := strings.TrimSpace(class); trimmed != "" {
			r.errorClass = trimmed
		}
	}
}

// WithMessageClass overrides the base class of message elements. The keyed
// class is derived from it as "<class>-<key>".
func WithMessageClass(class string) Option {
	return func(r *HTMLRenderer) {
		if trimmed := strings.TrimSpace(class); trimmed != "" {
			r.messageClass = trimmed
		}
	}
}

// WithSanitizer swaps the markup policy applied to messages. Passing nil
// keeps messages verbatim; they are still escaped when rendered.
func WithSanitizer(s Sanitizer) Option {
	return func(r *HTMLRenderer) {
		r.sanitizer = s
	}
}

// HTMLRenderer writes validation state into an x/net/html tree: a class on
// the field and a sibling div holding the message.
type HTMLRenderer struct {
	errorClass   string
	messageClass string
	sanitizer    Sanitizer
}

var _ Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer constructs a renderer with the default class names and a
// strict bluemonday policy.
func NewHTMLRenderer(options ...Option) *HTMLRenderer {
	r := &HTMLRenderer{
		errorClass:   DefaultErrorClass,
		messageClass: DefaultMessageClass,
		sanitizer:    messageSanitizer(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// MessageClass returns the keyed class used to find the message element of a
// field.
func (r *HTMLRenderer) MessageClass(key string) string {
	return r.messageClass + "-" + classToken(key)
}

// ShowError implements Renderer.
func (r *HTMLRenderer) ShowError(field *html.Node, key, message string) error {
	if field == nil {
		return ErrNoParent
	}
	dom.AddClass(field, r.errorClass)

	keyed := r.MessageClass(key)
	target := dom.FindByClass(scope(field), keyed)
	if target == nil {
		if field.Parent == nil {
			return ErrNoParent
		}
		target = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
		field.Parent.InsertBefore(target, field.NextSibling)
	}
	dom.AddClass(target, r.messageClass, keyed)
	dom.SetText(target, plainText(r.sanitizer, message))
	return nil
}

// ClearError implements Renderer.
func (r *HTMLRenderer) ClearError(field *html.Node, key string) error {
	if field == nil {
		return nil
	}
	dom.RemoveClass(field, r.errorClass)
	if strings.TrimSpace(key) == "" {
		return nil
	}
	target := dom.FindByClass(scope(field), r.MessageClass(key))
	if target != nil && target.Parent != nil {
		target.Parent.RemoveChild(target)
	}
	return nil
}

// scope limits message lookups to the field's form so equally named fields in
// other forms keep their own messages.
func scope(field *html.Node) *html.Node {
	if form := dom.ClosestForm(field); form != nil {
		return form
	}
	return dom.Root(field)
}

// classToken turns a key into a single class token. Whitespace and '%' are
// percent-encoded so distinct keys never share a token.
func classToken(key string) string {
	key = strings.TrimSpace(key)
	if !strings.ContainsFunc(key, needsEscape) {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		if !needsEscape(r) {
			b.WriteRune(r)
			continue
		}
		for _, c := range []byte(string(r)) {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func needsEscape(r rune) bool {
	return r == '%' || unicode.IsSpace(r)
}
