package render_test

import (
	"errors"
	"strings"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formcheck/pkg/dom"
	"github.com/goliatone/go-formcheck/pkg/render"
)

func parseForm(t *testing.T, markup string) *html.Node {
	t.Helper()

	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func messages(doc *html.Node) []*html.Node {
	return dom.FindAll(doc, func(n *html.Node) bool { return dom.HasClass(n, render.DefaultMessageClass) })
}

func TestHTMLRenderer_ShowError(t *testing.T) {
	t.Parallel()

	doc := parseForm(t, `<form><label>Email <input name="email"></label><button>Go</button></form>`)
	field := dom.FindField(doc, "email")
	renderer := render.NewHTMLRenderer()

	if err := renderer.ShowError(field, "email", "Please fill out this field."); err != nil {
		t.Fatalf("show error: %v", err)
	}

	if !dom.HasClass(field, "error") {
		t.Fatalf("expected error class on field")
	}
	msg := field.NextSibling
	if msg == nil || !dom.IsElement(msg, "div") {
		t.Fatalf("expected message div as next sibling")
	}
	if diff := cmp.Diff([]string{"error-message", "error-message-email"}, dom.Classes(msg)); diff != "" {
		t.Fatalf("message classes mismatch (-want +got):\n%s", diff)
	}
	if got := dom.Text(msg); got != "Please fill out this field." {
		t.Fatalf("message text = %q", got)
	}
}

func TestHTMLRenderer_UpdatesExistingMessage(t *testing.T) {
	t.Parallel()

	doc := parseForm(t, `<form><input name="bio"></form>`)
	field := dom.FindField(doc, "bio")
	renderer := render.NewHTMLRenderer()

	if err := renderer.ShowError(field, "bio", "first"); err != nil {
		t.Fatalf("show error: %v", err)
	}
	if err := renderer.ShowError(field, "bio", "second"); err != nil {
		t.Fatalf("show error: %v", err)
	}

	found := messages(doc)
	if len(found) != 1 {
		t.Fatalf("expected a single message element, got %d", len(found))
	}
	if got := dom.Text(found[0]); got != "second" {
		t.Fatalf("message text = %q", got)
	}
	if got := dom.Classes(field); len(got) != 1 {
		t.Fatalf("error class duplicated: %v", got)
	}
}

func TestHTMLRenderer_ClearError(t *testing.T) {
	t.Parallel()

	doc := parseForm(t, `<form><input name="bio" class="wide"></form>`)
	field := dom.FindField(doc, "bio")
	renderer := render.NewHTMLRenderer()

	if err := renderer.ShowError(field, "bio", "oops"); err != nil {
		t.Fatalf("show error: %v", err)
	}
	if err := renderer.ClearError(field, "bio"); err != nil {
		t.Fatalf("clear error: %v", err)
	}

	if dom.HasClass(field, "error") || !dom.HasClass(field, "wide") {
		t.Fatalf("unexpected classes after clear: %v", dom.Classes(field))
	}
	if len(messages(doc)) != 0 {
		t.Fatalf("expected message element to be removed")
	}
	if err := renderer.ClearError(field, "bio"); err != nil {
		t.Fatalf("clearing twice should be a no-op: %v", err)
	}
}

func TestHTMLRenderer_SanitizesMessages(t *testing.T) {
	t.Parallel()

	doc := parseForm(t, `<form><input name="bio"></form>`)
	field := dom.FindField(doc, "bio")
	renderer := render.NewHTMLRenderer()

	if err := renderer.ShowError(field, "bio", `Because you've <b>selected</b> Yes<script>alert(1)</script>`); err != nil {
		t.Fatalf("show error: %v", err)
	}
	msg := messages(doc)[0]
	if got := dom.Text(msg); got != "Because you've selected Yes" {
		t.Fatalf("message text = %q", got)
	}
	out, err := dom.Render(msg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<b>") || strings.Contains(out, "script") {
		t.Fatalf("markup leaked into output: %s", out)
	}
}

func TestHTMLRenderer_CustomClasses(t *testing.T) {
	t.Parallel()

	doc := parseForm(t, `<form><input name="first name"></form>`)
	field := dom.FindField(doc, "first name")
	renderer := render.NewHTMLRenderer(
		render.WithErrorClass("is-invalid"),
		render.WithMessageClass("invalid-feedback"),
		render.WithSanitizer(nil),
	)

	if err := renderer.ShowError(field, "first name", "a & b"); err != nil {
		t.Fatalf("show error: %v", err)
	}
	if !dom.HasClass(field, "is-invalid") {
		t.Fatalf("expected custom error class")
	}
	msg := dom.FindByClass(doc, "invalid-feedback-first%20name")
	if msg == nil {
		t.Fatalf("expected keyed message class with whitespace escaped")
	}
	if got := dom.Text(msg); got != "a & b" {
		t.Fatalf("message text = %q", got)
	}
}

func TestHTMLRenderer_ScopesMessagesPerForm(t *testing.T) {
	t.Parallel()

	doc := parseForm(t, `<form id="a"><input name="email"></form><form id="b"><input name="email"></form>`)
	fields := dom.Inputs(doc)
	renderer := render.NewHTMLRenderer()

	for i, field := range fields {
		if err := renderer.ShowError(field, "email", []string{"one", "two"}[i]); err != nil {
			t.Fatalf("show error: %v", err)
		}
	}
	if got := len(messages(doc)); got != 2 {
		t.Fatalf("expected one message per form, got %d", got)
	}
}

func TestHTMLRenderer_DetachedField(t *testing.T) {
	t.Parallel()

	field := &html.Node{Type: html.ElementNode, Data: "input"}
	err := render.NewHTMLRenderer().ShowError(field, "x", "oops")
	if !errors.Is(err, render.ErrNoParent) {
		t.Fatalf("expected ErrNoParent, got %v", err)
	}
}

func TestHTMLRenderer_MessageClassIsUniquePerKey(t *testing.T) {
	t.Parallel()

	renderer := render.NewHTMLRenderer()
	seen := map[string]string{}
	for _, key := range []string{"a b", "a-b", "a%20b", "a\tb", "a  b", "ab"} {
		class := renderer.MessageClass(key)
		if strings.ContainsFunc(class, unicode.IsSpace) {
			t.Fatalf("class %q for key %q contains whitespace", class, key)
		}
		if other, ok := seen[class]; ok {
			t.Fatalf("keys %q and %q share class %q", other, key, class)
		}
		seen[class] = key
	}
	if got := renderer.MessageClass("email"); got != "error-message-email" {
		t.Fatalf("plain key class = %q", got)
	}
}
