package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse reads a full HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return doc, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(markup string) (*html.Node, error) {
	return Parse(strings.NewReader(markup))
}

// Render serialises the subtree rooted at n.
func Render(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("dom: render: %w", err)
	}
	return buf.String(), nil
}

// IsElement reports whether n is an element with the given tag name.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

// Attr returns the value of an attribute and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// AttrValue returns the attribute value or an empty string.
func AttrValue(n *html.Node, key string) string {
	val, _ := Attr(n, key)
	return val
}

// HasAttr reports whether the attribute is present, regardless of its value.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr adds or replaces an attribute.
func SetAttr(n *html.Node, key, val string) {
	if n == nil {
		return
	}
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	out := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			continue
		}
		out = append(out, attr)
	}
	n.Attr = out
}

// Classes returns the class tokens of n in order.
func Classes(n *html.Node) []string {
	return strings.Fields(AttrValue(n, "class"))
}

// HasClass reports whether n carries the class token.
func HasClass(n *html.Node, class string) bool {
	for _, token := range Classes(n) {
		if token == class {
			return true
		}
	}
	return false
}

// AddClass appends class tokens that are not present yet.
func AddClass(n *html.Node, classes ...string) {
	if n == nil {
		return
	}
	tokens := Classes(n)
	changed := false
	for _, class := range classes {
		class = strings.TrimSpace(class)
		if class == "" || containsToken(tokens, class) {
			continue
		}
		tokens = append(tokens, class)
		changed = true
	}
	if changed {
		SetAttr(n, "class", strings.Join(tokens, " "))
	}
}

// RemoveClass drops a class token. The attribute disappears with its last
// token.
func RemoveClass(n *html.Node, class string) {
	if n == nil || !HasAttr(n, "class") {
		return
	}
	tokens := Classes(n)
	keep := tokens[:0]
	for _, token := range tokens {
		if token != class {
			keep = append(keep, token)
		}
	}
	if len(keep) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(keep, " "))
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	if n == nil {
		return
	}
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		n.RemoveChild(child)
		child = next
	}
	if text == "" {
		return
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text concatenates the text content of the subtree.
func Text(n *html.Node) string {
	var b strings.Builder
	Walk(n, func(node *html.Node) bool {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		return true
	})
	return b.String()
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}
