package dom

import "golang.org/x/net/html"

// Walk visits the subtree rooted at n in document order. Returning false from
// fn skips the children of the current node.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		Walk(child, fn)
	}
}

// FindAll returns every element under root, root included, that satisfies
// match.
func FindAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	Walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindFirst returns the first element matching in document order. The walk
// stops at the first match.
func FindFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && match(root) {
		return root
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if found := FindFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

// Forms lists the form elements under root.
func Forms(root *html.Node) []*html.Node {
	return FindAll(root, func(n *html.Node) bool { return IsElement(n, "form") })
}

// Inputs lists the input elements under root in document order.
func Inputs(root *html.Node) []*html.Node {
	return FindAll(root, func(n *html.Node) bool { return IsElement(n, "input") })
}

// FindField returns the first input whose name or id equals key.
func FindField(root *html.Node, key string) *html.Node {
	if key == "" {
		return nil
	}
	return FindFirst(root, func(n *html.Node) bool {
		if !IsElement(n, "input") {
			return false
		}
		return AttrValue(n, "name") == key || AttrValue(n, "id") == key
	})
}

// FindByClass returns the first element carrying the class token.
func FindByClass(root *html.Node, class string) *html.Node {
	return FindFirst(root, func(n *html.Node) bool { return HasClass(n, class) })
}

// FindByID returns the first element with the given id.
func FindByID(root *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	return FindFirst(root, func(n *html.Node) bool { return AttrValue(n, "id") == id })
}

// Root climbs to the topmost ancestor of n.
func Root(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// ClosestForm returns the nearest form ancestor of n, or nil.
func ClosestForm(n *html.Node) *html.Node {
	for p := n; p != nil; p = p.Parent {
		if IsElement(p, "form") {
			return p
		}
	}
	return nil
}
