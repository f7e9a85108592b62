package render

import (
	"errors"

	"golang.org/x/net/html"
)

// ErrNoParent is returned when a message element cannot be placed next to a
// detached field.
var ErrNoParent = errors.New("render: field has no parent")

// Renderer reflects validation outcomes in the document. Implementations own
// every mutation the validator makes to the tree, which keeps the rule engine
// free of document concerns.
type Renderer interface {
	// ShowError marks the field invalid and shows message in the element keyed
	// by key, creating it when needed.
	ShowError(field *html.Node, key, message string) error
	// ClearError removes the invalid marker and the message element for key.
	ClearError(field *html.Node, key string) error
}
