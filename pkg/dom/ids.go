package dom

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// IDGenerator produces ids for fields that carry neither a name nor an id.
type IDGenerator interface {
	NextID() string
}

// Counter hands out monotonically increasing ids with a fixed prefix.
type Counter struct {
	prefix string
	next   atomic.Uint64
}

// NewCounter builds a Counter. An empty prefix defaults to "field-".
func NewCounter(prefix string) *Counter {
	if strings.TrimSpace(prefix) == "" {
		prefix = "field-"
	}
	return &Counter{prefix: prefix}
}

// NextID implements IDGenerator.
func (c *Counter) NextID() string {
	return c.prefix + strconv.FormatUint(c.next.Add(1), 10)
}

// UUIDGenerator produces random v4 ids.
type UUIDGenerator struct {
	Prefix string
}

// NextID implements IDGenerator.
func (g UUIDGenerator) NextID() string {
	return g.Prefix + uuid.NewString()
}

const maxIDAttempts = 64

// EnsureKey returns the field's name or id. When both are missing it assigns
// a generated id that no other element uses as a name or id and writes it
// back to the field.
func EnsureKey(field *html.Node, gen IDGenerator) string {
	if name := strings.TrimSpace(AttrValue(field, "name")); name != "" {
		return name
	}
	if id := strings.TrimSpace(AttrValue(field, "id")); id != "" {
		return id
	}
	if gen == nil {
		gen = NewCounter("")
	}
	root := Root(field)
	id := gen.NextID()
	for i := 0; i < maxIDAttempts && keyInUse(root, id); i++ {
		id = gen.NextID()
	}
	SetAttr(field, "id", id)
	return id
}

// keyInUse reports whether any element under root already answers to key.
func keyInUse(root *html.Node, key string) bool {
	return FindFirst(root, func(n *html.Node) bool {
		return AttrValue(n, "id") == key || AttrValue(n, "name") == key
	}) != nil
}
