package validation

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// DefaultKey is the lookup key used when no type or id specific entry exists.
const DefaultKey = "default"

const (
	emailAtom    = `[^\x00-\x20\x22\x28\x29\x2c\x2e\x3a-\x3c\x3e\x40\x5b-\x5d\x7f-\xff]+`
	emailQuoted  = `\x22(?:[^\x0d\x22\x5c\x80-\xff]|\x5c[\x00-\x7f])*\x22`
	emailLiteral = `\x5b(?:[^\x0d\x5b-\x5d\x80-\xff]|\x5c[\x00-\x7f])*\x5d`
	emailWord    = `(?:` + emailAtom + `|` + emailQuoted + `)`
	emailDomain  = `(?:` + emailAtom + `|` + emailLiteral + `)`

	// EmailPattern is an RFC 2822 derived address grammar that additionally
	// requires a dotted top-level label of at least two word characters.
	EmailPattern = `^` + emailWord + `(?:\x2e` + emailWord + `)*\x40` + emailDomain + `(?:\x2e` + emailDomain + `)*(?:\.\w{2,})+$`

	// TextPattern accepts ASCII letters only.
	TextPattern = `^[a-zA-Z]+$`
)

// Messages groups message templates by error kind. MissingValue and
// PatternMismatch are keyed by field type or id with DefaultKey as fallback;
// WrongLength is keyed by "over" and "under" and may reference {max}, {min}
// and {length}.
type Messages struct {
	MissingValue    map[string]string `yaml:"missingValue,omitempty"`
	PatternMismatch map[string]string `yaml:"patternMismatch,omitempty"`
	WrongLength     map[string]string `yaml:"wrongLength,omitempty"`
	Fallback        string            `yaml:"fallback,omitempty"`
}

func defaultPatterns() map[string]string {
	return map[string]string{
		model.TypeEmail: EmailPattern,
		model.TypeText:  TextPattern,
	}
}

func defaultMessages() Messages {
	return Messages{
		MissingValue: map[string]string{
			model.TypeRadio:     "Please select a value.",
			model.ConditionalID: "Because you've selected Yes, please fill out this field.",
			DefaultKey:          "Please fill out this field.",
		},
		PatternMismatch: map[string]string{
			model.TypeEmail: "Please enter a valid email address.",
			model.TypeText:  "Please enter letters only.",
			DefaultKey:      "Please match the requested format.",
		},
		WrongLength: map[string]string{
			string(model.LengthOver):  "Please shorten this text to no more than {max} characters. You are currently using {length} characters.",
			string(model.LengthUnder): "Please lengthen this text to {min} characters or more. You are currently using {length} characters.",
		},
		Fallback: "There was an error with this field.",
	}
}

// Catalog holds the compiled patterns and message templates the engine reads.
// It is immutable once built.
type Catalog struct {
	sources  map[string]string
	patterns map[string]*regexp.Regexp
	messages Messages
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog returns the built-in catalog. The value is shared.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		catalog, err := NewCatalog(defaultPatterns(), defaultMessages())
		if err != nil {
			panic(fmt.Errorf("validation: build default catalog: %w", err))
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// NewCatalog compiles patterns keyed by field type and copies the supplied
// messages. Empty pattern expressions are skipped.
func NewCatalog(patterns map[string]string, messages Messages) (*Catalog, error) {
	c := &Catalog{
		sources:  make(map[string]string, len(patterns)),
		patterns: make(map[string]*regexp.Regexp, len(patterns)),
		messages: copyMessages(messages),
	}
	for _, fieldType := range sortedKeys(patterns) {
		expr := patterns[fieldType]
		key := strings.TrimSpace(fieldType)
		if key == "" || strings.TrimSpace(expr) == "" {
			continue
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("validation: compile pattern %q: %w", key, err)
		}
		c.sources[key] = expr
		c.patterns[key] = re
	}
	return c, nil
}

// Pattern returns the named pattern registered for a field type.
func (c *Catalog) Pattern(fieldType string) (*regexp.Regexp, bool) {
	if c == nil {
		return nil, false
	}
	re, ok := c.patterns[fieldType]
	return re, ok
}

// Message looks up a template by error kind and key. Empty templates count as
// missing.
func (c *Catalog) Message(kind, key string) (string, bool) {
	if c == nil || key == "" {
		return "", false
	}
	var table map[string]string
	switch kind {
	case model.KindMissingValue:
		table = c.messages.MissingValue
	case model.KindPatternMismatch:
		table = c.messages.PatternMismatch
	case model.KindWrongLength:
		table = c.messages.WrongLength
	default:
		return "", false
	}
	msg, ok := table[key]
	if !ok || msg == "" {
		return "", false
	}
	return msg, true
}

// Fallback returns the generic message used when no specific template applies.
func (c *Catalog) Fallback() string {
	if c == nil {
		return ""
	}
	return c.messages.Fallback
}

// Patterns returns a copy of the pattern expressions keyed by field type.
func (c *Catalog) Patterns() map[string]string {
	out := make(map[string]string, len(c.sources))
	for k, v := range c.sources {
		out[k] = v
	}
	return out
}

// Messages returns a copy of the message tables.
func (c *Catalog) Messages() Messages {
	return copyMessages(c.messages)
}

type catalogFile struct {
	Patterns map[string]*string `yaml:"patterns"`
	Messages Messages           `yaml:"messages"`
}

// LoadCatalog decodes a YAML catalog and overlays it on the default tables.
// A pattern set to an empty string or null removes the built-in pattern for
// that type.
//
//	patterns:
//	  zip: '^[0-9]{5}$'
//	  text: ''
//	messages:
//	  patternMismatch:
//	    zip: Please enter a five digit ZIP code.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("validation: decode catalog: %w", err)
	}

	patterns := defaultPatterns()
	for fieldType, expr := range file.Patterns {
		if expr == nil || strings.TrimSpace(*expr) == "" {
			delete(patterns, fieldType)
			continue
		}
		patterns[fieldType] = *expr
	}

	messages := defaultMessages()
	mergeTable(messages.MissingValue, file.Messages.MissingValue)
	mergeTable(messages.PatternMismatch, file.Messages.PatternMismatch)
	mergeTable(messages.WrongLength, file.Messages.WrongLength)
	if fallback := strings.TrimSpace(file.Messages.Fallback); fallback != "" {
		messages.Fallback = fallback
	}

	return NewCatalog(patterns, messages)
}

// LoadCatalogFile reads a YAML catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("validation: open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

func mergeTable(dst, src map[string]string) {
	for key, msg := range src {
		trimmed := strings.TrimSpace(msg)
		if trimmed == "" {
			continue
		}
		dst[key] = trimmed
	}
}

func copyMessages(in Messages) Messages {
	return Messages{
		MissingValue:    copyTable(in.MissingValue),
		PatternMismatch: copyTable(in.PatternMismatch),
		WrongLength:     copyTable(in.WrongLength),
		Fallback:        in.Fallback,
	}
}

func copyTable(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
