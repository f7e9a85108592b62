package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// Option customises an Engine.
type Option func(*Engine)

// WithCatalog replaces the default pattern and message catalog. Nil is ignored.
func WithCatalog(catalog *Catalog) Option {
	return func(e *Engine) {
		if catalog != nil {
			e.catalog = catalog
		}
	}
}

// WithPatternAttributeGate only runs the pattern check on fields that also
// declare a `pattern` attribute. Named patterns are still selected by type.
func WithPatternAttributeGate(enabled bool) Option {
	return func(e *Engine) {
		e.patternGate = enabled
	}
}

// Engine evaluates field descriptors. It holds no mutable state.
type Engine struct {
	catalog     *Catalog
	patternGate bool
}

// New constructs an Engine backed by DefaultCatalog unless overridden.
func New(options ...Option) *Engine {
	e := &Engine{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.catalog == nil {
		e.catalog = DefaultCatalog()
	}
	return e
}

// Catalog exposes the catalog the engine reads from.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// CheckMissing reports whether a required field has an empty trimmed value.
// A conditional field counts as required while its companion control is
// checked.
func (e *Engine) CheckMissing(d model.FieldDescriptor) bool {
	required := d.Required || (d.IsConditional() && d.ConditionMet)
	if !required {
		return false
	}
	return strings.TrimSpace(d.Value) == ""
}

// CheckLength compares the value length against the declared bounds. Empty
// values are never flagged, and the upper bound is checked first.
func (e *Engine) CheckLength(d model.FieldDescriptor) model.LengthViolation {
	if d.Value == "" {
		return model.LengthOK
	}
	length := valueLength(d.Value)
	if d.Max != nil && length > *d.Max {
		return model.LengthOver
	}
	if d.Min != nil && length < *d.Min {
		return model.LengthUnder
	}
	return model.LengthOK
}

// CheckPattern reports whether a non-empty value fails the named pattern
// registered for the field type. Types without a pattern never mismatch.
func (e *Engine) CheckPattern(d model.FieldDescriptor) bool {
	if e.patternGate && strings.TrimSpace(d.Pattern) == "" {
		return false
	}
	re, ok := e.catalog.Pattern(d.Type)
	if !ok || d.Value == "" {
		return false
	}
	return !re.MatchString(d.Value)
}

// Evaluate runs every check against the descriptor.
func (e *Engine) Evaluate(d model.FieldDescriptor) model.ValidationResult {
	return model.ValidationResult{
		MissingValue:    e.CheckMissing(d),
		PatternMismatch: e.CheckPattern(d),
		WrongLength:     e.CheckLength(d),
	}
}

// IsValid reports whether a result carries no findings.
func IsValid(result model.ValidationResult) bool {
	return result.Valid()
}

// SelectMessage picks the message for the most important finding: a missing
// value, then a length violation, then a pattern mismatch. Results without a
// finding get the catalog fallback.
func (e *Engine) SelectMessage(d model.FieldDescriptor, result model.ValidationResult) string {
	switch {
	case result.MissingValue:
		return e.lookup(model.KindMissingValue, d.Type, d.ID, DefaultKey)
	case result.WrongLength != model.LengthOK:
		template, ok := e.catalog.Message(model.KindWrongLength, string(result.WrongLength))
		if !ok {
			return e.catalog.Fallback()
		}
		return interpolateLength(template, d)
	case result.PatternMismatch:
		return e.lookup(model.KindPatternMismatch, d.Type, DefaultKey)
	default:
		return e.catalog.Fallback()
	}
}

func (e *Engine) lookup(kind string, keys ...string) string {
	for _, key := range keys {
		if msg, ok := e.catalog.Message(kind, key); ok {
			return msg
		}
	}
	return e.catalog.Fallback()
}

func interpolateLength(template string, d model.FieldDescriptor) string {
	replacer := strings.NewReplacer(
		"{max}", formatBound(d.Max),
		"{min}", formatBound(d.Min),
		"{length}", strconv.Itoa(valueLength(d.Value)),
	)
	return replacer.Replace(template)
}

func formatBound(bound *int) string {
	if bound == nil {
		return ""
	}
	return strconv.Itoa(*bound)
}

func valueLength(value string) int {
	return utf8.RuneCountInString(value)
}
