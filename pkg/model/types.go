package model

import "strings"

// Reserved identifier used by the conditional-required rule. A field with this
// id only becomes required when the companion control carrying the same value
// is checked.
const ConditionalID = "conditional"

// Field types with special handling in the engine and the orchestrator.
const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypeRadio    = "radio"
	TypeCheckbox = "checkbox"
	TypeSubmit   = "submit"
	TypeButton   = "button"
)

// Error kinds, also used as top-level keys in message catalogs.
const (
	KindMissingValue    = "missingValue"
	KindPatternMismatch = "patternMismatch"
	KindWrongLength     = "wrongLength"
)

// LengthViolation reports which length bound a value breaks. The zero value
// means the length is acceptable.
type LengthViolation string

const (
	LengthOK    LengthViolation = ""
	LengthOver  LengthViolation = "over"
	LengthUnder LengthViolation = "under"
)

// FieldDescriptor captures everything the engine needs to judge one field.
type FieldDescriptor struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Required bool   `json:"required"`
	Min      *int   `json:"min,omitempty"`
	Max      *int   `json:"max,omitempty"`
	Pattern  string `json:"pattern,omitempty"`
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	// ConditionMet mirrors the companion control of a conditional field. It is
	// ignored for every other field.
	ConditionMet bool `json:"conditionMet,omitempty"`
}

// Identifier returns the key used to correlate the field with its message
// element: the name when present, otherwise the id.
func (d FieldDescriptor) Identifier() string {
	if name := strings.TrimSpace(d.Name); name != "" {
		return name
	}
	return strings.TrimSpace(d.ID)
}

// IsConditional reports whether the field participates in the
// conditional-required rule.
func (d FieldDescriptor) IsConditional() bool {
	return d.ID == ConditionalID
}

// ValidationResult is the outcome of evaluating a descriptor.
type ValidationResult struct {
	MissingValue    bool            `json:"missingValue"`
	PatternMismatch bool            `json:"patternMismatch"`
	WrongLength     LengthViolation `json:"wrongLength,omitempty"`
}

// Valid reports whether no check flagged the field.
func (r ValidationResult) Valid() bool {
	return !r.MissingValue && !r.PatternMismatch && r.WrongLength == LengthOK
}
