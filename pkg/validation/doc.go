// Package validation implements the rule engine that decides whether a form
// field is valid and which message to show when it is not.
//
// The engine evaluates three independent checks against a model.FieldDescriptor:
//
//   - missing value: the field is required (directly or through the
//     conditional rule) and its trimmed value is empty
//   - wrong length: a non-empty value is longer than `max` or shorter than `min`
//   - pattern mismatch: a named pattern is registered for the field type and a
//     non-empty value fails it
//
// Patterns and message templates live in a Catalog. DefaultCatalog returns the
// built-in tables; LoadCatalog overlays a YAML document on top of them. A
// Catalog never changes after construction, so one Engine can be shared freely.
package validation
