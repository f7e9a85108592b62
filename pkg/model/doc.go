// Package model defines the values the validation engine works on. A
// FieldDescriptor is a snapshot of one input taken from the live form tree on
// every pass, and a ValidationResult is the pure outcome of evaluating it.
// Constraint attributes (`min`, `max`) are normalised to integers here so the
// engine never compares attribute strings against lengths.
package model
