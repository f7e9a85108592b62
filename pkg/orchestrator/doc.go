// Package orchestrator runs validation passes over a form tree the way a
// browser page would on submit and blur: every input is described, evaluated
// by the validation engine and reflected through a render.Renderer. A submit
// only reaches the configured Submitter once no field is invalid.
package orchestrator
