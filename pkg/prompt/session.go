// Package prompt fills a form from the terminal. Each text answer is checked
// by the validation engine before it is accepted, which gives a terminal user
// the same feedback a browser shows on blur.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-formcheck/pkg/dom"
	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
)

// Option customises a Session.
type Option func(*Session)

// WithDriver replaces the survey driver.
func WithDriver(driver Driver) Option {
	return func(s *Session) {
		s.driver = driver
	}
}

// WithOrchestrator shares an orchestrator, and therefore its engine and
// renderer, with the session.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Session) {
		s.orch = orch
	}
}

// Session walks the inputs of one form.
type Session struct {
	driver Driver
	orch   *orchestrator.Orchestrator
}

// New constructs a Session with the survey driver and a default orchestrator
// unless overridden.
func New(options ...Option) *Session {
	s := &Session{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	if s.orch == nil {
		s.orch = orchestrator.New()
	}
	return s
}

// Run prompts for every fillable input of form, writes the answers into the
// tree and finishes with a submit pass.
func (s *Session) Run(ctx context.Context, form *html.Node) (orchestrator.SubmitOutcome, error) {
	if ctx == nil {
		return orchestrator.SubmitOutcome{}, errors.New("prompt: context is required")
	}
	if form == nil {
		return orchestrator.SubmitOutcome{}, orchestrator.ErrFormRequired
	}

	for _, field := range dom.Inputs(form) {
		if !fillable(field) {
			continue
		}
		if err := s.ask(ctx, field); err != nil {
			return orchestrator.SubmitOutcome{}, err
		}
		if _, err := s.orch.HandleBlur(ctx, field); err != nil {
			return orchestrator.SubmitOutcome{}, err
		}
	}
	return s.orch.HandleSubmit(ctx, form)
}

func (s *Session) ask(ctx context.Context, field *html.Node) error {
	label := fieldLabel(field)
	switch dom.FieldType(field) {
	case model.TypeRadio, model.TypeCheckbox:
		answer, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("%s: %s?", label, optionValue(field)),
			Default: dom.HasAttr(field, "checked"),
			Help:    dom.AttrValue(field, "title"),
		})
		if err != nil {
			return fmt.Errorf("prompt: %s: %w", label, err)
		}
		dom.SetChecked(field, answer)
		return nil
	default:
		answer, err := s.driver.Input(ctx, InputConfig{
			Message: label,
			Default: dom.AttrValue(field, "value"),
			Help:    dom.AttrValue(field, "placeholder"),
			Validator: func(value string) error {
				report := s.orch.Preview(field, value)
				if report.Valid() {
					return nil
				}
				return errors.New(report.Message)
			},
		})
		if err != nil {
			return fmt.Errorf("prompt: %s: %w", label, err)
		}
		dom.SetValue(field, answer)
		return nil
	}
}

func fillable(field *html.Node) bool {
	if dom.IsSkipped(field) || dom.HasAttr(field, "disabled") || dom.HasAttr(field, "readonly") {
		return false
	}
	switch dom.FieldType(field) {
	case "hidden", "file", "reset", "image":
		return false
	default:
		return true
	}
}

// fieldLabel prefers the text of a <label for=id>, then an enclosing label,
// then the field key.
func fieldLabel(field *html.Node) string {
	if id := dom.AttrValue(field, "id"); id != "" {
		label := dom.FindFirst(dom.Root(field), func(n *html.Node) bool {
			return dom.IsElement(n, "label") && dom.AttrValue(n, "for") == id
		})
		if text := strings.TrimSpace(dom.Text(label)); label != nil && text != "" {
			return text
		}
	}
	for p := field.Parent; p != nil; p = p.Parent {
		if dom.IsElement(p, "label") {
			if text := strings.TrimSpace(dom.Text(p)); text != "" {
				return text
			}
			break
		}
	}
	if key := dom.Describe(field).Identifier(); key != "" {
		return key
	}
	return dom.FieldType(field)
}

func optionValue(field *html.Node) string {
	if value, ok := dom.Attr(field, "value"); ok {
		return value
	}
	return "on"
}
