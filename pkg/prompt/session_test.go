package prompt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formcheck/pkg/dom"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
	"github.com/goliatone/go-formcheck/pkg/prompt"
)

// scriptedDriver answers prompts from queues keyed by message. Input answers
// rejected by the validator are recorded and the next queued answer is tried,
// the way survey re-asks on validation errors.
type scriptedDriver struct {
	inputs   map[string][]string
	confirms map[string]bool
	rejected map[string][]string
	asked    []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	for _, answer := range d.inputs[cfg.Message] {
		if cfg.Validator != nil {
			if err := cfg.Validator(answer); err != nil {
				d.rejected[cfg.Message] = append(d.rejected[cfg.Message], err.Error())
				continue
			}
		}
		return answer, nil
	}
	return "", prompt.ErrAborted
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	d.asked = append(d.asked, cfg.Message)
	return d.confirms[cfg.Message], nil
}

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()

	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestSession_Run(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<form>
		<label for="email">Email</label><input id="email" name="email" type="email" required>
		<input type="radio" name="more" value="conditional">
		<input type="text" id="conditional">
		<input type="hidden" name="csrf" value="t">
		<input type="submit" value="Send">
	</form>`)

	driver := &scriptedDriver{
		inputs: map[string][]string{
			"Email":       {"", "not-an-email", "ada@example.com"},
			"conditional": {"", "Yes"},
		},
		confirms: map[string]bool{"more: conditional?": true},
		rejected: map[string][]string{},
	}

	outcome, err := prompt.New(prompt.WithDriver(driver)).Run(context.Background(), dom.Forms(doc)[0])
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !outcome.Submitted {
		t.Fatalf("expected form to submit, errors: %v", outcome.Errors)
	}

	wantAsked := []string{"Email", "more: conditional?", "conditional"}
	if diff := cmp.Diff(wantAsked, driver.asked); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	wantRejected := map[string][]string{
		"Email":       {"Please fill out this field.", "Please enter a valid email address."},
		"conditional": {"Because you've selected Yes, please fill out this field."},
	}
	if diff := cmp.Diff(wantRejected, driver.rejected); diff != "" {
		t.Fatalf("rejections mismatch (-want +got):\n%s", diff)
	}
	if got := dom.AttrValue(dom.FindField(doc, "email"), "value"); got != "ada@example.com" {
		t.Fatalf("answer not written back: %q", got)
	}
}

func TestSession_Aborted(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<form><input name="name" required></form>`)
	driver := &scriptedDriver{inputs: map[string][]string{}, rejected: map[string][]string{}}

	_, err := prompt.New(prompt.WithDriver(driver), prompt.WithOrchestrator(orchestrator.New())).Run(context.Background(), dom.Forms(doc)[0])
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}
