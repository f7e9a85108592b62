package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/goliatone/go-formcheck/pkg/dom"
	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

var (
	errContextRequired = errors.New("orchestrator: context is required")
	// ErrFieldRequired is returned when a handler receives a nil field.
	ErrFieldRequired = errors.New("orchestrator: field is required")
	// ErrFormRequired is returned when a submit handler receives a nil form.
	ErrFormRequired = errors.New("orchestrator: form is required")
)

// CompanionResolver reports whether the companion control of a conditional
// field is in its "yes" state.
type CompanionResolver func(root, field *html.Node) bool

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithEngine injects a configured validation engine.
func WithEngine(engine *validation.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithRenderer injects the presentation adapter.
func WithRenderer(renderer render.Renderer) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// WithSubmitter registers the callback that receives valid submissions.
func WithSubmitter(submitter Submitter) Option {
	return func(o *Orchestrator) {
		o.submitter = submitter
	}
}

// WithIDGenerator overrides how anonymous fields are keyed.
func WithIDGenerator(gen dom.IDGenerator) Option {
	return func(o *Orchestrator) {
		o.ids = gen
	}
}

// WithLogger routes pass diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithCompanionResolver replaces the lookup used by the conditional rule.
func WithCompanionResolver(resolver CompanionResolver) Option {
	return func(o *Orchestrator) {
		o.companion = resolver
	}
}

// Orchestrator wires the engine, renderer and submitter together. Missing
// dependencies fall back to the built-in implementations.
type Orchestrator struct {
	engine    *validation.Engine
	renderer  render.Renderer
	submitter Submitter
	ids       dom.IDGenerator
	logger    *slog.Logger
	companion CompanionResolver
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.engine == nil {
		o.engine = validation.New()
	}
	if o.renderer == nil {
		o.renderer = render.NewHTMLRenderer()
	}
	if o.ids == nil {
		o.ids = dom.NewCounter("")
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.companion == nil {
		o.companion = dom.CompanionChecked
	}
	return o
}

// Report describes the outcome of validating one field.
type Report struct {
	Key        string                 `json:"key,omitempty"`
	Field      *html.Node             `json:"-"`
	Descriptor model.FieldDescriptor  `json:"descriptor"`
	Result     model.ValidationResult `json:"result"`
	Message    string                 `json:"message,omitempty"`
	Skipped    bool                   `json:"skipped,omitempty"`
}

// Valid reports whether the field passed or was not validated at all.
func (r Report) Valid() bool {
	return r.Skipped || r.Result.Valid()
}

// Init disables native browser validation on every form under root and
// returns how many forms were touched.
func (o *Orchestrator) Init(root *html.Node) int {
	forms := dom.Forms(root)
	for _, form := range forms {
		dom.SetAttr(form, "novalidate", "")
	}
	return len(forms)
}

// Describe snapshots a field with the conditional rule resolved against the
// live tree.
func (o *Orchestrator) Describe(field *html.Node) model.FieldDescriptor {
	desc := dom.Describe(field)
	if desc.IsConditional() {
		desc.ConditionMet = o.companion(dom.Root(field), field)
	}
	return desc
}

// Validate evaluates one field and updates its error state. Submit and button
// inputs are reported as skipped.
func (o *Orchestrator) Validate(ctx context.Context, field *html.Node) (Report, error) {
	if ctx == nil {
		return Report{}, errContextRequired
	}
	if field == nil {
		return Report{}, ErrFieldRequired
	}
	if dom.IsSkipped(field) {
		return Report{Field: field, Skipped: true}, nil
	}

	desc := o.Describe(field)
	result := o.engine.Evaluate(desc)
	report := Report{Field: field, Descriptor: desc, Result: result}

	if result.Valid() {
		report.Key = desc.Identifier()
		if err := o.renderer.ClearError(field, report.Key); err != nil {
			return report, fmt.Errorf("orchestrator: clear error %q: %w", report.Key, err)
		}
		o.logger.DebugContext(ctx, "field valid", slog.String("key", report.Key))
		return report, nil
	}

	report.Key = dom.EnsureKey(field, o.ids)
	if report.Descriptor.Identifier() == "" {
		report.Descriptor.ID = report.Key
	}
	report.Message = o.engine.SelectMessage(report.Descriptor, result)
	if err := o.renderer.ShowError(field, report.Key, report.Message); err != nil {
		return report, fmt.Errorf("orchestrator: show error %q: %w", report.Key, err)
	}
	o.logger.DebugContext(ctx, "field invalid",
		slog.String("key", report.Key),
		slog.Bool("missing_value", result.MissingValue),
		slog.Bool("pattern_mismatch", result.PatternMismatch),
		slog.String("wrong_length", string(result.WrongLength)),
	)
	return report, nil
}

// HandleBlur validates the field that lost focus.
func (o *Orchestrator) HandleBlur(ctx context.Context, field *html.Node) (Report, error) {
	return o.Validate(ctx, field)
}

// SubmitOutcome summarises a submit pass.
type SubmitOutcome struct {
	Submitted bool                `json:"submitted"`
	Reports   []Report            `json:"reports,omitempty"`
	Invalid   []Report            `json:"invalid,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

// HandleSubmit validates every input of form in document order and shows the
// errors of all invalid fields. The Submitter is only invoked when nothing is
// invalid.
func (o *Orchestrator) HandleSubmit(ctx context.Context, form *html.Node) (SubmitOutcome, error) {
	var outcome SubmitOutcome
	if ctx == nil {
		return outcome, errContextRequired
	}
	if form == nil {
		return outcome, ErrFormRequired
	}

	for _, field := range dom.Inputs(form) {
		report, err := o.Validate(ctx, field)
		if err != nil {
			return outcome, err
		}
		if report.Skipped {
			continue
		}
		outcome.Reports = append(outcome.Reports, report)
		if report.Valid() {
			continue
		}
		outcome.Invalid = append(outcome.Invalid, report)
		outcome.Errors = addFieldError(outcome.Errors, report.Key, report.Message)
	}

	if len(outcome.Invalid) > 0 {
		o.logger.InfoContext(ctx, "submit blocked",
			slog.Int("fields", len(outcome.Reports)),
			slog.Int("invalid", len(outcome.Invalid)),
		)
		return outcome, nil
	}

	if o.submitter != nil {
		if err := o.submitter.Submit(ctx, form, dom.FormValues(form)); err != nil {
			return outcome, fmt.Errorf("orchestrator: submit: %w", err)
		}
	}
	outcome.Submitted = true
	o.logger.InfoContext(ctx, "submit accepted", slog.Int("fields", len(outcome.Reports)))
	return outcome, nil
}

// Preview evaluates field as if its value were value, without touching the
// tree. Interactive front ends use it to vet an answer before committing it.
func (o *Orchestrator) Preview(field *html.Node, value string) Report {
	if field == nil || dom.IsSkipped(field) {
		return Report{Field: field, Skipped: true}
	}
	desc := o.Describe(field)
	desc.Value = value
	result := o.engine.Evaluate(desc)
	report := Report{Field: field, Key: desc.Identifier(), Descriptor: desc, Result: result}
	if !result.Valid() {
		report.Message = o.engine.SelectMessage(desc, result)
	}
	return report
}
