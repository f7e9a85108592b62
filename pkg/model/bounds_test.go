package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/model"
)

func TestParseBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		attr    string
		wantMax *int
		wantMin *int
	}{
		{name: "empty", attr: ""},
		{name: "whitespace", attr: "   "},
		{name: "integer", attr: "5", wantMax: model.Bound(5), wantMin: model.Bound(5)},
		{name: "padded integer", attr: " 12 ", wantMax: model.Bound(12), wantMin: model.Bound(12)},
		{name: "fraction", attr: "5.5", wantMax: model.Bound(5), wantMin: model.Bound(6)},
		{name: "not a number", attr: "five"},
		{name: "nan", attr: "NaN"},
		{name: "infinite", attr: "Inf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.wantMax, model.ParseMaxBound(tc.attr)); diff != "" {
				t.Fatalf("max bound mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantMin, model.ParseMinBound(tc.attr)); diff != "" {
				t.Fatalf("min bound mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldDescriptorIdentifier(t *testing.T) {
	t.Parallel()

	if got := (model.FieldDescriptor{Name: "email", ID: "contact-email"}).Identifier(); got != "email" {
		t.Fatalf("expected name to win, got %q", got)
	}
	if got := (model.FieldDescriptor{ID: "contact-email"}).Identifier(); got != "contact-email" {
		t.Fatalf("expected id fallback, got %q", got)
	}
	if got := (model.FieldDescriptor{}).Identifier(); got != "" {
		t.Fatalf("expected empty identifier, got %q", got)
	}
}

func TestValidationResultValid(t *testing.T) {
	t.Parallel()

	if !(model.ValidationResult{}).Valid() {
		t.Fatalf("zero result should be valid")
	}
	invalid := []model.ValidationResult{
		{MissingValue: true},
		{PatternMismatch: true},
		{WrongLength: model.LengthOver},
		{WrongLength: model.LengthUnder},
	}
	for _, result := range invalid {
		if result.Valid() {
			t.Fatalf("expected %+v to be invalid", result)
		}
	}
}
