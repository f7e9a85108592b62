package validation_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

func TestEngineProperties(t *testing.T) {
	engine := validation.New()
	properties := gopter.NewProperties(nil)

	properties.Property("evaluate is idempotent", prop.ForAll(
		func(fieldType, value string, required bool, max int) bool {
			desc := model.FieldDescriptor{Type: fieldType, Value: value, Required: required, Max: model.Bound(max)}
			return engine.Evaluate(desc) == engine.Evaluate(desc)
		},
		gen.OneConstOf("text", "email", "radio", "tel"),
		gen.AnyString(),
		gen.Bool(),
		gen.IntRange(0, 20),
	))

	properties.Property("optional empty fields are never missing", prop.ForAll(
		func(fieldType string) bool {
			return !engine.CheckMissing(model.FieldDescriptor{Type: fieldType})
		},
		gen.OneConstOf("text", "email", "radio", "tel"),
	))

	properties.Property("required blank fields are always missing", prop.ForAll(
		func(fieldType string, blanks int) bool {
			desc := model.FieldDescriptor{Type: fieldType, Required: true, Value: strings.Repeat(" ", blanks)}
			return engine.CheckMissing(desc)
		},
		gen.OneConstOf("text", "email", "radio", "tel"),
		gen.IntRange(0, 4),
	))

	properties.Property("values within bounds have no length violation", prop.ForAll(
		func(length, slack int) bool {
			desc := model.FieldDescriptor{
				Value: strings.Repeat("a", length),
				Min:   model.Bound(length - slack),
				Max:   model.Bound(length + slack),
			}
			return engine.CheckLength(desc) == model.LengthOK
		},
		gen.IntRange(1, 50),
		gen.IntRange(0, 5),
	))

	properties.Property("unknown types never mismatch", prop.ForAll(
		func(value string) bool {
			return !engine.CheckPattern(model.FieldDescriptor{Type: "search", Value: value})
		},
		gen.AnyString(),
	))

	properties.Property("valid iff no flags", prop.ForAll(
		func(fieldType, value string, required bool) bool {
			result := engine.Evaluate(model.FieldDescriptor{Type: fieldType, Value: value, Required: required})
			noFlags := !result.MissingValue && !result.PatternMismatch && result.WrongLength == model.LengthOK
			return validation.IsValid(result) == noFlags
		},
		gen.OneConstOf("text", "email"),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
