package dom

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// FieldType returns the lower-cased type attribute, defaulting to "text" as
// browsers do.
func FieldType(field *html.Node) string {
	t := strings.ToLower(strings.TrimSpace(AttrValue(field, "type")))
	if t == "" {
		return model.TypeText
	}
	return t
}

// Describe snapshots a field into a descriptor. ConditionMet is left false;
// callers resolve the companion control separately.
func Describe(field *html.Node) model.FieldDescriptor {
	return model.FieldDescriptor{
		Type:     FieldType(field),
		Value:    AttrValue(field, "value"),
		Required: HasAttr(field, "required"),
		Min:      model.ParseMinBound(AttrValue(field, "min")),
		Max:      model.ParseMaxBound(AttrValue(field, "max")),
		Pattern:  AttrValue(field, "pattern"),
		ID:       AttrValue(field, "id"),
		Name:     AttrValue(field, "name"),
	}
}

// CompanionChecked reports whether the first element in root whose value is
// the conditional sentinel is checked. The conditional field itself is
// skipped.
func CompanionChecked(root, field *html.Node) bool {
	companion := FindFirst(root, func(n *html.Node) bool {
		return n != field && AttrValue(n, "value") == model.ConditionalID
	})
	if companion == nil {
		return false
	}
	return HasAttr(companion, "checked")
}

// SetValue updates the value attribute of a field.
func SetValue(field *html.Node, value string) {
	SetAttr(field, "value", value)
}

// SetChecked toggles the checked attribute of a radio or checkbox. Checking a
// radio unchecks the other radios of its group within the same form.
func SetChecked(field *html.Node, checked bool) {
	if !checked {
		RemoveAttr(field, "checked")
		return
	}
	if FieldType(field) == model.TypeRadio {
		if name := AttrValue(field, "name"); name != "" {
			scope := ClosestForm(field)
			if scope == nil {
				scope = Root(field)
			}
			for _, peer := range Inputs(scope) {
				if peer != field && FieldType(peer) == model.TypeRadio && AttrValue(peer, "name") == name {
					RemoveAttr(peer, "checked")
				}
			}
		}
	}
	SetAttr(field, "checked", "")
}

// IsSkipped reports whether the field never takes part in validation.
func IsSkipped(field *html.Node) bool {
	switch FieldType(field) {
	case model.TypeSubmit, model.TypeButton:
		return true
	default:
		return false
	}
}

// FormValues collects the successful controls of a form: named, enabled
// inputs, with radios and checkboxes only when checked.
func FormValues(form *html.Node) url.Values {
	values := url.Values{}
	for _, field := range Inputs(form) {
		name := AttrValue(field, "name")
		if name == "" || HasAttr(field, "disabled") || IsSkipped(field) {
			continue
		}
		switch FieldType(field) {
		case model.TypeRadio, model.TypeCheckbox:
			if !HasAttr(field, "checked") {
				continue
			}
			value, ok := Attr(field, "value")
			if !ok {
				value = "on"
			}
			values.Add(name, value)
		default:
			values.Add(name, AttrValue(field, "value"))
		}
	}
	return values
}
