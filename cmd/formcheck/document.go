package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formcheck/pkg/dom"
)

var (
	errFormNotFound  = errors.New("formcheck: form not found")
	errFieldNotFound = errors.New("formcheck: field not found")
	errInvalidForm   = errors.New("formcheck: form has invalid fields")
	errStdinPrompt   = errors.New("formcheck: prompt reads answers from stdin, pass the document as a file")
)

// documentFlags are shared by the commands that operate on one form.
type documentFlags struct {
	formIndex int
	formID    string
	sets      []string
	checks    []string
	output    string
}

func (f *documentFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&f.formIndex, "form", 0, "index of the form to use when the document has several")
	flags.StringVar(&f.formID, "form-id", "", "id of the form to use (overrides --form)")
	flags.StringArrayVar(&f.sets, "set", nil, "set a field value before validating (key=value, repeatable)")
	flags.StringArrayVar(&f.checks, "check", nil, "check a radio or checkbox (name or name=value, repeatable)")
	flags.StringVarP(&f.output, "output", "o", "", "write the resulting document here instead of stdout")
}

func loadDocument(cmd *cobra.Command, path string) (*html.Node, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("formcheck: open %s: %w", path, err)
		}
		defer file.Close()
		r = file
	}
	return dom.Parse(r)
}

func (f *documentFlags) selectForm(doc *html.Node) (*html.Node, error) {
	if f.formID != "" {
		form := dom.FindByID(doc, f.formID)
		if form == nil || !dom.IsElement(form, "form") {
			return nil, fmt.Errorf("%w: id %q", errFormNotFound, f.formID)
		}
		return form, nil
	}
	forms := dom.Forms(doc)
	if f.formIndex < 0 || f.formIndex >= len(forms) {
		return nil, fmt.Errorf("%w: index %d of %d", errFormNotFound, f.formIndex, len(forms))
	}
	return forms[f.formIndex], nil
}

func (f *documentFlags) apply(form *html.Node) error {
	for _, pair := range f.sets {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("formcheck: --set %q: expected key=value", pair)
		}
		field := dom.FindField(form, strings.TrimSpace(key))
		if field == nil {
			return fmt.Errorf("%w: %q", errFieldNotFound, key)
		}
		dom.SetValue(field, value)
	}
	for _, spec := range f.checks {
		name, value, hasValue := strings.Cut(spec, "=")
		field := dom.FindFirst(form, func(n *html.Node) bool {
			if !dom.IsElement(n, "input") {
				return false
			}
			if dom.AttrValue(n, "name") != name && dom.AttrValue(n, "id") != name {
				return false
			}
			return !hasValue || dom.AttrValue(n, "value") == value
		})
		if field == nil {
			return fmt.Errorf("%w: %q", errFieldNotFound, spec)
		}
		dom.SetChecked(field, true)
	}
	return nil
}

func (f *documentFlags) write(cmd *cobra.Command, doc *html.Node) error {
	if f.output == "" {
		return html.Render(cmd.OutOrStdout(), doc)
	}
	file, err := os.Create(f.output)
	if err != nil {
		return fmt.Errorf("formcheck: create %s: %w", f.output, err)
	}
	if err := html.Render(file, doc); err != nil {
		file.Close()
		return fmt.Errorf("formcheck: write %s: %w", f.output, err)
	}
	return file.Close()
}
