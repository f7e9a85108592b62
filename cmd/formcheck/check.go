package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcheck/pkg/orchestrator"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		doc    documentFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Run a submit pass over a form",
		Long: `Run the submit handler over one form: every input is validated, invalid
fields get their error message, and the resulting document is written out.
Use "-" to read the document from stdin. Exits non-zero when a field is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			form, err := doc.selectForm(root)
			if err != nil {
				return err
			}
			if err := doc.apply(form); err != nil {
				return err
			}

			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			orch.Init(root)

			outcome, err := orch.HandleSubmit(cmd.Context(), form)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(outcome); err != nil {
					return fmt.Errorf("formcheck: encode outcome: %w", err)
				}
			}
			if !asJSON || doc.output != "" {
				if err := doc.write(cmd, root); err != nil {
					return err
				}
			}

			printSummary(cmd, outcome)
			if !outcome.Submitted {
				return errInvalidForm
			}
			return nil
		},
	}

	doc.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the validation outcome as JSON; the document is still written with -o")
	return cmd
}

func printSummary(cmd *cobra.Command, outcome orchestrator.SubmitOutcome) {
	out := cmd.ErrOrStderr()
	if outcome.Submitted {
		fmt.Fprintf(out, "form valid (%d fields)\n", len(outcome.Reports))
		return
	}
	keys := make([]string, 0, len(outcome.Errors))
	for key := range outcome.Errors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fmt.Fprintf(out, "%d of %d fields invalid\n", len(outcome.Invalid), len(outcome.Reports))
	for _, key := range keys {
		for _, msg := range outcome.Errors[key] {
			fmt.Fprintf(out, "  %s: %s\n", key, msg)
		}
	}
}
