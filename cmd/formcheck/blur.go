package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcheck/pkg/dom"
)

func newBlurCmd(a *app) *cobra.Command {
	var (
		doc documentFlags
		key string
	)

	cmd := &cobra.Command{
		Use:   "blur FILE --field KEY",
		Short: "Validate a single field as if it lost focus",
		Args:  cobra.ExactArgs(1),
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
			field := dom.FindField(form, key)
			if field == nil {
				return fmt.Errorf("%w: %q", errFieldNotFound, key)
			}

			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			report, err := orch.HandleBlur(cmd.Context(), field)
			if err != nil {
				return err
			}
			if err := doc.write(cmd, root); err != nil {
				return err
			}
			if !report.Valid() {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", report.Key, report.Message)
				return errInvalidForm
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: valid\n", key)
			return nil
		},
	}

	doc.register(cmd)
	cmd.Flags().StringVar(&key, "field", "", "name or id of the field to validate")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}
