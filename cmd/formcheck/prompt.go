package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcheck/pkg/prompt"
)

func newPromptCmd(a *app) *cobra.Command {
	var doc documentFlags

	cmd := &cobra.Command{
		Use:   "prompt FILE",
		Short: "Fill a form interactively, validating each answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return errStdinPrompt
			}
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

			session := prompt.New(prompt.WithOrchestrator(orch))
			outcome, err := session.Run(cmd.Context(), form)
			if err != nil {
				return err
			}
			if err := doc.write(cmd, root); err != nil {
				return err
			}
			printSummary(cmd, outcome)
			if !outcome.Submitted {
				return errInvalidForm
			}
			return nil
		},
	}

	doc.register(cmd)
	return cmd
}
