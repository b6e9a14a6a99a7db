package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miounet11/ccjk-sub004/internal/audit"
)

func modelCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "model [name]",
		Short: "Show or set the codex default model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, m, err := loadCodex()
			if err != nil {
				return err
			}

			if len(args) == 0 && !clear {
				if doc.DefaultModel == "" {
					fmt.Println("no default model set")
				} else {
					fmt.Println(doc.DefaultModel)
				}
				return nil
			}

			model := ""
			if len(args) == 1 {
				model = args[0]
			}
			doc.SetDefaultModel(model)
			if err := saveCodex(doc, m); err != nil {
				return err
			}

			printOK("model.set", model)
			recordEvent(audit.CategoryCodex, "model_set", model, audit.StatusSuccess, "")
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "remove the default model directive")
	return cmd
}
