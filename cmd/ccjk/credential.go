package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miounet11/ccjk-sub004/internal/audit"
	"github.com/miounet11/ccjk-sub004/internal/credstore"
)

func credentialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage stored API keys",
	}
	cmd.AddCommand(credentialListCmd(), credentialSetCmd(), credentialRemoveCmd())
	return cmd
}

func credentialListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored credential names (never values)",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := credstore.New(ccjkDir).Names()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("no credentials stored")
				return nil
			}
			for _, name := range names {
				fmt.Println(" ", name)
			}
			return nil
		},
	}
}

func credentialSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <ENV_VAR>",
		Short: "Store a secret under an env var name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := credstore.PromptSecret("value for " + args[0] + ": ")
			if err != nil {
				return err
			}

			if err := credstore.New(ccjkDir).Set(args[0], secret); err != nil {
				return err
			}

			printOK("credential.saved", args[0])
			recordEvent(audit.CategorySettings, "credential_set", args[0], audit.StatusSuccess, "")
			return nil
		},
	}
}

func credentialRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <ENV_VAR>",
		Short: "Delete a stored secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credstore.New(ccjkDir).Delete(args[0]); err != nil {
				return err
			}

			printOK("credential.removed", args[0])
			recordEvent(audit.CategorySettings, "credential_remove", args[0], audit.StatusSuccess, "")
			return nil
		},
	}
}
