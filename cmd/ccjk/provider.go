package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/miounet11/ccjk-sub004/internal/audit"
	"github.com/miounet11/ccjk-sub004/internal/confdoc"
	"github.com/miounet11/ccjk-sub004/internal/credstore"
	xstrings "github.com/miounet11/ccjk-sub004/internal/strings"
	"github.com/miounet11/ccjk-sub004/internal/tui"
)

func providerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Manage codex model providers",
	}
	cmd.AddCommand(
		providerListCmd(),
		providerAddCmd(),
		providerRemoveCmd(),
		providerUseCmd(),
		providerDisableCmd(),
		providerEnableCmd(),
	)
	return cmd
}

func providerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadCodex()
			if err != nil {
				return err
			}
			if len(doc.Providers) == 0 {
				fmt.Println("no providers configured")
				return nil
			}

			defaultMark := color.New(color.FgGreen, color.Bold)
			for _, p := range doc.Providers {
				marker := "  "
				if p.ID == doc.DefaultProviderRef {
					if doc.DefaultProviderDisabled {
						marker = warnMark + " "
					} else {
						marker = defaultMark.Sprint("* ")
					}
				}
				line := marker + xstrings.PadRight(p.ID, 16) + " " + xstrings.PadRight(p.Name, 24) + " " + p.BaseURL
				if p.Model != "" {
					line += "  (" + p.Model + ")"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func providerAddCmd() *cobra.Command {
	var (
		name    string
		baseURL string
		authEnv string
		wireAPI string
		model   string
		noAuth  bool
		secret  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or update a provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				values, err := tui.Form("New provider", []tui.Field{
					{Key: "name", Label: "Display name", Placeholder: "Acme AI"},
					{Key: "url", Label: "Base URL", Placeholder: "https://api.acme.ai/v1"},
					{Key: "env", Label: "Credential env var", Placeholder: "ACME_API_KEY"},
					{Key: "model", Label: "Model (optional)"},
				})
				if errors.Is(err, tui.ErrAborted) {
					return nil
				}
				if err != nil {
					return err
				}
				name, baseURL, authEnv, model = values["name"], values["url"], values["env"], values["model"]
			}
			if name == "" || baseURL == "" {
				return errors.New("provider name and base URL are required")
			}
			if wireAPI != confdoc.WireResponses && wireAPI != confdoc.WireChat {
				return fmt.Errorf("wire api must be %q or %q", confdoc.WireResponses, confdoc.WireChat)
			}

			doc, m, err := loadCodex()
			if err != nil {
				return err
			}

			id := confdoc.NormalizeID(name)
			if id == "" {
				return fmt.Errorf("cannot derive an id from %q", name)
			}
			existing := doc.FindProvider(id) != nil

			doc.UpsertProvider(confdoc.Provider{
				ID:           id,
				Name:         name,
				BaseURL:      baseURL,
				WireAPI:      wireAPI,
				AuthEnv:      authEnv,
				RequiresAuth: !noAuth,
				Model:        model,
			})
			if doc.DefaultProviderRef == "" {
				doc.SetDefaultProvider(id)
			}
			if err := saveCodex(doc, m); err != nil {
				return err
			}

			if secret != "" && authEnv != "" {
				if err := credstore.New(ccjkDir).Set(authEnv, secret); err != nil {
					return err
				}
				printOK("credential.saved", authEnv)
			}

			if existing {
				printOK("provider.updated", id)
				recordEvent(audit.CategoryCodex, "provider_update", id, audit.StatusSuccess, "")
			} else {
				printOK("provider.added", id)
				recordEvent(audit.CategoryCodex, "provider_add", id, audit.StatusSuccess, "")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (omit for interactive form)")
	cmd.Flags().StringVar(&baseURL, "url", "", "API base URL")
	cmd.Flags().StringVar(&authEnv, "env", "", "credential env var name")
	cmd.Flags().StringVar(&wireAPI, "wire", confdoc.WireResponses, "wire api: responses or chat")
	cmd.Flags().StringVar(&model, "model", "", "provider-specific model")
	cmd.Flags().BoolVar(&noAuth, "no-auth", false, "provider needs no credentials")
	cmd.Flags().StringVar(&secret, "key", "", "store this API key in the credential store")
	return cmd
}

func providerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, m, err := loadCodex()
			if err != nil {
				return err
			}

			id := args[0]
			if !doc.RemoveProvider(id) {
				return errors.New(msg("provider.not_found", id))
			}
			if err := saveCodex(doc, m); err != nil {
				return err
			}

			printOK("provider.removed", id)
			recordEvent(audit.CategoryCodex, "provider_remove", id, audit.StatusSuccess, "")
			return nil
		},
	}
}

func providerUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use [id]",
		Short: "Select the default provider",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, m, err := loadCodex()
			if err != nil {
				return err
			}

			var id string
			if len(args) == 1 {
				id = args[0]
			} else {
				items := make([]tui.Item, len(doc.Providers))
				for i, p := range doc.Providers {
					items[i] = tui.Item{ID: p.ID, Title: p.ID, Desc: p.BaseURL}
				}
				item, err := tui.Pick("Select default provider", items)
				if errors.Is(err, tui.ErrAborted) {
					return nil
				}
				if err != nil {
					return err
				}
				id = item.ID
			}

			if doc.FindProvider(id) == nil {
				return errors.New(msg("provider.not_found", id))
			}

			doc.SetDefaultProvider(id)
			if err := saveCodex(doc, m); err != nil {
				return err
			}

			printOK("provider.default", id)
			recordEvent(audit.CategoryCodex, "provider_use", id, audit.StatusSuccess, "")
			return nil
		},
	}
}

func providerDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Comment out the default-provider directive without losing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, m, err := loadCodex()
			if err != nil {
				return err
			}
			if doc.DefaultProviderRef == "" {
				return errors.New("no default provider is set")
			}

			doc.DisableDefaultProvider()
			if err := saveCodex(doc, m); err != nil {
				return err
			}

			printOK("provider.disabled", doc.DefaultProviderRef)
			recordEvent(audit.CategoryCodex, "provider_disable", doc.DefaultProviderRef, audit.StatusSuccess, "")
			return nil
		},
	}
}

func providerEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Reactivate a disabled default-provider directive",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, m, err := loadCodex()
			if err != nil {
				return err
			}
			if doc.DefaultProviderRef == "" {
				return errors.New("no default provider is set")
			}

			doc.EnableDefaultProvider()
			if err := saveCodex(doc, m); err != nil {
				return err
			}

			printOK("provider.enabled", doc.DefaultProviderRef)
			recordEvent(audit.CategoryCodex, "provider_enable", doc.DefaultProviderRef, audit.StatusSuccess, "")
			return nil
		},
	}
}
