package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/miounet11/ccjk-sub004/internal/audit"
	"github.com/miounet11/ccjk-sub004/internal/confdoc"
)

func serviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage codex background services",
	}
	cmd.AddCommand(serviceListCmd(), serviceAddCmd(), serviceRemoveCmd())
	return cmd
}

func serviceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured services",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadCodex()
			if err != nil {
				return err
			}
			if len(doc.Services) == 0 {
				fmt.Println("no services configured")
				return nil
			}

			for _, s := range doc.Services {
				line := fmt.Sprintf("  %-16s %s", s.ID, s.Command)
				if len(s.Args) > 0 {
					line += " " + strings.Join(s.Args, " ")
				}
				if s.StartupTimeoutSec > 0 {
					line += fmt.Sprintf("  (timeout %ds)", s.StartupTimeoutSec)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func serviceAddCmd() *cobra.Command {
	var (
		name    string
		command string
		svcArgs []string
		envs    []string
		timeout int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or update a background service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || command == "" {
				return errors.New("service name and command are required")
			}

			env := map[string]string{}
			for _, kv := range envs {
				key, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("env entry %q is not KEY=VALUE", kv)
				}
				env[key] = value
			}
			if len(env) == 0 {
				env = nil
			}

			doc, m, err := loadCodex()
			if err != nil {
				return err
			}

			id := confdoc.NormalizeID(name)
			if id == "" {
				return fmt.Errorf("cannot derive an id from %q", name)
			}

			svc := confdoc.Service{
				ID:                id,
				Command:           command,
				Args:              svcArgs,
				Env:               env,
				StartupTimeoutSec: timeout,
			}
			if prev := doc.FindService(id); prev != nil {
				// Edits keep fields the flags do not model.
				svc.Extra = prev.Extra
			}
			doc.UpsertService(svc)

			if err := saveCodex(doc, m); err != nil {
				return err
			}

			printOK("service.added", id)
			recordEvent(audit.CategoryCodex, "service_add", id, audit.StatusSuccess, "")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "service name")
	cmd.Flags().StringVar(&command, "command", "", "executable to run")
	cmd.Flags().StringArrayVar(&svcArgs, "arg", nil, "command argument (repeatable)")
	cmd.Flags().StringArrayVar(&envs, "env", nil, "KEY=VALUE environment entry (repeatable)")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "startup timeout in seconds")
	return cmd
}

func serviceRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, m, err := loadCodex()
			if err != nil {
				return err
			}

			id := args[0]
			if !doc.RemoveService(id) {
				return errors.New(msg("service.not_found", id))
			}
			if err := saveCodex(doc, m); err != nil {
				return err
			}

			printOK("service.removed", id)
			recordEvent(audit.CategoryCodex, "service_remove", id, audit.StatusSuccess, "")
			return nil
		},
	}
}
