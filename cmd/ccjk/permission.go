package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miounet11/ccjk-sub004/internal/audit"
	"github.com/miounet11/ccjk-sub004/internal/claude"
	"github.com/miounet11/ccjk-sub004/internal/permission"
)

func permissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permission",
		Short: "Manage claude permission presets",
	}
	cmd.AddCommand(permissionListCmd(), permissionApplyCmd(), permissionCheckCmd())
	return cmd
}

func permissionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range permission.Presets() {
				fmt.Printf("  %-12s %s\n", p.Name, p.Description)
			}
		},
	}
}

func permissionApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <preset>",
		Short: "Write a preset into the claude settings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset := permission.Find(args[0])
			if preset == nil {
				return errors.New(msg("preset.unknown", args[0]))
			}

			m := claude.NewManager(claude.DefaultSettingsPath())
			s, err := m.Load()
			if err != nil {
				return err
			}

			s.ApplyPreset(preset)
			if err := m.Save(s, guard, backupDir()); err != nil {
				return err
			}

			printOK("preset.applied", preset.Name)
			recordEvent(audit.CategoryClaude, "preset_apply", preset.Name, audit.StatusSuccess, "")
			return nil
		},
	}
}

func permissionCheckCmd() *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "check <command>",
		Short: "Show what a preset decides for a shell command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := permission.Find(preset)
			if p == nil {
				return errors.New(msg("preset.unknown", preset))
			}

			decision := p.CheckBash(args[0])
			switch decision {
			case permission.PermissionAllow:
				fmt.Println(okMark, decision)
			case permission.PermissionDeny:
				fmt.Println(failMark, decision)
			default:
				fmt.Println(warnMark, decision)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "standard", "preset to evaluate against")
	return cmd
}
