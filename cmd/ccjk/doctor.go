package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miounet11/ccjk-sub004/internal/codex"
	"github.com/miounet11/ccjk-sub004/internal/doctor"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check tool installations and config health",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := []doctor.Check{
				doctor.CheckBinary(cmd.Context(), "claude", "claude"),
				doctor.CheckBinary(cmd.Context(), "codex", "codex"),
				doctor.CheckCodexConfig(codex.DefaultConfigPath()),
			}

			for _, c := range checks {
				mark := okMark
				switch c.Status {
				case doctor.StatusWarning:
					mark = warnMark
				case doctor.StatusMissing:
					mark = failMark
				}

				line := fmt.Sprintf("%s %-14s", mark, c.Name)
				if c.Version != "" {
					line += " " + c.Version
				}
				if c.Detail != "" {
					line += " " + c.Detail
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
