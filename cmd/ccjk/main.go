// Package main provides the ccjk CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/miounet11/ccjk-sub004/internal/fileio"
	"github.com/miounet11/ccjk-sub004/internal/settings"
)

var (
	version = "0.3.0"

	// Per-invocation state, wired in PersistentPreRun. One BackupGuard per
	// invocation means each command backs a file up at most once no
	// matter how many writes it performs.
	ccjkDir string
	st      *settings.Settings
	guard   *fileio.BackupGuard
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ccjk",
		Short: "Manage settings for the claude and codex coding assistants",
		Long: `ccjk provisions and edits settings for two AI coding assistants:
claude (JSON settings) and codex (TOML config).

Managed entries - model providers, background services, permission
presets - are edited structurally; every line ccjk does not understand
is preserved byte for byte.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ccjkDir = settings.Dir()
			st = settings.Load(ccjkDir)
			guard = fileio.NewBackupGuard()
		},
	}

	rootCmd.AddCommand(
		providerCmd(),
		serviceCmd(),
		modelCmd(),
		migrateCmd(),
		permissionCmd(),
		credentialCmd(),
		doctorCmd(),
		historyCmd(),
		backupCmd(),
		languageCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ccjk version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("ccjk", version)
		},
	}
}

func languageCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "language [en|zh]",
		Short:     "Show or set the message language",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"en", "zh"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println(st.Language)
				return nil
			}
			st.Language = args[0]
			return st.Save(ccjkDir)
		},
	}
}
