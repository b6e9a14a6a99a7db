package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/miounet11/ccjk-sub004/internal/audit"
	"github.com/miounet11/ccjk-sub004/internal/claude"
	"github.com/miounet11/ccjk-sub004/internal/codex"
	"github.com/miounet11/ccjk-sub004/internal/fileio"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Inspect and restore config backups",
	}
	cmd.AddCommand(backupListCmd(), backupRestoreCmd())
	return cmd
}

func backupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List config backups, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			total := 0
			for _, source := range []string{codex.ConfigFileName, claude.SettingsFileName} {
				backups, err := fileio.List(backupDir(), source)
				if err != nil {
					return err
				}
				for _, b := range backups {
					fmt.Println(" ", filepath.Base(b))
				}
				total += len(backups)
			}
			if total == 0 {
				fmt.Println("no backups yet")
			}
			return nil
		},
	}
}

func backupRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup-name>",
		Short: "Restore a backup over the live config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := filepath.Base(args[0])
			src := filepath.Join(backupDir(), name)
			data, err := os.ReadFile(src)
			if err != nil {
				return err
			}

			var target string
			switch {
			case filepath.Ext(name) == ".bak" && len(name) > len(codex.ConfigFileName) && name[:len(codex.ConfigFileName)] == codex.ConfigFileName:
				target = codex.DefaultConfigPath()
			case len(name) > len(claude.SettingsFileName) && name[:len(claude.SettingsFileName)] == claude.SettingsFileName:
				target = claude.DefaultSettingsPath()
			default:
				return fmt.Errorf("cannot tell which config %q belongs to", name)
			}

			// The pre-restore state becomes a backup itself.
			if _, err := guard.Backup(target, backupDir()); err != nil {
				return err
			}
			if err := fileio.WriteAtomic(target, data, 0o644); err != nil {
				return err
			}

			printOK("backup.restored", target)
			recordEvent(audit.CategorySettings, "backup_restore", name, audit.StatusSuccess, "")
			return nil
		},
	}
}
